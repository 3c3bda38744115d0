package cli

import (
	"context"
	"fmt"

	"github.com/consensus-score/deployer/internal/app"
	"github.com/consensus-score/deployer/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. Without a subcommand it deploys the contract.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deployer",
		Short: "Deploy the ConsensusScore contract",
		Long: `Deploys the ConsensusScore contract from the first available signer of the
selected network and prints the signer, its balance and the deployed address.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE:          runDeploy,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Set up viper
			v := config.SetupViper(config.FindProjectRoot(), cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			cancel := func() {}
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			// Release the connection and timer once the command returns, failed or not
			withCleanup(cmd, func() {
				cancel()
				appInstance.Close()
			})

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (defaults to deployer.toml default_network or localhost)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint, overrides the network's rpc_url")
	rootCmd.PersistentFlags().String("private-key", "", "Hex private key of the deployer (prefer DEPLOYER_PRIVATE_KEY)")
	rootCmd.PersistentFlags().String("contract", "", "Contract to deploy, Name or path/File.sol:Name (defaults to ConsensusScore)")
	rootCmd.PersistentFlags().String("artifacts", "", "Directory of compiled artifacts (defaults to artifacts)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the deployment after this duration (defaults to 5m)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("no-progress", false, "Disable the progress spinner")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "main"
	rootCmd.AddCommand(networksCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// withCleanup runs cleanup after the command's RunE, including when it returns an error
func withCleanup(cmd *cobra.Command, cleanup func()) {
	runE := cmd.RunE
	if runE == nil {
		cleanup()
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer cleanup()
		return runE(cmd, args)
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
