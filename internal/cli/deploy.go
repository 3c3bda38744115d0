package cli

import (
	"github.com/consensus-score/deployer/internal/cli/render"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract (default command)",
		Long: `Deploy the contract from the first available signer.

Signers are taken from --private-key, DEPLOYER_PRIVATE_KEY or the network's accounts
in deployer.toml. Without any key the node's unlocked accounts (eth_accounts) are used.`,
		Args: cobra.NoArgs,
		RunE: runDeploy,
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	app.Logger.Debug("deploying",
		"network", app.Config.Network.Name,
		"contract", app.Config.ContractName,
		"artifacts", app.Config.ArtifactsDir,
		"config", app.Config.ConfigFile,
	)

	renderer := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.Output)

	result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
		Observer: renderer,
		Progress: app.Progress,
	})
	if err != nil {
		return err
	}

	return renderer.Render(result)
}
