package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultNetwork is used when neither flags nor deployer.toml name one
	DefaultNetwork = "localhost"
	// LocalhostRPCURL is the endpoint of a local development node
	LocalhostRPCURL = "http://127.0.0.1:8545"
	// DefaultArtifactsDir matches the Hardhat build output
	DefaultArtifactsDir = "artifacts"
)

// projectMarkers identify a project root, checked in order in every directory
var projectMarkers = []string{
	DeployerFileName,
	"hardhat.config.js",
	"hardhat.config.ts",
	"foundry.toml",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}

	loadEnvFiles(projectRoot)

	deployerConfig, configFile, err := loadDeployerConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NoProgress:     v.GetBool("no-progress"),
		Output:         config.OutputFormat(strings.ToLower(v.GetString("output"))),
		Timeout:        v.GetDuration("timeout"),
		ConfigFile:     configFile,
		DeployerConfig: deployerConfig,
	}

	cfg.ContractName = firstNonEmpty(
		v.GetString("contract"),
		deployerConfig.Contract.Name,
		config.DefaultContractName,
	)

	artifactsDir := firstNonEmpty(
		v.GetString("artifacts"),
		deployerConfig.Contract.Artifacts,
		DefaultArtifactsDir,
	)
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(projectRoot, artifactsDir)
	}
	cfg.ArtifactsDir = artifactsDir

	networkName := firstNonEmpty(v.GetString("network"), deployerConfig.DefaultNetwork, DefaultNetwork)
	network, err := ResolveNetwork(deployerConfig, networkName, v.GetString("rpc-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}

	// An explicit key is the first signer, ahead of the network's accounts
	if key := strings.TrimSpace(v.GetString("private-key")); key != "" {
		network.PrivateKeys = append([]string{key}, network.PrivateKeys...)
		network.PrivateKeys = expandKeys(network.PrivateKeys)
	}
	cfg.Network = network

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolveNetwork looks a network up in deployer.toml. rpcOverride replaces the
// configured endpoint, or defines an ad hoc network when the name is unknown.
func ResolveNetwork(deployerConfig *config.DeployerConfig, name, rpcOverride string) (*config.Network, error) {
	if netCfg, ok := deployerConfig.Networks[name]; ok {
		network := &config.Network{
			Name:        name,
			RPCURL:      firstNonEmpty(rpcOverride, netCfg.RPCURL),
			ChainID:     netCfg.ChainID,
			PrivateKeys: append([]string(nil), netCfg.Accounts...),
		}
		if network.RPCURL == "" {
			return nil, fmt.Errorf("network '%s' has no rpc_url in %s", name, DeployerFileName)
		}
		return network, nil
	}

	if rpcOverride != "" {
		return &config.Network{Name: name, RPCURL: rpcOverride}, nil
	}

	if name == DefaultNetwork {
		return &config.Network{Name: name, RPCURL: LocalhostRPCURL}, nil
	}

	return nil, fmt.Errorf("'%s' is not configured in %s [networks]: %w", name, DeployerFileName, domain.ErrNetworkNotFound)
}

// FindProjectRoot walks up from the current directory looking for a project marker.
// Falls back to the current directory.
func FindProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DEPLOYER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("output", string(config.OutputText))
	v.SetDefault("debug", false)
	v.SetDefault("no-progress", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(f.Name, f)
		if err != nil {
			panic(err)
		}
	})

	return v
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
