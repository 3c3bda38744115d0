package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// DeployerFileName is the optional project configuration file
const DeployerFileName = "deployer.toml"

// loadEnvFiles loads .env files from the project root.
// Variables already present in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				slog.Warn("failed to load env file", "path", envFile, "error", err)
			}
		}
	}
}

// loadDeployerConfig loads and parses deployer.toml if it exists.
// Returns an empty config and an empty path when the file does not exist.
func loadDeployerConfig(projectRoot string) (*config.DeployerConfig, string, error) {
	cfg := &config.DeployerConfig{
		Networks: make(map[string]config.NetworkConfig),
	}

	path := filepath.Join(projectRoot, DeployerFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, "", nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", DeployerFileName, err)
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}

	// Expand ${VAR} references after .env files have been loaded
	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.Accounts = expandKeys(network.Accounts)
		cfg.Networks[name] = network
	}
	cfg.Contract.Name = os.ExpandEnv(cfg.Contract.Name)
	cfg.Contract.Artifacts = os.ExpandEnv(cfg.Contract.Artifacts)

	return cfg, path, nil
}

// expandKeys expands env references and drops entries that resolve to nothing,
// so an unset ${DEPLOYER_PRIVATE_KEY} simply contributes no signer.
func expandKeys(keys []string) []string {
	expanded := lo.Map(keys, func(key string, _ int) string {
		return strings.TrimSpace(os.ExpandEnv(key))
	})
	return lo.Uniq(lo.Compact(expanded))
}
