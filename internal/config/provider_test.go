package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func newTestViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.Set("project_root", projectRoot)
	v.Set("output", "text")
	v.Set("timeout", "5m")
	return v
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProvider(t *testing.T) {
	t.Run("defaults without deployer.toml", func(t *testing.T) {
		root := t.TempDir()

		cfg, err := Provider(newTestViper(root))
		require.NoError(t, err)

		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, config.DefaultContractName, cfg.ContractName)
		assert.Equal(t, filepath.Join(root, "artifacts"), cfg.ArtifactsDir)
		assert.Equal(t, "localhost", cfg.Network.Name)
		assert.Equal(t, LocalhostRPCURL, cfg.Network.RPCURL)
		assert.Empty(t, cfg.Network.PrivateKeys)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		assert.Equal(t, config.OutputText, cfg.Output)
		assert.Empty(t, cfg.ConfigFile)
	})

	t.Run("network from deployer.toml with env expansion", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".env"), "PROVIDER_TEST_KEY="+testKey+"\nPROVIDER_TEST_RPC=http://10.0.0.1:8545\n")
		t.Cleanup(func() {
			os.Unsetenv("PROVIDER_TEST_KEY")
			os.Unsetenv("PROVIDER_TEST_RPC")
		})
		writeFile(t, filepath.Join(root, DeployerFileName), `
default_network = "devnet"

[contract]
name = "ConsensusScore"
artifacts = "build/artifacts"

[networks.devnet]
rpc_url = "${PROVIDER_TEST_RPC}"
chain_id = 1337
accounts = ["${PROVIDER_TEST_KEY}", "${PROVIDER_TEST_UNSET}"]
`)

		cfg, err := Provider(newTestViper(root))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, DeployerFileName), cfg.ConfigFile)
		assert.Equal(t, "devnet", cfg.Network.Name)
		assert.Equal(t, "http://10.0.0.1:8545", cfg.Network.RPCURL)
		assert.Equal(t, uint64(1337), cfg.Network.ChainID)
		assert.Equal(t, []string{testKey}, cfg.Network.PrivateKeys)
		assert.Equal(t, filepath.Join(root, "build", "artifacts"), cfg.ArtifactsDir)
	})

	t.Run("flags override file values", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, DeployerFileName), `
[contract]
name = "Other"

[networks.localhost]
rpc_url = "http://127.0.0.1:8545"
`)

		v := newTestViper(root)
		v.Set("contract", "ConsensusScore")
		v.Set("rpc-url", "http://127.0.0.1:9545")
		v.Set("private-key", testKey)
		v.Set("output", "JSON")

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, "ConsensusScore", cfg.ContractName)
		assert.Equal(t, "http://127.0.0.1:9545", cfg.Network.RPCURL)
		assert.Equal(t, []string{testKey}, cfg.Network.PrivateKeys)
		assert.Equal(t, config.OutputJSON, cfg.Output)
	})

	t.Run("unknown network", func(t *testing.T) {
		root := t.TempDir()
		v := newTestViper(root)
		v.Set("network", "sepolia")

		_, err := Provider(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
	})

	t.Run("invalid output format", func(t *testing.T) {
		root := t.TempDir()
		v := newTestViper(root)
		v.Set("output", "xml")

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Output must be one of")
	})

	t.Run("invalid rpc url", func(t *testing.T) {
		root := t.TempDir()
		v := newTestViper(root)
		v.Set("rpc-url", "not a url")

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Network.RPCURL must be a URL")
	})

	t.Run("malformed deployer.toml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, DeployerFileName), "networks = [")

		_, err := Provider(newTestViper(root))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse deployer.toml")
	})
}

func TestResolveNetwork(t *testing.T) {
	deployerConfig := &config.DeployerConfig{
		Networks: map[string]config.NetworkConfig{
			"devnet": {RPCURL: "http://devnet:8545", ChainID: 7, Accounts: []string{"0x01"}},
			"broken": {},
		},
	}

	tests := []struct {
		name        string
		network     string
		rpcOverride string
		wantURL     string
		wantChainID uint64
		wantErr     string
	}{
		{name: "configured network", network: "devnet", wantURL: "http://devnet:8545", wantChainID: 7},
		{name: "override keeps chain id", network: "devnet", rpcOverride: "http://other:8545", wantURL: "http://other:8545", wantChainID: 7},
		{name: "ad hoc network", network: "custom", rpcOverride: "http://custom:8545", wantURL: "http://custom:8545"},
		{name: "builtin localhost", network: "localhost", wantURL: LocalhostRPCURL},
		{name: "missing rpc url", network: "broken", wantErr: "has no rpc_url"},
		{name: "unknown network", network: "mainnet", wantErr: "network not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network, err := ResolveNetwork(deployerConfig, tt.network, tt.rpcOverride)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.network, network.Name)
			assert.Equal(t, tt.wantURL, network.RPCURL)
			assert.Equal(t, tt.wantChainID, network.ChainID)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "scripts", "deploy")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeFile(t, filepath.Join(root, "hardhat.config.js"), "module.exports = {}")

	t.Chdir(nested)

	found := FindProjectRoot()
	// macOS temp dirs resolve through /private
	expected, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}
