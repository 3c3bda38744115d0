package config

// DeployerConfig represents the deployer.toml file
type DeployerConfig struct {
	DefaultNetwork string                   `toml:"default_network,omitempty"`
	Contract       ContractConfig           `toml:"contract"`
	Networks       map[string]NetworkConfig `toml:"networks"`
}

// ContractConfig selects the contract and where its compiled artifacts live
type ContractConfig struct {
	Name      string `toml:"name,omitempty"`
	Artifacts string `toml:"artifacts,omitempty"`
}

// NetworkConfig represents one [networks.<name>] table
type NetworkConfig struct {
	RPCURL   string   `toml:"rpc_url"`
	ChainID  uint64   `toml:"chain_id,omitempty"`
	Accounts []string `toml:"accounts,omitempty"` //nolint:gosec // holds env var references, not literal secrets
}
