package config

import (
	"time"
)

// OutputFormat selects how deployment results are rendered
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// DefaultContractName is the contract deployed when none is configured
const DefaultContractName = "ConsensusScore"

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string `validate:"required"`
	ArtifactsDir string `validate:"required"`

	// Context settings
	Network *Network `validate:"required"`

	// Contract selection
	ContractName string `validate:"required"`

	// Execution settings
	Debug      bool
	NoProgress bool
	Output     OutputFormat  `validate:"oneof=text json yaml"`
	Timeout    time.Duration `validate:"gte=0"`

	// Config source tracking
	ConfigFile string // empty when deployer.toml is absent

	// Resolved configuration file
	DeployerConfig *DeployerConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name" validate:"required"`
	RPCURL  string `json:"rpcUrl" validate:"required,url"`
	ChainID uint64 `json:"chainId"` // 0 accepts whatever the endpoint reports

	// PrivateKeys are hex encoded keys, env references already expanded
	PrivateKeys []string `json:"-"`
}
