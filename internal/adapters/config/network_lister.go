package config

import (
	"context"
	"log/slog"

	internalconfig "github.com/consensus-score/deployer/internal/config"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/usecase"
)

// NetworkListerAdapter lists the networks of deployer.toml plus the builtin localhost
type NetworkListerAdapter struct {
	deployerConfig *config.DeployerConfig
	log            *slog.Logger
}

// NewNetworkListerAdapter creates a new adapter
func NewNetworkListerAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *NetworkListerAdapter {
	deployerConfig := cfg.DeployerConfig
	if deployerConfig == nil {
		deployerConfig = &config.DeployerConfig{}
	}
	return &NetworkListerAdapter{
		deployerConfig: deployerConfig,
		log:            log,
	}
}

// ListNetworks returns all resolvable networks
func (a *NetworkListerAdapter) ListNetworks(ctx context.Context) ([]*config.Network, error) {
	var networks []*config.Network
	for name := range a.deployerConfig.Networks {
		network, err := internalconfig.ResolveNetwork(a.deployerConfig, name, "")
		if err != nil {
			// Skip networks that can't be resolved
			a.log.Warn("skipping network", "network", name, "error", err)
			continue
		}
		networks = append(networks, network)
	}

	if _, ok := a.deployerConfig.Networks[internalconfig.DefaultNetwork]; !ok {
		localhost, err := internalconfig.ResolveNetwork(a.deployerConfig, internalconfig.DefaultNetwork, "")
		if err != nil {
			return nil, err
		}
		networks = append(networks, localhost)
	}

	return networks, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkLister = (*NetworkListerAdapter)(nil)
