package usecase

import (
	"context"
	"net/url"
	"sort"

	"github.com/consensus-score/deployer/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected string
}

// NetworkStatus describes one configured network
type NetworkStatus struct {
	Name     string
	ChainID  uint64
	RPCURL   string
	Accounts int
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	lister   NetworkLister
	selected string
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(lister NetworkLister, cfg *config.RuntimeConfig) *ListNetworks {
	selected := ""
	if cfg.Network != nil {
		selected = cfg.Network.Name
	}
	return &ListNetworks{
		lister:   lister,
		selected: selected,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networks, err := uc.lister.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]NetworkStatus, 0, len(networks))
	for _, network := range networks {
		statuses = append(statuses, NetworkStatus{
			Name:     network.Name,
			ChainID:  network.ChainID,
			RPCURL:   redactURL(network.RPCURL),
			Accounts: len(network.PrivateKeys),
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	return &ListNetworksResult{
		Networks: statuses,
		Selected: uc.selected,
	}, nil
}

// redactURL hides credentials and API keys that providers embed in RPC URLs
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	// Infura/Alchemy style keys live in the path, query or user info
	redacted := u.Scheme + "://" + u.Host
	if u.User != nil || len(u.Path) > 1 || u.RawQuery != "" {
		redacted += "/****"
	}
	return redacted
}
