package adapters

import (
	"log/slog"

	"github.com/consensus-score/deployer/internal/adapters/artifacts"
	"github.com/consensus-score/deployer/internal/adapters/blockchain"
	internalconfig "github.com/consensus-score/deployer/internal/adapters/config"
	"github.com/consensus-score/deployer/internal/adapters/progress"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/google/wire"
)

// ProvideBlockchainClient provides the client for the selected network
func ProvideBlockchainClient(cfg *config.RuntimeConfig, log *slog.Logger) *blockchain.Client {
	return blockchain.NewClient(cfg, log)
}

// ProvideProgressSink shows a spinner only for interactive text output
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NoProgress || cfg.Output != config.OutputText {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerProgressReporter()
}

// ArtifactSet provides compiled artifact lookups
var ArtifactSet = wire.NewSet(
	artifacts.NewIndexer,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Indexer)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	ProvideBlockchainClient,
	wire.Bind(new(usecase.AccountSource), new(*blockchain.Client)),
	wire.Bind(new(usecase.BalanceReader), new(*blockchain.Client)),
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Client)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkListerAdapter,
	wire.Bind(new(usecase.NetworkLister), new(*internalconfig.NetworkListerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	// Provider functions
	ProvideProgressSink,

	// Adapter sets
	ArtifactSet,
	BlockchainSet,
	ConfigSet,
)
