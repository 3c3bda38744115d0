package app

import (
	"log/slog"

	"github.com/consensus-score/deployer/internal/adapters/blockchain"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Logger   *slog.Logger
	Progress usecase.ProgressSink

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	progress usecase.ProgressSink,
	client *blockchain.Client,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:         cfg,
		Logger:         logger,
		Progress:       progress,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
		client:         client,
	}, nil
}

// Close releases the RPC connection, if one was opened
func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
