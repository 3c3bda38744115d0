//go:build wireinject
// +build wireinject

package app

import (
	"github.com/consensus-score/deployer/internal/adapters"
	"github.com/consensus-score/deployer/internal/config"
	"github.com/consensus-score/deployer/internal/logging"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,

		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
