package usecase

import (
	"context"
	"math/big"

	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// AccountSource lists the signers available in the configured environment, in priority order
type AccountSource interface {
	Accounts(ctx context.Context) ([]*models.Account, error)
}

// BalanceReader reads native token balances
type BalanceReader interface {
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
}

// ArtifactRepository resolves contract names to compiled artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ContractDeployer submits a creation transaction and blocks until it is confirmed
type ContractDeployer interface {
	Deploy(ctx context.Context, account *models.Account, factory *models.ContractFactory, args ...any) (*models.Deployment, error)
}

// NetworkLister exposes the networks known to the configuration
type NetworkLister interface {
	ListNetworks(ctx context.Context) ([]*config.Network, error)
}

// DeployObserver receives each result of the deployment sequence as soon as it is known
type DeployObserver interface {
	OnDeployer(account *models.Account)
	OnBalance(account *models.Account, balance *big.Int)
	OnDeployed(deployment *models.Deployment)
}

// NopObserver ignores all deployment events
type NopObserver struct{}

func (NopObserver) OnDeployer(*models.Account)          {}
func (NopObserver) OnBalance(*models.Account, *big.Int) {}
func (NopObserver) OnDeployed(*models.Deployment)       {}

// Progress tracking interfaces

// ExecutionStage represents a stage in the deployment sequence
type ExecutionStage string

const (
	StageSigner    ExecutionStage = "Signer"
	StageBalance   ExecutionStage = "Balance"
	StageArtifact  ExecutionStage = "Artifact"
	StageDeploying ExecutionStage = "Deploying"
	StageCompleted ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
