package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/domain/models"
)

// DeployContractParams contains parameters for deploying the contract
type DeployContractParams struct {
	// ContractName overrides the configured contract when set
	ContractName string
	Observer     DeployObserver
	Progress     ProgressSink
}

// DeployContractResult contains the outcome of a successful deployment
type DeployContractResult struct {
	Network    *config.Network
	Deployer   *models.Account
	Balance    *big.Int
	Artifact   *models.Artifact
	Deployment *models.Deployment
}

// DeployContract deploys one contract from the first available signer.
// Every step must succeed before the next starts; there is no retry and no rollback.
type DeployContract struct {
	config    *config.RuntimeConfig
	accounts  AccountSource
	balances  BalanceReader
	artifacts ArtifactRepository
	deployer  ContractDeployer
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	accounts AccountSource,
	balances BalanceReader,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		accounts:  accounts,
		balances:  balances,
		artifacts: artifacts,
		deployer:  deployer,
		log:       log,
	}
}

// Run executes the deployment sequence
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	observer := params.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	progress := params.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	contractName := params.ContractName
	if contractName == "" {
		contractName = uc.config.ContractName
	}

	result := &DeployContractResult{Network: uc.config.Network}

	// Stage 1: first available signer
	progress.OnProgress(ctx, ProgressEvent{Stage: StageSigner, Message: "Loading signers"})
	accounts, err := uc.accounts.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signers: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: set --private-key, DEPLOYER_PRIVATE_KEY or accounts for network %s",
			domain.ErrNoSigner, uc.networkName())
	}
	result.Deployer = accounts[0]
	uc.log.Debug("selected deployer", "address", result.Deployer.Address, "kind", result.Deployer.Kind, "available", len(accounts))
	observer.OnDeployer(result.Deployer)

	// Stage 2: balance
	progress.OnProgress(ctx, ProgressEvent{Stage: StageBalance, Message: "Fetching balance"})
	balance, err := uc.balances.BalanceAt(ctx, result.Deployer.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance of %s: %w", result.Deployer.Address, err)
	}
	result.Balance = balance
	uc.log.Debug("fetched balance", "wei", balance, "ether", models.FormatEther(balance))
	observer.OnBalance(result.Deployer, balance)

	// Stage 3: contract factory
	progress.OnProgress(ctx, ProgressEvent{Stage: StageArtifact, Message: fmt.Sprintf("Resolving %s", contractName)})
	artifact, err := uc.artifacts.GetArtifact(ctx, contractName)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract factory for %s: %w", contractName, err)
	}
	result.Artifact = artifact

	factory, err := models.NewContractFactory(artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract factory for %s: %w", contractName, err)
	}
	uc.log.Debug("resolved artifact", "contract", artifact.FullyQualifiedName(), "format", artifact.Format, "path", artifact.Path)

	// Stage 4: deploy without constructor arguments and wait for confirmation
	progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying, Message: fmt.Sprintf("Deploying %s", factory.Name), Spinner: true})
	deployment, err := uc.deployer.Deploy(ctx, result.Deployer, factory)
	if err != nil {
		progress.Error(fmt.Sprintf("Deployment of %s failed", factory.Name))
		return nil, fmt.Errorf("failed to deploy %s: %w", factory.Name, err)
	}
	result.Deployment = deployment
	progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	uc.log.Debug("deployment confirmed", "address", deployment.Address, "tx", deployment.TxHash, "block", deployment.BlockNumber, "gas", deployment.GasUsed)
	observer.OnDeployed(deployment)

	return result, nil
}

func (uc *DeployContract) networkName() string {
	if uc.config.Network == nil {
		return ""
	}
	return uc.config.Network.Name
}
