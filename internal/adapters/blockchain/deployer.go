package blockchain

import (
	"context"
	"fmt"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Deploy sends the creation transaction from account and blocks until it is mined.
// Local accounts sign in-process, node accounts sign through eth_sendTransaction.
func (c *Client) Deploy(ctx context.Context, account *models.Account, factory *models.ContractFactory, args ...any) (*models.Deployment, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	var receipt *types.Receipt
	switch account.Kind {
	case models.LocalAccount:
		receipt, err = c.deployLocal(ctx, backend, account, factory, args...)
	case models.NodeAccount:
		receipt, err = c.deployWithNode(ctx, backend, account, factory, args...)
	default:
		return nil, fmt.Errorf("unsupported account kind: %s", account.Kind)
	}
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeploymentReverted, receipt.TxHash.Hex())
	}

	code, err := backend.CodeAt(ctx, receipt.ContractAddress, receipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read code at %s: %w", receipt.ContractAddress.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoCodeAfterDeploy, receipt.ContractAddress.Hex())
	}

	return &models.Deployment{
		ContractName: factory.Name,
		Address:      receipt.ContractAddress,
		TxHash:       receipt.TxHash,
		BlockNumber:  receipt.BlockNumber.Uint64(),
		GasUsed:      receipt.GasUsed,
	}, nil
}

func (c *Client) deployLocal(ctx context.Context, backend Backend, account *models.Account, factory *models.ContractFactory, args ...any) (*types.Receipt, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(account.PrivateKey, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(opts, factory.ABI, factory.Bytecode, backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}
	c.log.Debug("deployment sent", "tx", tx.Hash(), "address", address, "nonce", tx.Nonce(), "gas", tx.Gas())

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	return receipt, nil
}

// sendTxArgs is the eth_sendTransaction request for a contract creation
type sendTxArgs struct {
	From common.Address `json:"from"`
	Data hexutil.Bytes  `json:"data"`
}

func (c *Client) deployWithNode(ctx context.Context, backend Backend, account *models.Account, factory *models.ContractFactory, args ...any) (*types.Receipt, error) {
	data, err := factory.DeployData(args...)
	if err != nil {
		return nil, err
	}

	var txHash common.Hash
	if err := c.rpc.CallContext(ctx, &txHash, "eth_sendTransaction", sendTxArgs{From: account.Address, Data: data}); err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}
	c.log.Debug("deployment sent", "tx", txHash, "from", account.Address)

	// keeps polling through transient receipt errors (e.g. indexing still in progress)
	receipt, err := bind.WaitMinedHash(ctx, backend, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", txHash.Hex(), err)
	}
	return receipt, nil
}
