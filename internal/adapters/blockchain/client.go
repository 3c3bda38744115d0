package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the chain access needed to sign, send and confirm deployments
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// RPCCaller issues raw JSON-RPC calls for methods ethclient does not wrap
type RPCCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Dialer opens a connection to an RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (Backend, RPCCaller, func(), error)

// Client talks to the selected network. The connection is opened on first use.
type Client struct {
	network *config.Network
	dial    Dialer
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	rpc     RPCCaller
	chainID *big.Int
	close   func()
}

// NewClient creates a client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return NewClientWithDialer(cfg.Network, dialEthclient, log)
}

// NewClientWithDialer creates a client using a custom connection factory
func NewClientWithDialer(network *config.Network, dial Dialer, log *slog.Logger) *Client {
	return &Client{
		network: network,
		dial:    dial,
		log:     log,
	}
}

func dialEthclient(ctx context.Context, rpcURL string) (Backend, RPCCaller, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return client, client.Client(), client.Close, nil
}

// connect dials the endpoint and verifies it serves the expected chain
func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}

	backend, rpc, closeFn, err := c.dial(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.network.Name, err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, fmt.Errorf("failed to get chain ID from %s: %w", c.network.Name, err)
	}

	if c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
		if closeFn != nil {
			closeFn()
		}
		return nil, fmt.Errorf("%w: %s expects chain ID %d, endpoint reports %d",
			domain.ErrNetworkMismatch, c.network.Name, c.network.ChainID, chainID.Uint64())
	}

	// If chainID was 0, record the network's chain ID
	if c.network.ChainID == 0 {
		c.network.ChainID = chainID.Uint64()
	}
	c.log.Debug("connected", "network", c.network.Name, "chainId", chainID)

	c.backend = backend
	c.rpc = rpc
	c.chainID = chainID
	c.close = closeFn
	return backend, nil
}

// BalanceAt returns the balance of an address at the latest block, in wei
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return backend.BalanceAt(ctx, address, nil)
}

// Close releases the underlying connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.close != nil {
		c.close()
	}
	c.backend = nil
	c.rpc = nil
	c.close = nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.AccountSource    = (*Client)(nil)
	_ usecase.BalanceReader    = (*Client)(nil)
	_ usecase.ContractDeployer = (*Client)(nil)
)
