package blockchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Accounts returns the configured private keys in order. When none are configured
// the node's unlocked accounts (eth_accounts) are used instead.
func (c *Client) Accounts(ctx context.Context) ([]*models.Account, error) {
	if len(c.network.PrivateKeys) > 0 {
		return parsePrivateKeys(c.network.PrivateKeys)
	}

	if _, err := c.connect(ctx); err != nil {
		return nil, err
	}

	var addresses []common.Address
	if err := c.rpc.CallContext(ctx, &addresses, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts failed: %w", err)
	}

	accounts := make([]*models.Account, 0, len(addresses))
	for _, address := range addresses {
		accounts = append(accounts, &models.Account{Address: address, Kind: models.NodeAccount})
	}
	return accounts, nil
}

func parsePrivateKeys(keys []string) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0, len(keys))
	for i, key := range keys {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(key), "0x"))
		if err != nil {
			// never echo the key itself
			return nil, fmt.Errorf("%w: account #%d: %v", domain.ErrInvalidPrivateKey, i, err)
		}
		accounts = append(accounts, &models.Account{
			Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
			Kind:       models.LocalAccount,
			PrivateKey: privateKey,
		})
	}
	return accounts, nil
}
