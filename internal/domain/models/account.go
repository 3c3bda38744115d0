package models

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// AccountKind tells how transactions for an account get signed
type AccountKind string

const (
	// LocalAccount signs in-process with a private key
	LocalAccount AccountKind = "local"
	// NodeAccount is unlocked on the RPC node and signs through eth_sendTransaction
	NodeAccount AccountKind = "node"
)

const etherDecimals = 18

// Account is a signer able to authorize and pay for transactions
type Account struct {
	Address    common.Address    `json:"address"`
	Kind       AccountKind       `json:"kind"`
	PrivateKey *ecdsa.PrivateKey `json:"-"`
}

// FormatEther renders a wei amount as a decimal ether string
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}
