package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// Deployment is the handle of a confirmed contract creation
type Deployment struct {
	ContractName string         `json:"contractName" yaml:"contractName"`
	Address      common.Address `json:"address" yaml:"address"`
	TxHash       common.Hash    `json:"txHash" yaml:"txHash"`
	BlockNumber  uint64         `json:"blockNumber" yaml:"blockNumber"`
	GasUsed      uint64         `json:"gasUsed" yaml:"gasUsed"`
}
