package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ArtifactFormat identifies the toolchain that produced an artifact
type ArtifactFormat string

const (
	HardhatArtifact ArtifactFormat = "hardhat"
	FoundryArtifact ArtifactFormat = "foundry"
)

// Artifact is a compiled contract resolved from the build output
type Artifact struct {
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
	Format           ArtifactFormat  `json:"format"`
	Path             string          `json:"path"`
}

// FullyQualifiedName returns "source:Contract"
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// ContractFactory deploys creation bytecode described by an ABI
type ContractFactory struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// NewContractFactory parses an artifact into a deployable factory.
// Interfaces and abstract contracts have empty creation bytecode and are rejected.
func NewContractFactory(artifact *Artifact) (*ContractFactory, error) {
	code := strings.TrimSpace(artifact.Bytecode)
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("%s: %w", artifact.FullyQualifiedName(), domain.ErrNotDeployable)
	}
	if strings.Contains(code, "__$") {
		return nil, fmt.Errorf("%s: bytecode has unlinked library references", artifact.FullyQualifiedName())
	}

	bytecode, err := hexutil.Decode(ensureHexPrefix(code))
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode of %s: %w", artifact.FullyQualifiedName(), err)
	}

	rawABI := artifact.ABI
	if len(rawABI) == 0 || string(rawABI) == "null" {
		rawABI = json.RawMessage("[]")
	}
	parsed, err := abi.JSON(bytes.NewReader(rawABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", artifact.FullyQualifiedName(), err)
	}

	return &ContractFactory{
		Name:     artifact.ContractName,
		ABI:      parsed,
		Bytecode: bytecode,
	}, nil
}

// DeployData returns the creation bytecode followed by the ABI-encoded constructor arguments
func (f *ContractFactory) DeployData(args ...any) ([]byte, error) {
	input, err := f.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments for %s: %w", f.Name, err)
	}
	return append(common.CopyBytes(f.Bytecode), input...), nil
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}
