package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/domain/models"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var labelColor = color.New(color.FgCyan)

// DeployRenderer prints each deployment step as soon as it is known.
// In json/yaml mode nothing is streamed and the whole result is rendered at the end.
type DeployRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, format config.OutputFormat) *DeployRenderer {
	return &DeployRenderer{
		out:    out,
		format: format,
	}
}

func (r *DeployRenderer) streaming() bool {
	return r.format == "" || r.format == config.OutputText
}

// OnDeployer prints the signer address
func (r *DeployRenderer) OnDeployer(account *models.Account) {
	if r.streaming() {
		fmt.Fprintf(r.out, "%s %s\n", labelColor.Sprint("Deploying contracts with the account:"), account.Address.Hex())
	}
}

// OnBalance prints the signer balance in wei
func (r *DeployRenderer) OnBalance(account *models.Account, balance *big.Int) {
	if r.streaming() {
		fmt.Fprintf(r.out, "%s %s\n", labelColor.Sprint("Account balance:"), balance.String())
	}
}

// OnDeployed prints the deployed contract address
func (r *DeployRenderer) OnDeployed(deployment *models.Deployment) {
	if r.streaming() {
		fmt.Fprintf(r.out, "%s %s\n", labelColor.Sprint("Token address:"), deployment.Address.Hex())
	}
}

// DeployOutput is the machine readable form of a deployment
type DeployOutput struct {
	Network      string `json:"network" yaml:"network"`
	ChainID      uint64 `json:"chainId" yaml:"chainId"`
	Deployer     string `json:"deployer" yaml:"deployer"`
	Balance      string `json:"balance" yaml:"balance"`
	BalanceEther string `json:"balanceEther" yaml:"balanceEther"`
	Contract     string `json:"contract" yaml:"contract"`
	Address      string `json:"address" yaml:"address"`
	TxHash       string `json:"txHash" yaml:"txHash"`
	BlockNumber  uint64 `json:"blockNumber" yaml:"blockNumber"`
	GasUsed      uint64 `json:"gasUsed" yaml:"gasUsed"`
}

// NewDeployOutput flattens a deployment result
func NewDeployOutput(result *usecase.DeployContractResult) DeployOutput {
	output := DeployOutput{
		Deployer:     result.Deployer.Address.Hex(),
		Balance:      result.Balance.String(),
		BalanceEther: models.FormatEther(result.Balance),
		Contract:     result.Deployment.ContractName,
		Address:      result.Deployment.Address.Hex(),
		TxHash:       result.Deployment.TxHash.Hex(),
		BlockNumber:  result.Deployment.BlockNumber,
		GasUsed:      result.Deployment.GasUsed,
	}
	if result.Network != nil {
		output.Network = result.Network.Name
		output.ChainID = result.Network.ChainID
	}
	if result.Artifact != nil {
		output.Contract = result.Artifact.FullyQualifiedName()
	}
	return output
}

// Render writes the final result. Text output was already streamed.
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	switch r.format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(NewDeployOutput(result), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case config.OutputYAML:
		encoder := yaml.NewEncoder(r.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewDeployOutput(result)); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return nil
	}
}

// Ensure DeployRenderer observes the deployment and renders its result
var (
	_ usecase.DeployObserver                  = (*DeployRenderer)(nil)
	_ Renderer[*usecase.DeployContractResult] = (*DeployRenderer)(nil)
)
