package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// Render renders the list of networks as a table, marking the selected one
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deployer.toml [networks]")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"", "NETWORK", "CHAIN ID", "RPC URL", "ACCOUNTS"})

	for _, network := range result.Networks {
		marker := ""
		name := network.Name
		if network.Name == result.Selected {
			marker = "*"
			name = color.New(color.FgGreen, color.Bold).Sprint(network.Name)
		}

		chainID := "-"
		if network.ChainID != 0 {
			chainID = strconv.FormatUint(network.ChainID, 10)
		}

		accounts := "node"
		if network.Accounts > 0 {
			accounts = strconv.Itoa(network.Accounts)
		}

		t.AppendRow(table.Row{marker, name, chainID, network.RPCURL, accounts})
	}

	t.Render()
	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
