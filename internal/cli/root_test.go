package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nodeAccount     = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	contractAddress = "0x5fbdb2315678afecb367f032d93f642f64180aa3"
	deployTxHash    = "0x1111111111111111111111111111111111111111111111111111111111111111"

	consensusScoreArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "ConsensusScore",
  "sourceName": "contracts/ConsensusScore.sol",
  "abi": [],
  "bytecode": "0x6001600c60003960016000f300",
  "deployedBytecode": "0x00"
}`
)

// rpcStub is a JSON-RPC endpoint behaving like a dev node with unlocked accounts
type rpcStub struct {
	mu       sync.Mutex
	accounts []string
	calls    []string

	// receiptStatus and code default to a successful deployment
	receiptStatus string
	code          string
}

func (s *rpcStub) called(method string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, call := range s.calls {
		if call == method {
			return true
		}
	}
	return false
}

func (s *rpcStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *rpcStub) setDeployOutcome(receiptStatus, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receiptStatus = receiptStatus
	s.code = code
}

func (s *rpcStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls = append(s.calls, req.Method)
	receiptStatus, code := s.receiptStatus, s.code
	s.mu.Unlock()

	var result any
	switch req.Method {
	case "eth_chainId":
		result = "0x7a69"
	case "eth_accounts":
		result = s.accounts
	case "eth_getBalance":
		result = "0x21e19e0c9bab2400000"
	case "eth_sendTransaction":
		result = deployTxHash
	case "eth_getTransactionReceipt":
		result = map[string]any{
			"type":              "0x2",
			"status":            receiptStatus,
			"cumulativeGasUsed": "0xcf08",
			"gasUsed":           "0xcf08",
			"effectiveGasPrice": "0x3b9aca00",
			"logsBloom":         "0x" + fmt.Sprintf("%0512x", 0),
			"logs":              []any{},
			"transactionHash":   deployTxHash,
			"transactionIndex":  "0x0",
			"contractAddress":   contractAddress,
			"blockHash":         "0x2222222222222222222222222222222222222222222222222222222222222222",
			"blockNumber":       "0x1",
			"from":              nodeAccount,
			"to":                nil,
		}
	case "eth_getCode":
		result = code
	default:
		writeRPC(w, req.ID, nil, fmt.Sprintf("method %s not supported", req.Method))
		return
	}
	writeRPC(w, req.ID, result, "")
}

func writeRPC(w http.ResponseWriter, id json.RawMessage, result any, errMsg string) {
	resp := map[string]any{"jsonrpc": "2.0", "id": id}
	if errMsg != "" {
		resp["error"] = map[string]any{"code": -32601, "message": errMsg}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type testProject struct {
	root string
	stub *rpcStub
	url  string
}

func newTestProject(t *testing.T, accounts ...string) *testProject {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	stub := &rpcStub{
		accounts:      append([]string{}, accounts...),
		receiptStatus: "0x1",
		code:          "0x00",
	}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	root := t.TempDir()
	t.Setenv("DEPLOYER_PROJECT_ROOT", root)
	t.Setenv("DEPLOYER_PRIVATE_KEY", "")
	t.Setenv("DEPLOYER_NETWORK", "")
	t.Setenv("DEPLOYER_OUTPUT", "")

	return &testProject{root: root, stub: stub, url: server.URL}
}

func (p *testProject) writeArtifact(t *testing.T) {
	t.Helper()
	path := filepath.Join(p.root, "artifacts", "contracts", "ConsensusScore.sol", "ConsensusScore.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(consensusScoreArtifact), 0644))
}

func (p *testProject) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--rpc-url", p.url, "--no-progress"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDeployCommand(t *testing.T) {
	t.Run("deploys from the node account", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)
		project.writeArtifact(t)

		stdout, _, err := project.run()
		require.NoError(t, err)

		assert.Equal(t,
			"Deploying contracts with the account: 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266\n"+
				"Account balance: 10000000000000000000000\n"+
				"Token address: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n",
			stdout)
		assert.True(t, project.stub.called("eth_sendTransaction"))
	})

	t.Run("deploy subcommand with json output", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)
		project.writeArtifact(t)

		stdout, _, err := project.run("deploy", "--output", "json")
		require.NoError(t, err)

		var output map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &output))
		assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", output["address"])
		assert.Equal(t, "10000", output["balanceEther"])
		assert.Equal(t, float64(31337), output["chainId"])
	})

	t.Run("no signer", func(t *testing.T) {
		project := newTestProject(t)
		project.writeArtifact(t)

		stdout, stderr, err := project.run()
		require.ErrorIs(t, err, domain.ErrNoSigner)

		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Error: no signer configured")
		assert.False(t, project.stub.called("eth_sendTransaction"))
	})

	t.Run("missing artifact sends nothing", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)

		stdout, stderr, err := project.run()
		require.ErrorIs(t, err, domain.ErrContractNotFound)

		assert.Contains(t, stdout, "Account balance: 10000000000000000000000\n")
		assert.NotContains(t, stdout, "Token address")
		assert.Contains(t, stderr, "ConsensusScore")
		assert.False(t, project.stub.called("eth_sendTransaction"))
	})

	t.Run("reverted deployment", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)
		project.writeArtifact(t)
		project.stub.setDeployOutcome("0x0", "0x00")

		stdout, stderr, err := project.run()
		require.ErrorIs(t, err, domain.ErrDeploymentReverted)

		assert.NotContains(t, stdout, "Token address")
		assert.Contains(t, stderr, "Error: failed to deploy ConsensusScore: deployment transaction reverted: "+deployTxHash)
		assert.False(t, project.stub.called("eth_getCode"))
	})

	t.Run("no code at the created address", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)
		project.writeArtifact(t)
		project.stub.setDeployOutcome("0x1", "0x")

		stdout, stderr, err := project.run()
		require.ErrorIs(t, err, domain.ErrNoCodeAfterDeploy)

		assert.NotContains(t, stdout, "Token address")
		assert.Contains(t, stderr, "no contract code after deployment")
	})

	t.Run("invalid private key", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)
		project.writeArtifact(t)

		_, stderr, err := project.run("--private-key", "0xdeadbeef")
		require.ErrorIs(t, err, domain.ErrInvalidPrivateKey)
		assert.NotContains(t, stderr, "0xdeadbeef")
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		project := newTestProject(t, nodeAccount)
		project.writeArtifact(t)
		require.NoError(t, os.WriteFile(filepath.Join(project.root, "deployer.toml"), []byte(`
[networks.mainnet]
rpc_url = "http://127.0.0.1:1"
chain_id = 1
`), 0644))

		_, _, err := project.run("--network", "mainnet")
		require.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})
}

func TestRootCmd_ReleasesContextOnFailure(t *testing.T) {
	project := newTestProject(t)
	project.writeArtifact(t)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--rpc-url", project.url, "--no-progress"})

	require.ErrorIs(t, cmd.Execute(), domain.ErrNoSigner)
	assert.ErrorIs(t, cmd.Context().Err(), context.Canceled)
}

func TestNetworksCommand(t *testing.T) {
	project := newTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(project.root, "deployer.toml"), []byte(`
default_network = "sepolia"

[networks.sepolia]
rpc_url = "https://sepolia.infura.io/v3/secret-project-id"
chain_id = 11155111
`), 0644))

	stdout, _, err := project.run("networks")
	require.NoError(t, err)

	assert.Contains(t, stdout, "sepolia")
	assert.Contains(t, stdout, "localhost")
	assert.Contains(t, stdout, "https://sepolia.infura.io/****")
	assert.NotContains(t, stdout, "secret-project-id")
	assert.Zero(t, project.stub.callCount())
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "deployer version dev\n", stdout.String())
}
