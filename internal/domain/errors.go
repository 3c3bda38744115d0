package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNoSigner is returned when the environment exposes no account able to sign
	ErrNoSigner = errors.New("no signer configured")

	// ErrContractNotFound is returned when no compiled artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNotDeployable is returned when an artifact carries no creation bytecode
	ErrNotDeployable = errors.New("contract has no creation bytecode")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNetworkMismatch is returned when the RPC endpoint reports another chain ID
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrInvalidPrivateKey is returned when a configured private key cannot be decoded
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrDeploymentReverted is returned when the deployment transaction was mined but failed
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrNoCodeAfterDeploy is returned when no code is stored at the created address
	ErrNoCodeAfterDeploy = errors.New("no contract code after deployment")
)

// ArtifactCandidate identifies one compiled artifact matching a lookup
type ArtifactCandidate struct {
	Name       string
	SourceName string
	Path       string
}

// AmbiguousArtifactErr is returned when a bare contract name matches several artifacts
type AmbiguousArtifactErr struct {
	Name    string
	Matches []ArtifactCandidate
}

func (e AmbiguousArtifactErr) Error() string {
	sorted := make([]ArtifactCandidate, len(e.Matches))
	copy(sorted, e.Matches)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SourceName+":"+sorted[i].Name < sorted[j].SourceName+":"+sorted[j].Name
	})

	var suggestions []string
	for _, match := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", match.SourceName, match.Name))
	}

	return fmt.Sprintf("multiple artifacts found for contract %s - use source:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
