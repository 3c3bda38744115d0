package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/consensus-score/deployer/internal/domain"
	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/consensus-score/deployer/internal/domain/models"
	"github.com/consensus-score/deployer/internal/usecase"
	"github.com/samber/lo"
)

// Indexer discovers compiled contract artifacts and resolves them by name
type Indexer struct {
	root string
	log  *slog.Logger

	once          sync.Once
	indexErr      error
	contractNames map[string][]*models.Artifact // key: contract name
}

// NewIndexer creates a new artifact indexer over the configured artifacts directory
func NewIndexer(cfg *config.RuntimeConfig, log *slog.Logger) *Indexer {
	return &Indexer{
		root: cfg.ArtifactsDir,
		log:  log,
	}
}

// GetArtifact resolves "Name" or "path/File.sol:Name" to a single artifact
func (i *Indexer) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	i.once.Do(func() {
		i.indexErr = i.index(ctx)
	})
	if i.indexErr != nil {
		return nil, i.indexErr
	}

	sourceName, contractName := splitQualifiedName(name)

	matches := i.contractNames[contractName]
	if sourceName != "" {
		matches = lo.Filter(matches, func(a *models.Artifact, _ int) bool {
			return a.SourceName == sourceName || strings.HasSuffix(a.SourceName, "/"+sourceName)
		})
	}
	// The same source compiled twice (e.g. Hardhat and Foundry outputs side by side) is one contract
	matches = lo.UniqBy(matches, func(a *models.Artifact) string {
		return a.FullyQualifiedName()
	})

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no artifact for %s in %s (compile the contracts first)",
			domain.ErrContractNotFound, name, i.root)
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousArtifactErr{
			Name: name,
			Matches: lo.Map(matches, func(a *models.Artifact, _ int) domain.ArtifactCandidate {
				return domain.ArtifactCandidate{Name: a.ContractName, SourceName: a.SourceName, Path: a.Path}
			}),
		}
	}
}

// index walks the artifacts directory once
func (i *Indexer) index(ctx context.Context) error {
	i.contractNames = make(map[string][]*models.Artifact)

	info, err := os.Stat(i.root)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: artifacts directory %s does not exist (compile the contracts first)",
			domain.ErrContractNotFound, i.root)
	}
	if err != nil {
		return fmt.Errorf("failed to read artifacts directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("artifacts path %s is not a directory", i.root)
	}

	var indexed int
	err = filepath.WalkDir(i.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if d.Name() == "build-info" || d.Name() == "cache" {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip non-artifacts and Hardhat debug files
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		artifact, err := parseArtifact(path)
		if err != nil {
			i.log.Debug("skipping unreadable artifact", "path", path, "error", err)
			return nil
		}
		if artifact == nil {
			return nil
		}

		i.contractNames[artifact.ContractName] = append(i.contractNames[artifact.ContractName], artifact)
		indexed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	i.log.Debug("indexed artifacts", "root", i.root, "count", indexed)
	return nil
}

// rawArtifact covers both Hardhat and Foundry artifact layouts
type rawArtifact struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         json.RawMessage `json:"bytecode"`
	DeployedBytecode json.RawMessage `json:"deployedBytecode"`
	Metadata         json.RawMessage `json:"metadata"`
}

// foundryMetadata is the subset of solc metadata carried by Foundry artifacts
type foundryMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// parseArtifact reads one artifact file. Returns nil for JSON files that are not artifacts.
func parseArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.ABI) == 0 || len(raw.Bytecode) == 0 {
		return nil, nil
	}

	artifact := &models.Artifact{
		ContractName:     raw.ContractName,
		SourceName:       raw.SourceName,
		ABI:              raw.ABI,
		Bytecode:         decodeBytecode(raw.Bytecode),
		DeployedBytecode: decodeBytecode(raw.DeployedBytecode),
		Format:           models.HardhatArtifact,
		Path:             path,
	}

	// Foundry: out/<File>.sol/<Name>.json with bytecode objects and solc metadata
	if raw.ContractName == "" {
		artifact.Format = models.FoundryArtifact
		artifact.ContractName = strings.TrimSuffix(filepath.Base(path), ".json")
		artifact.SourceName = filepath.Base(filepath.Dir(path))

		var metadata foundryMetadata
		if len(raw.Metadata) > 0 && json.Unmarshal(raw.Metadata, &metadata) == nil {
			for source, contract := range metadata.Settings.CompilationTarget {
				if contract == artifact.ContractName {
					artifact.SourceName = source
				}
			}
		}
	}

	if artifact.ContractName == "" {
		return nil, nil
	}
	return artifact, nil
}

// decodeBytecode accepts a plain hex string (Hardhat) or a {"object": "0x.."} value (Foundry)
func decodeBytecode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var code string
	if err := json.Unmarshal(raw, &code); err == nil {
		return code
	}

	var object struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &object); err == nil {
		return object.Object
	}
	return ""
}

// splitQualifiedName splits "contracts/File.sol:Name" into its source and contract parts
func splitQualifiedName(name string) (string, string) {
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Indexer)(nil)
