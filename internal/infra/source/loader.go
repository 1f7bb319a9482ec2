// Package source reads conference YAML files from the local data directory
// and turns them into labeled collections for aggregation.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"deadline-digest/internal/domain/entity"
	"deadline-digest/internal/usecase/ingest"
)

// File names inside the data directory, one per source tag.
const (
	AIFileName       = "ai-conferences.yml"
	SecurityFileName = "security-conferences.yml"
)

// Loader reads conference data files from a directory.
type Loader struct {
	dataDir string
	logger  *slog.Logger
}

// NewLoader creates a Loader rooted at dataDir.
func NewLoader(dataDir string, logger *slog.Logger) *Loader {
	return &Loader{
		dataDir: dataDir,
		logger:  logger,
	}
}

// LoadCollections reads every known source file and returns the collections
// that could be read and parsed. A missing or unparseable file is logged and
// skipped; the returned slice is empty (not nil-error) when no source is
// available, and the caller decides whether that is fatal.
func (l *Loader) LoadCollections() []ingest.Collection {
	sources := []struct {
		tag      string
		fileName string
	}{
		{tag: entity.SourceAI, fileName: AIFileName},
		{tag: entity.SourceSecurity, fileName: SecurityFileName},
	}

	var collections []ingest.Collection
	for _, src := range sources {
		root, err := l.loadFile(src.fileName)
		if err != nil {
			l.logger.Warn("source file unavailable, skipping",
				slog.String("source", src.tag),
				slog.String("file", src.fileName),
				slog.Any("error", err))
			continue
		}
		collections = append(collections, ingest.Collection{
			Tag:  src.tag,
			Root: root,
		})
	}
	return collections
}

// loadFile reads and parses one YAML file into its document root.
func (l *Loader) loadFile(fileName string) (*yaml.Node, error) {
	path := filepath.Join(l.dataDir, fileName)

	data, err := os.ReadFile(path) // #nosec G304 -- path is built from configured data dir
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &root, nil
}
