// Package schemafile loads raw resource schemas from a directory of JSON
// files, one file per resource type.
package schemafile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/artpar/specforge/domain/rawschema"
	"github.com/artpar/specforge/ports"
)

// Source loads schemas from a directory.
type Source struct {
	dir    string
	logger zerolog.Logger
}

// New creates a schema source over a directory.
func New(dir string, logger zerolog.Logger) *Source {
	return &Source{dir: dir, logger: logger}
}

// Load reads every *.json file in the directory and returns the parsed
// schemas keyed by type name. Property declaration order inside each file is
// preserved; downstream derivation tie-breaks depend on it.
func (s *Source) Load(ctx context.Context) (map[string]rawschema.Schema, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir %s: %w", s.dir, err)
	}

	out := make(map[string]rawschema.Schema)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", path, err)
		}

		schema, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", path, err)
		}
		if schema.TypeName == "" {
			return nil, fmt.Errorf("parse schema %s: missing typeName", path)
		}
		if _, dup := out[schema.TypeName]; dup {
			return nil, fmt.Errorf("duplicate schema for type %q in %s", schema.TypeName, path)
		}

		out[schema.TypeName] = schema
		s.logger.Debug().
			Str("type", schema.TypeName).
			Str("file", entry.Name()).
			Int("properties", len(schema.Properties)).
			Msg("schema loaded")
	}

	return out, nil
}

// Ensure interface compliance.
var _ ports.SchemaSource = (*Source)(nil)
