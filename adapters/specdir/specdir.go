// Package specdir persists spec artifacts as pretty-printed JSON documents
// in a flat directory keyed by spec name, and loads previously emitted
// documents back for identity reconciliation.
package specdir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/specforge/domain/spec"
	"github.com/artpar/specforge/ports"
)

// Document is the on-disk artifact envelope. Apart from GeneratedAt the
// encoding is a pure function of the spec, so regenerations produce minimal
// diffs.
type Document struct {
	Kind        string       `json:"kind"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Spec        spec.PkgSpec `json:"spec"`
}

// DocumentKind identifies spec artifacts.
const DocumentKind = "PkgSpec"

// Store reads and writes spec artifacts in one directory.
type Store struct {
	dir    string
	clock  ports.Clock
	logger zerolog.Logger
}

// New creates a store over a directory. The directory is created on first
// emit if missing.
func New(dir string, clock ports.Clock, logger zerolog.Logger) *Store {
	return &Store{dir: dir, clock: clock, logger: logger}
}

// LoadPrior reads every artifact in the directory. A missing directory
// yields an empty map: first runs have no prior state. A corrupt artifact is
// an error rather than a skip, because silently dropping prior state would
// mint new identities and orphan existing references.
func (st *Store) LoadPrior(ctx context.Context) (map[string]spec.PkgSpec, error) {
	entries, err := os.ReadDir(st.dir)
	if os.IsNotExist(err) {
		return map[string]spec.PkgSpec{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read spec dir %s: %w", st.dir, err)
	}

	out := make(map[string]spec.PkgSpec)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(st.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %w", path, err)
		}

		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse artifact %s: %w", path, err)
		}
		if doc.Kind != DocumentKind || doc.Spec.Name == "" {
			return nil, fmt.Errorf("artifact %s is not a spec document", path)
		}

		out[doc.Spec.Name] = doc.Spec
	}

	st.logger.Debug().Int("specs", len(out)).Str("dir", st.dir).Msg("prior specs loaded")
	return out, nil
}

// Emit writes one spec's artifact. A failure is local to the spec.
func (st *Store) Emit(ctx context.Context, s spec.PkgSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return fmt.Errorf("create spec dir %s: %w", st.dir, err)
	}

	doc := Document{
		Kind:        DocumentKind,
		GeneratedAt: st.clock.Now().UTC(),
		Spec:        s,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode spec %s: %w", s.Name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(st.dir, FileName(s.Name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}

	return nil
}

// FileName maps a spec name onto a filesystem-safe artifact name. The name
// is not required to round-trip: artifacts carry the spec name inside.
func FileName(specName string) string {
	var b strings.Builder
	for _, r := range specName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String() + ".json"
}

// Ensure interface compliance.
var _ ports.SpecStore = (*Store)(nil)
