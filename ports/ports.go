// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/artpar/specforge/domain/rawschema"
	"github.com/artpar/specforge/domain/spec"
	"github.com/artpar/specforge/domain/summary"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints schema variant identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Pipeline Edge Ports
// -----------------------------------------------------------------------------

// SchemaSource loads raw resource-type schemas. Loading happens once, at the
// pipeline's edge, before any transformation stage runs.
type SchemaSource interface {
	// Load returns raw schemas keyed by resource-type name.
	Load(ctx context.Context) (map[string]rawschema.Schema, error)
}

// SpecStore persists finalized specs and loads previously emitted ones.
// Prior specs feed the identity reconciler; emission writes one artifact
// per spec into a flat namespace keyed by spec name.
type SpecStore interface {
	// LoadPrior returns previously emitted specs keyed by spec name.
	// A missing or empty output location yields an empty map, not an error.
	LoadPrior(ctx context.Context) (map[string]spec.PkgSpec, error)

	// Emit writes one spec's artifact. A failure is local to that spec.
	Emit(ctx context.Context, s spec.PkgSpec) error
}

// -----------------------------------------------------------------------------
// Catalog Ports
// -----------------------------------------------------------------------------

// CatalogEntry is the catalog's record of one emitted spec.
type CatalogEntry struct {
	Name        string
	SchemaID    string
	Fingerprint string
	Parent      string
	EmittedAt   time.Time
}

// RunRecord is the catalog's record of one pipeline run.
type RunRecord struct {
	ID                  int64
	StartedAt           time.Time
	FinishedAt          time.Time
	SchemasAttempted    int
	SpecsEmitted        int
	TranslationFailures int
	EmissionFailures    int
	Warnings            int
}

// Catalog indexes emitted specs and run history for the CLI and the
// read-only HTTP API.
type Catalog interface {
	// UpsertSpecs replaces catalog entries for the given specs.
	UpsertSpecs(ctx context.Context, entries []CatalogEntry) error

	// ListSpecs returns all catalog entries ordered by name.
	ListSpecs(ctx context.Context) ([]CatalogEntry, error)

	// GetSpec returns one catalog entry by name.
	GetSpec(ctx context.Context, name string) (CatalogEntry, error)

	// RecordRun appends a run history row.
	RecordRun(ctx context.Context, run summary.Run) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// Close releases the underlying store.
	Close() error
}

// -----------------------------------------------------------------------------
// Observability Ports
// -----------------------------------------------------------------------------

// MetricsRecorder receives pipeline counters. A no-op implementation keeps
// the pipeline free of any hard metrics dependency.
type MetricsRecorder interface {
	// RunCompleted records the outcome of one full pipeline run.
	RunCompleted(r summary.Run)

	// StageCompleted records one stage's duration.
	StageCompleted(stage string, d time.Duration)
}

// NopMetrics is a MetricsRecorder that discards everything.
type NopMetrics struct{}

// RunCompleted implements MetricsRecorder.
func (NopMetrics) RunCompleted(summary.Run) {}

// StageCompleted implements MetricsRecorder.
func (NopMetrics) StageCompleted(string, time.Duration) {}

// Ensure interface compliance.
var _ MetricsRecorder = NopMetrics{}
