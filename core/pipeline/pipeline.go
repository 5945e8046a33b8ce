// Package pipeline runs the ordered transformation stages over the shared
// spec collection. Each stage is a total function from collection to
// collection; a stage completes for the whole collection before the next
// begins, because later stages need a complete, consistent view for
// cross-spec lookups.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/specforge/domain/spec"
	"github.com/artpar/specforge/ports"
)

// Stage transforms the spec collection. An element may be added, modified,
// or removed, but a stage never aborts on a per-spec issue: non-fatal
// problems are attached to the affected spec as warnings.
type Stage interface {
	// Name identifies the stage in logs and metrics.
	Name() string

	// Run transforms the collection.
	Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error)
}

// Pipeline is an ordered list of stages with a barrier between each.
type Pipeline struct {
	stages  []Stage
	logger  zerolog.Logger
	metrics ports.MetricsRecorder
}

// New creates a pipeline. A nil metrics recorder is replaced by a no-op.
func New(logger zerolog.Logger, metrics ports.MetricsRecorder, stages ...Stage) *Pipeline {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Pipeline{
		stages:  stages,
		logger:  logger,
		metrics: metrics,
	}
}

// Run executes every stage in order. The collection returned by one stage is
// the input of the next. Only a stage-level failure (identity conflict)
// aborts the run.
func (p *Pipeline) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	for _, st := range p.stages {
		start := time.Now()

		out, err := st.Run(specs)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name(), err)
		}
		specs = out

		elapsed := time.Since(start)
		p.metrics.StageCompleted(st.Name(), elapsed)
		p.logger.Debug().
			Str("stage", st.Name()).
			Int("specs", len(specs)).
			Dur("elapsed", elapsed).
			Msg("stage complete")
	}

	return specs, nil
}
