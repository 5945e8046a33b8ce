// Package app orchestrates the compiler: loading the pipeline's edges,
// fanning out translation, running the ordered stages, and emitting final
// artifacts.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/artpar/specforge/core/augment"
	"github.com/artpar/specforge/core/derive"
	"github.com/artpar/specforge/core/extract"
	"github.com/artpar/specforge/core/funcgen"
	"github.com/artpar/specforge/core/intrinsic"
	"github.com/artpar/specforge/core/pipeline"
	"github.com/artpar/specforge/core/reconcile"
	"github.com/artpar/specforge/core/resolve"
	"github.com/artpar/specforge/core/synth"
	"github.com/artpar/specforge/core/translate"
	"github.com/artpar/specforge/domain/rawschema"
	"github.com/artpar/specforge/domain/spec"
	"github.com/artpar/specforge/domain/summary"
	"github.com/artpar/specforge/ports"
)

// Options tune the generator.
type Options struct {
	// MaxDepth bounds property-tree recursion during translation.
	// Zero selects the translate package default.
	MaxDepth int

	// PromotionThreshold is the minimum member count for sub-asset
	// extraction. Zero selects the extract package default.
	PromotionThreshold int

	// Workers bounds the translation fan-out. Zero selects NumCPU.
	Workers int
}

// Generator runs the full compile: load, translate, transform, reconcile,
// emit.
type Generator struct {
	schemas ports.SchemaSource
	store   ports.SpecStore
	catalog ports.Catalog
	ids     ports.IDGenerator
	clock   ports.Clock
	metrics ports.MetricsRecorder
	logger  zerolog.Logger

	mu   sync.RWMutex
	opts Options
}

// NewGenerator wires a generator. catalog may be nil; metrics may be nil.
func NewGenerator(
	schemas ports.SchemaSource,
	store ports.SpecStore,
	catalog ports.Catalog,
	ids ports.IDGenerator,
	clock ports.Clock,
	metrics ports.MetricsRecorder,
	logger zerolog.Logger,
	opts Options,
) *Generator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Generator{
		schemas: schemas,
		store:   store,
		catalog: catalog,
		ids:     ids,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
		opts:    opts,
	}
}

// SetOptions replaces the tuning options. The next Run picks them up; a run
// already in flight keeps the options it started with.
func (g *Generator) SetOptions(opts Options) {
	g.mu.Lock()
	g.opts = opts
	g.mu.Unlock()
}

func (g *Generator) options() Options {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.opts
}

// Run executes one full pipeline run and returns its report. All non-fatal
// issues accumulate into the report; only an identity conflict or a total
// emission failure is returned as an error.
func (g *Generator) Run(ctx context.Context) (summary.Run, error) {
	report := summary.Run{StartedAt: g.clock.Now()}
	opts := g.options()

	// The two edge loads are independent and proceed concurrently.
	var (
		wg       sync.WaitGroup
		raw      map[string]rawschema.Schema
		prior    map[string]spec.PkgSpec
		loadErr  error
		priorErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, loadErr = g.schemas.Load(ctx)
	}()
	go func() {
		defer wg.Done()
		prior, priorErr = g.store.LoadPrior(ctx)
	}()
	wg.Wait()

	if loadErr != nil {
		return report, fmt.Errorf("load schemas: %w", loadErr)
	}
	if priorErr != nil {
		return report, fmt.Errorf("load prior specs: %w", priorErr)
	}

	report.SchemasAttempted = len(raw)
	g.logger.Info().
		Int("schemas", len(raw)).
		Int("prior", len(prior)).
		Msg("starting pipeline run")

	specs := g.translateAll(raw, &report, opts)

	pl := pipeline.New(g.logger, g.metrics,
		derive.NewDeriver(),
		augment.NewDefaults(),
		funcgen.NewActions(),
		funcgen.NewLeaves(),
		funcgen.NewManagement(),
		extract.NewExtractor(opts.PromotionThreshold),
		intrinsic.NewAttacher(),
		resolve.NewResolver(),
		synth.NewSynthesizer(),
		reconcile.NewReconciler(prior, g.ids),
	)

	specs, err := pl.Run(specs)
	if err != nil {
		return report, err
	}

	for i := range specs {
		if specs[i].Parent != "" {
			report.SubAssetsExtracted++
		}
		for _, w := range specs[i].Warnings {
			report.AddWarning(specs[i].Name, w.Stage, w.Message)
		}
	}

	entries := g.emitAll(ctx, specs, &report)

	if len(specs) > 0 && report.SpecsEmitted == 0 {
		return report, fmt.Errorf("emission failed for all %d specs", len(specs))
	}

	if g.catalog != nil {
		if err := g.catalog.UpsertSpecs(ctx, entries); err != nil {
			g.logger.Warn().Err(err).Msg("catalog update failed")
		}
	}

	report.FinishedAt = g.clock.Now()
	if g.catalog != nil {
		if err := g.catalog.RecordRun(ctx, report); err != nil {
			g.logger.Warn().Err(err).Msg("run history record failed")
		}
	}

	g.metrics.RunCompleted(report)
	g.logger.Info().
		Int("attempted", report.SchemasAttempted).
		Int("emitted", report.SpecsEmitted).
		Int("subAssets", report.SubAssetsExtracted).
		Int("translationFailures", len(report.TranslationFailures)).
		Int("emissionFailures", len(report.EmissionFailures)).
		Int("warnings", len(report.Warnings)).
		Dur("elapsed", report.Duration()).
		Msg("pipeline run complete")

	return report, nil
}

// translateAll fans translation out over a worker pool. Individual schemas
// have no cross-dependencies; results are re-sorted by name so downstream
// tie-breaks are reproducible regardless of completion order.
func (g *Generator) translateAll(raw map[string]rawschema.Schema, report *summary.Run, opts Options) []spec.PkgSpec {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(names) {
		workers = len(names)
	}

	builder := translate.NewBuilder(opts.MaxDepth)

	var (
		mu    sync.Mutex
		specs []spec.PkgSpec
		wg    sync.WaitGroup
	)
	jobs := make(chan string)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				s, err := builder.Translate(raw[name])
				mu.Lock()
				if err != nil {
					report.FailTranslation(name, err.Error())
					g.logger.Warn().Str("type", name).Err(err).Msg("schema skipped")
				} else {
					specs = append(specs, s)
				}
				mu.Unlock()
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	spec.SortByName(specs)
	return specs
}

// emitAll persists every finalized spec. A per-spec failure is recorded and
// skipped; the batch runs to completion.
func (g *Generator) emitAll(ctx context.Context, specs []spec.PkgSpec, report *summary.Run) []ports.CatalogEntry {
	emittedAt := g.clock.Now()
	var entries []ports.CatalogEntry

	for i := range specs {
		if err := g.store.Emit(ctx, specs[i]); err != nil {
			report.FailEmission(specs[i].Name, err.Error())
			g.logger.Error().Str("spec", specs[i].Name).Err(err).Msg("emission failed")
			continue
		}
		report.SpecsEmitted++
		entries = append(entries, ports.CatalogEntry{
			Name:        specs[i].Name,
			SchemaID:    specs[i].SchemaID,
			Fingerprint: spec.Fingerprint(specs[i]),
			Parent:      specs[i].Parent,
			EmittedAt:   emittedAt,
		})
	}

	return entries
}
