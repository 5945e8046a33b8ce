// Package metrics provides Prometheus metrics collection for the compiler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/artpar/specforge/domain/summary"
	"github.com/artpar/specforge/ports"
)

// Collector holds all Prometheus metrics for the pipeline.
type Collector struct {
	RunsTotal           prometheus.Counter
	RunDuration         prometheus.Histogram
	SchemasAttempted    prometheus.Counter
	SpecsEmitted        prometheus.Counter
	TranslationFailures prometheus.Counter
	EmissionFailures    prometheus.Counter
	Warnings            prometheus.Counter
	StageDuration       *prometheus.HistogramVec
}

// New creates a collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector on a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "specforge",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs completed",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "specforge",
			Name:      "run_duration_seconds",
			Help:      "Full pipeline run duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		SchemasAttempted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "specforge",
			Name:      "schemas_attempted_total",
			Help:      "Total raw schemas attempted across runs",
		}),
		SpecsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "specforge",
			Name:      "specs_emitted_total",
			Help:      "Total specs successfully emitted across runs",
		}),
		TranslationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "specforge",
			Name:      "translation_failures_total",
			Help:      "Total per-schema translation failures",
		}),
		EmissionFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "specforge",
			Name:      "emission_failures_total",
			Help:      "Total per-spec emission failures",
		}),
		Warnings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "specforge",
			Name:      "warnings_total",
			Help:      "Total derivation warnings",
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "specforge",
			Name:      "stage_duration_seconds",
			Help:      "Per-stage duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 5},
		}, []string{"stage"}),
	}
}

// RunCompleted implements ports.MetricsRecorder.
func (c *Collector) RunCompleted(r summary.Run) {
	c.RunsTotal.Inc()
	c.RunDuration.Observe(r.Duration().Seconds())
	c.SchemasAttempted.Add(float64(r.SchemasAttempted))
	c.SpecsEmitted.Add(float64(r.SpecsEmitted))
	c.TranslationFailures.Add(float64(len(r.TranslationFailures)))
	c.EmissionFailures.Add(float64(len(r.EmissionFailures)))
	c.Warnings.Add(float64(len(r.Warnings)))
}

// StageCompleted implements ports.MetricsRecorder.
func (c *Collector) StageCompleted(stage string, d time.Duration) {
	c.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Ensure interface compliance.
var _ ports.MetricsRecorder = (*Collector)(nil)
