package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/artpar/specforge/domain/summary"
)

func TestRunCompleted(t *testing.T) {
	c := NewWithRegistry(prometheus.NewRegistry())

	run := summary.Run{
		StartedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt:       time.Date(2025, 6, 1, 12, 0, 2, 0, time.UTC),
		SchemasAttempted: 5,
		SpecsEmitted:     4,
	}
	run.FailTranslation("Bad::Type", "unrecognized property shape")
	run.AddWarning("queue", "derive-output-sockets", "non-scalar")

	c.RunCompleted(run)
	c.RunCompleted(run)

	if got := testutil.ToFloat64(c.RunsTotal); got != 2 {
		t.Errorf("runs_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.SchemasAttempted); got != 10 {
		t.Errorf("schemas_attempted_total = %v, want 10", got)
	}
	if got := testutil.ToFloat64(c.SpecsEmitted); got != 8 {
		t.Errorf("specs_emitted_total = %v, want 8", got)
	}
	if got := testutil.ToFloat64(c.TranslationFailures); got != 2 {
		t.Errorf("translation_failures_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Warnings); got != 2 {
		t.Errorf("warnings_total = %v, want 2", got)
	}
}

func TestStageCompleted(t *testing.T) {
	c := NewWithRegistry(prometheus.NewRegistry())
	c.StageCompleted("derive-output-sockets", 10*time.Millisecond)

	if got := testutil.CollectAndCount(c.StageDuration); got != 1 {
		t.Errorf("stage series = %d, want 1", got)
	}
}
