// Package summary defines the run report the pipeline produces for its
// callers: counts of work attempted and the accumulated non-fatal failures.
package summary

import "time"

// Failure records one non-fatal per-item failure.
type Failure struct {
	// Name of the schema or spec the failure applies to.
	Name string `json:"name"`

	// Stage that recorded the failure ("translate", "emit").
	Stage string `json:"stage"`

	// Reason describes what went wrong.
	Reason string `json:"reason"`
}

// Warning records one non-fatal derivation warning, copied out of the spec
// it was attached to.
type Warning struct {
	Spec    string `json:"spec"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Run is the report for one full pipeline run. All non-fatal issues are
// accumulated here rather than raised individually.
type Run struct {
	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// SchemasAttempted is the number of raw schemas loaded.
	SchemasAttempted int `json:"schemasAttempted"`

	// SpecsEmitted is the number of specs successfully persisted.
	SpecsEmitted int `json:"specsEmitted"`

	// SubAssetsExtracted is the number of sub-asset specs created.
	SubAssetsExtracted int `json:"subAssetsExtracted"`

	// TranslationFailures are per-schema failures from the spec builder.
	TranslationFailures []Failure `json:"translationFailures,omitempty"`

	// EmissionFailures are per-spec failures from the emitter.
	EmissionFailures []Failure `json:"emissionFailures,omitempty"`

	// Warnings are derivation warnings collected across all specs.
	Warnings []Warning `json:"warnings,omitempty"`
}

// FailTranslation records a per-schema translation failure.
func (r *Run) FailTranslation(name, reason string) {
	r.TranslationFailures = append(r.TranslationFailures, Failure{
		Name:   name,
		Stage:  "translate",
		Reason: reason,
	})
}

// FailEmission records a per-spec emission failure.
func (r *Run) FailEmission(name, reason string) {
	r.EmissionFailures = append(r.EmissionFailures, Failure{
		Name:   name,
		Stage:  "emit",
		Reason: reason,
	})
}

// AddWarning records one derivation warning.
func (r *Run) AddWarning(specName, stage, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Spec:    specName,
		Stage:   stage,
		Message: message,
	})
}

// Duration returns the wall time of the run.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
