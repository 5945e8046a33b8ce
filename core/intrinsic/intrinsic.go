// Package intrinsic attaches the fixed platform-provided functions every
// spec carries. The stage runs after sub-asset extraction so extracted specs
// are covered too.
package intrinsic

import "github.com/artpar/specforge/domain/spec"

const stageName = "attach-intrinsics"

// Builtins is the fixed intrinsic set. Intrinsics are shared: specs bind
// them by reference rather than owning a copy of the code.
var Builtins = []spec.Func{
	{
		// Identity pass-through, used for computing default values.
		Name:   "identity",
		Kind:   spec.FuncIntrinsic,
		Origin: spec.OriginGenerated,
		Ref:    "intrinsic:identity",
	},
	{
		Name:   "normalizeToArray",
		Kind:   spec.FuncIntrinsic,
		Origin: spec.OriginGenerated,
		Ref:    "intrinsic:normalizeToArray",
	},
}

// Attacher binds the intrinsic set to every spec in the collection.
// Idempotent and order-independent with respect to other attached functions.
type Attacher struct{}

// NewAttacher creates the intrinsic attacher.
func NewAttacher() Attacher {
	return Attacher{}
}

// Name implements pipeline.Stage.
func (Attacher) Name() string { return stageName }

// Run implements pipeline.Stage.
func (Attacher) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	for i := range specs {
		Apply(&specs[i])
	}
	return specs, nil
}

// Apply binds the intrinsics to one spec in place.
func Apply(s *spec.PkgSpec) {
	for _, in := range Builtins {
		if s.HasFunc(spec.FuncIntrinsic, in.Name) {
			continue
		}
		s.Funcs = append(s.Funcs, in)
	}
}
