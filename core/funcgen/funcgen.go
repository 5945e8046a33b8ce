// Package funcgen attaches default lifecycle, leaf, and management function
// stubs to every spec. Generation is unconditional: conflicts with
// user-authored overrides are resolved later, by the identity reconciler,
// which is the single authority for that decision.
package funcgen

import (
	"fmt"

	"github.com/artpar/specforge/domain/spec"
)

// Fixed operation menus per function kind.
var (
	ActionOps     = []string{"create", "refresh", "update", "delete"}
	LeafOps       = []string{"qualification", "codegen"}
	ManagementOps = []string{"import", "discover"}
)

// Actions attaches the default lifecycle action stubs.
type Actions struct{}

// NewActions creates the action generator stage.
func NewActions() Actions { return Actions{} }

// Name implements pipeline.Stage.
func (Actions) Name() string { return "generate-action-funcs" }

// Run implements pipeline.Stage.
func (Actions) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	return attach(specs, spec.FuncAction, ActionOps), nil
}

// Leaves attaches the default leaf function stubs.
type Leaves struct{}

// NewLeaves creates the leaf generator stage.
func NewLeaves() Leaves { return Leaves{} }

// Name implements pipeline.Stage.
func (Leaves) Name() string { return "generate-leaf-funcs" }

// Run implements pipeline.Stage.
func (Leaves) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	return attach(specs, spec.FuncLeaf, LeafOps), nil
}

// Management attaches the default management function stubs.
type Management struct{}

// NewManagement creates the management generator stage.
func NewManagement() Management { return Management{} }

// Name implements pipeline.Stage.
func (Management) Name() string { return "generate-management-funcs" }

// Run implements pipeline.Stage.
func (Management) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	return attach(specs, spec.FuncManagement, ManagementOps), nil
}

func attach(specs []spec.PkgSpec, kind spec.FuncKind, ops []string) []spec.PkgSpec {
	for i := range specs {
		s := &specs[i]
		for _, op := range ops {
			if s.HasFunc(kind, op) {
				continue
			}
			s.Funcs = append(s.Funcs, spec.Func{
				Name:   op,
				Kind:   kind,
				Origin: spec.OriginGenerated,
				Code:   StubCode(kind, op, s.Name),
			})
		}
	}
	return specs
}

// StubCode returns the default function body for one operation. The body is
// a deterministic function of (kind, op, spec name) so repeated runs produce
// stable artifacts.
func StubCode(kind spec.FuncKind, op, specName string) string {
	return fmt.Sprintf(
		"async function main(input) {\n"+
			"    // default %s/%s for %s\n"+
			"    return { status: \"ok\" };\n"+
			"}\n",
		kind, op, specName,
	)
}
