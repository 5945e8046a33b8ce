package spec

import (
	"fmt"
	"sort"
)

// Warning is a non-fatal derivation issue attached to the spec it affects.
type Warning struct {
	// Stage names the pipeline stage that recorded the warning.
	Stage string `json:"stage"`

	// Message describes the issue.
	Message string `json:"message"`
}

// PkgSpec is the unit of compiler output: one package specification for a
// resource type or sub-asset.
type PkgSpec struct {
	// Name of the spec. For resource types this is the provider type name;
	// for sub-assets it is derived from the extracted shape.
	Name string `json:"name"`

	// SchemaID is the stable variant identity, assigned or carried forward
	// by reconciliation. Empty until the spec is finalized.
	SchemaID string `json:"schemaId,omitempty"`

	// Props is the property tree (top-level properties in declaration order).
	Props []Prop `json:"props"`

	// Sockets are the spec's connection points.
	Sockets []Socket `json:"sockets,omitempty"`

	// Funcs are the spec's function bindings.
	Funcs []Func `json:"funcs,omitempty"`

	// Parent names the spec this one was extracted from. Set only for
	// sub-assets; children are independent top-level specs that merely
	// remember their origin.
	Parent string `json:"parent,omitempty"`

	// Warnings accumulated while compiling this spec.
	Warnings []Warning `json:"warnings,omitempty"`
}

// Socket returns the socket with the given name and direction.
func (s *PkgSpec) Socket(name string, dir SocketDirection) (Socket, bool) {
	for _, sock := range s.Sockets {
		if sock.Name == name && sock.Direction == dir {
			return sock, true
		}
	}
	return Socket{}, false
}

// HasSocket reports whether a socket with the given name and direction exists.
func (s *PkgSpec) HasSocket(name string, dir SocketDirection) bool {
	_, ok := s.Socket(name, dir)
	return ok
}

// Func returns the function binding with the given kind and name.
func (s *PkgSpec) Func(kind FuncKind, name string) (Func, bool) {
	for _, f := range s.Funcs {
		if f.Kind == kind && f.Name == name {
			return f, true
		}
	}
	return Func{}, false
}

// HasFunc reports whether a function of the given kind and name is bound.
func (s *PkgSpec) HasFunc(kind FuncKind, name string) bool {
	_, ok := s.Func(kind, name)
	return ok
}

// Prop returns the top-level property with the given name.
func (s *PkgSpec) Prop(name string) (*Prop, bool) {
	for i := range s.Props {
		if s.Props[i].Name == name {
			return &s.Props[i], true
		}
	}
	return nil, false
}

// WalkProps visits every property node in declaration order.
func (s *PkgSpec) WalkProps(fn func(*Prop) bool) {
	for i := range s.Props {
		if !s.Props[i].Walk(fn) {
			return
		}
	}
}

// Warn attaches a warning to the spec.
func (s *PkgSpec) Warn(stage, format string, args ...any) {
	s.Warnings = append(s.Warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// ValidatePaths checks the path-uniqueness invariant.
func (s *PkgSpec) ValidatePaths() error {
	seen := make(map[string]bool)
	var dup string
	s.WalkProps(func(p *Prop) bool {
		if seen[p.Path] {
			dup = p.Path
			return false
		}
		seen[p.Path] = true
		return true
	})
	if dup != "" {
		return fmt.Errorf("spec %q: duplicate property path %q", s.Name, dup)
	}
	return nil
}

// Clone returns a deep copy of the spec.
func (s PkgSpec) Clone() PkgSpec {
	out := s
	out.Props = make([]Prop, len(s.Props))
	for i, p := range s.Props {
		out.Props[i] = p.Clone()
	}
	out.Sockets = append([]Socket(nil), s.Sockets...)
	out.Funcs = append([]Func(nil), s.Funcs...)
	out.Warnings = append([]Warning(nil), s.Warnings...)
	return out
}

// SortByName orders specs by name in place. Stages rely on a deterministic
// collection order so tie-breaks are reproducible.
func SortByName(specs []PkgSpec) {
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
}

// FindByName returns the index of the spec with the given name, or -1.
func FindByName(specs []PkgSpec, name string) int {
	for i := range specs {
		if specs[i].Name == name {
			return i
		}
	}
	return -1
}
