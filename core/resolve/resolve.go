// Package resolve wires input sockets by cross-referencing every output
// socket in the final collection.
package resolve

import (
	"github.com/artpar/specforge/core/derive"
	"github.com/artpar/specforge/domain/spec"
)

const stageName = "resolve-input-sockets"

// Resolver builds a global index of output sockets keyed by (normalized
// name, kind) and creates a matching input socket on every spec with a
// same-typed need produced elsewhere. Ambiguity is never guessed: more than
// one qualifying producer leaves the need unresolved with a warning.
type Resolver struct{}

// NewResolver creates the input-socket resolver.
func NewResolver() Resolver {
	return Resolver{}
}

// Name implements pipeline.Stage.
func (Resolver) Name() string { return stageName }

type socketKey struct {
	name string
	kind spec.PropKind
}

// Run implements pipeline.Stage.
func (Resolver) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	// Producer index over the complete collection. The stage barrier
	// guarantees no spec is added after this point.
	producers := make(map[socketKey][]int)
	for i := range specs {
		for _, sock := range specs[i].Sockets {
			if sock.Direction != spec.SocketOutput {
				continue
			}
			key := socketKey{name: sock.Name, kind: sock.Kind}
			producers[key] = append(producers[key], i)
		}
	}

	for i := range specs {
		resolveSpec(specs, i, producers)
	}
	return specs, nil
}

func resolveSpec(specs []spec.PkgSpec, idx int, producers map[socketKey][]int) {
	s := &specs[idx]
	handled := make(map[string]bool)

	s.WalkProps(func(p *spec.Prop) bool {
		if !p.IsScalar() || p.ReadOnly || p.PrimaryIdentifier {
			return true
		}

		name := derive.NormalizeName(p.Path)
		if handled[name] {
			return true
		}
		handled[name] = true

		key := socketKey{name: name, kind: p.Kind}
		var foreign []int
		for _, producer := range producers[key] {
			if producer != idx {
				foreign = append(foreign, producer)
			}
		}

		switch len(foreign) {
		case 0:
			// No producer anywhere; nothing to wire.
		case 1:
			if !s.HasSocket(name, spec.SocketInput) {
				s.Sockets = append(s.Sockets, spec.Socket{
					Name:      name,
					Kind:      p.Kind,
					Direction: spec.SocketInput,
				})
			}
		default:
			s.Warn(stageName, "ambiguous match for %q (%s): %d output sockets qualify, input socket not created", name, p.Kind, len(foreign))
		}
		return true
	})
}
