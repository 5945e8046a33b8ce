// Package derive synthesizes output sockets from read-only and
// primary-identifier properties.
package derive

import (
	"strings"

	"github.com/artpar/specforge/domain/spec"
)

const stageName = "derive-output-sockets"

// Deriver scans each spec's property tree in declaration order and emits one
// output socket per scalar read-only or primary-identifier property.
type Deriver struct{}

// NewDeriver creates the output-socket deriver.
func NewDeriver() Deriver {
	return Deriver{}
}

// Name implements pipeline.Stage.
func (Deriver) Name() string { return stageName }

// Run derives output sockets. Non-scalar read-only properties produce a
// warning and no socket. When normalization collapses two paths to the same
// socket name the later-declared property wins.
func (Deriver) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	for i := range specs {
		deriveSpec(&specs[i])
	}
	return specs, nil
}

func deriveSpec(s *spec.PkgSpec) {
	var names []string
	byName := make(map[string]spec.Socket)

	s.WalkProps(func(p *spec.Prop) bool {
		if !p.ReadOnly && !p.PrimaryIdentifier {
			return true
		}
		if !p.IsScalar() {
			s.Warn(stageName, "read-only property %q has non-scalar shape %s, no output socket derived", p.Path, p.Kind)
			return true
		}

		name := NormalizeName(p.Path)
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		// Last write wins on collisions.
		byName[name] = spec.Socket{
			Name:      name,
			Kind:      p.Kind,
			Direction: spec.SocketOutput,
		}
		return true
	})

	for _, name := range names {
		sock := byName[name]
		if s.HasSocket(sock.Name, spec.SocketOutput) {
			continue
		}
		s.Sockets = append(s.Sockets, sock)
	}
}

// NormalizeName reduces a property path to a socket name: the final path
// segment with array and map markers stripped.
func NormalizeName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	path = strings.TrimSuffix(path, "[]")
	path = strings.TrimSuffix(path, "{}")
	return path
}
