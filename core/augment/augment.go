// Package augment injects the platform-standard properties and sockets every
// spec carries regardless of its schema.
package augment

import "github.com/artpar/specforge/domain/spec"

const stageName = "augment-defaults"

// MetadataProp is the free-form metadata container added to every spec.
const MetadataProp = "metadata"

// Standard input sockets present on every spec.
const (
	CredentialSocket = "credential"
	RegionSocket     = "region"
)

// Defaults adds the platform-standard properties and sockets. The stage is
// idempotent: entries are keyed by name, so a second application is a no-op.
type Defaults struct{}

// NewDefaults creates the default augmenter.
func NewDefaults() Defaults {
	return Defaults{}
}

// Name implements pipeline.Stage.
func (Defaults) Name() string { return stageName }

// Run augments every spec in the collection.
func (Defaults) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	for i := range specs {
		Apply(&specs[i])
	}
	return specs, nil
}

// Apply augments one spec in place.
func Apply(s *spec.PkgSpec) {
	if _, ok := s.Prop(MetadataProp); !ok {
		value := spec.Prop{
			Kind: spec.KindString,
			Path: MetadataProp + "{}",
		}
		s.Props = append(s.Props, spec.Prop{
			Name:  MetadataProp,
			Kind:  spec.KindMap,
			Path:  MetadataProp,
			Value: &value,
		})
	}

	for _, name := range []string{CredentialSocket, RegionSocket} {
		if s.HasSocket(name, spec.SocketInput) {
			continue
		}
		s.Sockets = append(s.Sockets, spec.Socket{
			Name:      name,
			Kind:      spec.KindString,
			Direction: spec.SocketInput,
		})
	}
}
