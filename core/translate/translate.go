// Package translate builds draft package specs from raw schemas. Translation
// is per-schema and embarrassingly parallel; a failed schema is skipped and
// counted, never aborting the batch.
package translate

import (
	"fmt"

	"github.com/artpar/specforge/domain/rawschema"
	"github.com/artpar/specforge/domain/spec"
)

// DefaultMaxDepth bounds recursion into nested property shapes. Raw schemas
// can be self-referential; anything deeper than this is rejected rather than
// followed forever.
const DefaultMaxDepth = 32

// Error is a per-schema translation failure.
type Error struct {
	// TypeName of the schema that failed.
	TypeName string

	// Path of the offending property, if known.
	Path string

	// Reason describes the failure.
	Reason string
}

// Error returns the failure message.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("translate %s: property %q: %s", e.TypeName, e.Path, e.Reason)
	}
	return fmt.Sprintf("translate %s: %s", e.TypeName, e.Reason)
}

// Builder translates one raw schema into one draft spec.
type Builder struct {
	maxDepth int
}

// NewBuilder creates a builder. maxDepth <= 0 selects DefaultMaxDepth.
func NewBuilder(maxDepth int) *Builder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Builder{maxDepth: maxDepth}
}

// Translate builds a draft spec: an empty socket set and a property tree
// built recursively from the raw property tree. Property declaration order
// is preserved.
func (b *Builder) Translate(raw rawschema.Schema) (spec.PkgSpec, error) {
	if raw.TypeName == "" {
		return spec.PkgSpec{}, &Error{TypeName: "(unnamed)", Reason: "schema has no type name"}
	}

	out := spec.PkgSpec{Name: raw.TypeName}
	for _, rp := range raw.Properties {
		p, err := b.prop(raw.TypeName, rp, rp.Name, 1)
		if err != nil {
			return spec.PkgSpec{}, err
		}
		out.Props = append(out.Props, p)
	}

	if err := out.ValidatePaths(); err != nil {
		return spec.PkgSpec{}, &Error{TypeName: raw.TypeName, Reason: err.Error()}
	}

	return out, nil
}

func (b *Builder) prop(typeName string, rp rawschema.Property, path string, depth int) (spec.Prop, error) {
	if depth > b.maxDepth {
		return spec.Prop{}, &Error{
			TypeName: typeName,
			Path:     path,
			Reason:   fmt.Sprintf("nesting exceeds max depth %d", b.maxDepth),
		}
	}

	p := spec.Prop{
		Name:              rp.Name,
		Path:              path,
		Required:          rp.Required,
		ReadOnly:          rp.ReadOnly,
		PrimaryIdentifier: rp.PrimaryIdentifier,
	}

	switch rp.Kind {
	case rawschema.KindString:
		p.Kind = spec.KindString
	case rawschema.KindNumber:
		p.Kind = spec.KindNumber
	case rawschema.KindBoolean:
		p.Kind = spec.KindBoolean
	case rawschema.KindObject:
		p.Kind = spec.KindObject
		for _, child := range rp.Children {
			c, err := b.prop(typeName, child, path+"/"+child.Name, depth+1)
			if err != nil {
				return spec.Prop{}, err
			}
			p.Children = append(p.Children, c)
		}
	case rawschema.KindArray:
		p.Kind = spec.KindArray
		if rp.Element == nil {
			return spec.Prop{}, &Error{TypeName: typeName, Path: path, Reason: "array property has no element shape"}
		}
		e, err := b.prop(typeName, *rp.Element, path+"[]", depth+1)
		if err != nil {
			return spec.Prop{}, err
		}
		p.Element = &e
	case rawschema.KindMap:
		p.Kind = spec.KindMap
		if rp.Value == nil {
			return spec.Prop{}, &Error{TypeName: typeName, Path: path, Reason: "map property has no value shape"}
		}
		v, err := b.prop(typeName, *rp.Value, path+"{}", depth+1)
		if err != nil {
			return spec.Prop{}, err
		}
		p.Value = &v
	default:
		return spec.Prop{}, &Error{
			TypeName: typeName,
			Path:     path,
			Reason:   fmt.Sprintf("unrecognized property shape %q", rp.Kind),
		}
	}

	return p, nil
}
