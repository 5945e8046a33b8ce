// Package spec defines the package specification model produced by the
// compiler pipeline: typed property trees, connection sockets, and
// behavioral function bindings.
package spec

// PropKind is the closed set of property shapes. Every stage handles all
// kinds exhaustively; raw shapes that do not map onto this set are rejected
// at translation time.
type PropKind string

const (
	KindString  PropKind = "string"
	KindNumber  PropKind = "number"
	KindBoolean PropKind = "boolean"
	KindObject  PropKind = "object"
	KindArray   PropKind = "array"
	KindMap     PropKind = "map"
)

// Prop is a node in a spec's property tree.
type Prop struct {
	// Name of the property.
	Name string `json:"name"`

	// Kind is the property shape.
	Kind PropKind `json:"kind"`

	// Path is the stable slash-separated path from the spec root.
	// Paths are unique within a spec. Array elements append "[]",
	// map values append "{}".
	Path string `json:"path"`

	// Required indicates the property must be set on create.
	Required bool `json:"required,omitempty"`

	// ReadOnly indicates the value is computed by the provider.
	ReadOnly bool `json:"readOnly,omitempty"`

	// PrimaryIdentifier indicates the property identifies the resource.
	PrimaryIdentifier bool `json:"primaryIdentifier,omitempty"`

	// Children are object members in declaration order. Only for KindObject.
	Children []Prop `json:"children,omitempty"`

	// Element is the array element shape. Only for KindArray.
	Element *Prop `json:"element,omitempty"`

	// Value is the map value shape. Only for KindMap.
	Value *Prop `json:"value,omitempty"`

	// Ref names a sub-asset spec this property refers to. When set the
	// inline structure has been extracted: Children, Element and Value
	// are empty and the referenced spec carries the shape.
	Ref string `json:"ref,omitempty"`
}

// IsScalar reports whether the prop has a scalar kind.
func (p Prop) IsScalar() bool {
	switch p.Kind {
	case KindString, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}

// Walk visits p and every descendant in declaration order. Returning false
// from fn stops the walk.
func (p *Prop) Walk(fn func(*Prop) bool) bool {
	if !fn(p) {
		return false
	}
	for i := range p.Children {
		if !p.Children[i].Walk(fn) {
			return false
		}
	}
	if p.Element != nil {
		if !p.Element.Walk(fn) {
			return false
		}
	}
	if p.Value != nil {
		if !p.Value.Walk(fn) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the prop.
func (p Prop) Clone() Prop {
	out := p
	if len(p.Children) > 0 {
		out.Children = make([]Prop, len(p.Children))
		for i, c := range p.Children {
			out.Children[i] = c.Clone()
		}
	}
	if p.Element != nil {
		e := p.Element.Clone()
		out.Element = &e
	}
	if p.Value != nil {
		v := p.Value.Clone()
		out.Value = &v
	}
	return out
}
