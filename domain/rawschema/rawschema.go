// Package rawschema models the raw cloud-resource schema records the
// compiler consumes. A record is the provider's description of one resource
// type: a tree of named properties with shape and identity flags.
package rawschema

// Kind is the raw shape of a property as declared by the provider.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindMap     Kind = "map"
)

// Schema is one raw resource-type schema record.
type Schema struct {
	// TypeName is the provider type name (e.g. "Example::Queue::Resource").
	TypeName string

	// Properties are the top-level properties in declaration order.
	// Declaration order is significant: downstream derivation tie-breaks
	// are defined in terms of it.
	Properties []Property
}

// Property is one node in a raw property tree.
type Property struct {
	// Name of the property as declared.
	Name string

	// Kind is the declared shape.
	Kind Kind

	// Required indicates the property must be set on create.
	Required bool

	// ReadOnly indicates the provider computes this value; it cannot be set.
	ReadOnly bool

	// PrimaryIdentifier indicates this property identifies the resource.
	PrimaryIdentifier bool

	// Children are the named members of an object property, in declaration
	// order. Only set for KindObject.
	Children []Property

	// Element describes the element shape of an array property.
	// Only set for KindArray.
	Element *Property

	// Value describes the value shape of a map property.
	// Only set for KindMap.
	Value *Property
}

// IsScalar reports whether the property has a scalar shape.
func (p Property) IsScalar() bool {
	switch p.Kind {
	case KindString, KindNumber, KindBoolean:
		return true
	default:
		return false
	}
}

// KnownKind reports whether k is one of the recognized shapes.
func KnownKind(k Kind) bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindObject, KindArray, KindMap:
		return true
	default:
		return false
	}
}
