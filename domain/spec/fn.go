package spec

// FuncKind classifies a behavioral function bound to a spec.
type FuncKind string

const (
	// FuncAction is a lifecycle operation (create, refresh, update, delete).
	FuncAction FuncKind = "action"

	// FuncLeaf is a derived check (qualification, code generation).
	FuncLeaf FuncKind = "leaf"

	// FuncManagement is a management operation (import, discover).
	FuncManagement FuncKind = "management"

	// FuncAsset is the authoritative definition function compiled from the
	// spec's final structure.
	FuncAsset FuncKind = "asset"

	// FuncIntrinsic is a platform-provided function bound by reference.
	FuncIntrinsic FuncKind = "intrinsic"
)

// FuncOrigin records who authored a function. Reconciliation preserves
// user-authored functions over freshly generated defaults.
type FuncOrigin string

const (
	OriginGenerated FuncOrigin = "generated"
	OriginUser      FuncOrigin = "user"
)

// Func is a named behavioral unit bound to one spec. Intrinsics are shared
// and bound by reference: Ref names the platform intrinsic and Code is empty.
type Func struct {
	// Name identifies the function within its kind on the owning spec.
	Name string `json:"name"`

	// Kind of the function.
	Kind FuncKind `json:"kind"`

	// Origin records whether the function was generated or user-authored.
	Origin FuncOrigin `json:"origin"`

	// Code is the function source. Empty for intrinsic bindings.
	Code string `json:"code,omitempty"`

	// Ref names the shared intrinsic for FuncIntrinsic bindings.
	Ref string `json:"ref,omitempty"`
}
