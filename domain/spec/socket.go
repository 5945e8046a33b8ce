package spec

// SocketDirection distinguishes input sockets (values consumed) from output
// sockets (values produced).
type SocketDirection string

const (
	SocketInput  SocketDirection = "input"
	SocketOutput SocketDirection = "output"
)

// Socket is a named, typed connection point on a spec. Names are unique
// within a spec per direction.
type Socket struct {
	// Name is the normalized socket name.
	Name string `json:"name"`

	// Kind is the scalar kind of the value carried on the socket.
	Kind PropKind `json:"kind"`

	// Direction of the socket.
	Direction SocketDirection `json:"direction"`
}
