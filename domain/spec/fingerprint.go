package spec

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// ShapeHash returns a structural hash of a property's shape: its kind plus
// the names, kinds and flags of its members, recursively, with members
// sorted by name. The hash ignores the property's own name and path, so
// structurally identical shapes collide regardless of where they occur.
func ShapeHash(p Prop) string {
	var b strings.Builder
	writeShape(&b, p)
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Fingerprint returns a structural fingerprint of a whole spec: the shape of
// every top-level property keyed by name, plus the output-socket signature.
// The spec's own name does not participate, so a renamed type with an
// unchanged structure keeps its fingerprint.
func Fingerprint(s PkgSpec) string {
	props := make([]Prop, len(s.Props))
	copy(props, s.Props)
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	var b strings.Builder
	for _, p := range props {
		b.WriteString(p.Name)
		b.WriteByte('=')
		writeShape(&b, p)
		b.WriteByte('\n')
	}

	var outs []string
	for _, sock := range s.Sockets {
		if sock.Direction == SocketOutput {
			outs = append(outs, sock.Name+":"+string(sock.Kind))
		}
	}
	sort.Strings(outs)
	b.WriteString("sockets=")
	b.WriteString(strings.Join(outs, ","))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeShape(b *strings.Builder, p Prop) {
	b.WriteString(string(p.Kind))
	if p.Required {
		b.WriteString("!req")
	}
	if p.ReadOnly {
		b.WriteString("!ro")
	}
	if p.PrimaryIdentifier {
		b.WriteString("!pk")
	}
	if p.Ref != "" {
		b.WriteString("->")
		b.WriteString(p.Ref)
		return
	}
	switch p.Kind {
	case KindObject:
		members := make([]Prop, len(p.Children))
		copy(members, p.Children)
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		b.WriteByte('{')
		for i, c := range members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(c.Name)
			b.WriteByte(':')
			writeShape(b, c)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		if p.Element != nil {
			writeShape(b, *p.Element)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('<')
		if p.Value != nil {
			writeShape(b, *p.Value)
		}
		b.WriteByte('>')
	}
}
