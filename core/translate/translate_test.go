package translate

import (
	"errors"
	"strings"
	"testing"

	"github.com/artpar/specforge/domain/rawschema"
	"github.com/artpar/specforge/domain/spec"
)

func TestTranslateScalarKinds(t *testing.T) {
	tests := []struct {
		raw  rawschema.Kind
		want spec.PropKind
	}{
		{rawschema.KindString, spec.KindString},
		{rawschema.KindNumber, spec.KindNumber},
		{rawschema.KindBoolean, spec.KindBoolean},
	}

	b := NewBuilder(0)
	for _, tt := range tests {
		t.Run(string(tt.raw), func(t *testing.T) {
			out, err := b.Translate(rawschema.Schema{
				TypeName:   "T",
				Properties: []rawschema.Property{{Name: "P", Kind: tt.raw}},
			})
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if out.Props[0].Kind != tt.want {
				t.Errorf("kind = %v, want %v", out.Props[0].Kind, tt.want)
			}
			if out.Props[0].Path != "P" {
				t.Errorf("path = %q, want P", out.Props[0].Path)
			}
		})
	}
}

func TestTranslateNestedPaths(t *testing.T) {
	b := NewBuilder(0)
	elem := rawschema.Property{Kind: rawschema.KindObject, Children: []rawschema.Property{
		{Name: "Key", Kind: rawschema.KindString},
	}}

	out, err := b.Translate(rawschema.Schema{
		TypeName: "T",
		Properties: []rawschema.Property{
			{Name: "Policy", Kind: rawschema.KindObject, Children: []rawschema.Property{
				{Name: "Target", Kind: rawschema.KindString},
			}},
			{Name: "Tags", Kind: rawschema.KindArray, Element: &elem},
			{Name: "Attrs", Kind: rawschema.KindMap, Value: &rawschema.Property{Kind: rawschema.KindString}},
		},
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	wantPaths := map[string]bool{
		"Policy":        true,
		"Policy/Target": true,
		"Tags":          true,
		"Tags[]":        true,
		"Tags[]/Key":    true,
		"Attrs":         true,
		"Attrs{}":       true,
	}
	got := map[string]bool{}
	out.WalkProps(func(p *spec.Prop) bool {
		got[p.Path] = true
		return true
	})
	for path := range wantPaths {
		if !got[path] {
			t.Errorf("missing path %q", path)
		}
	}
	if len(got) != len(wantPaths) {
		t.Errorf("got %d paths, want %d: %v", len(got), len(wantPaths), got)
	}
}

func TestTranslatePreservesDeclarationOrder(t *testing.T) {
	b := NewBuilder(0)
	out, err := b.Translate(rawschema.Schema{
		TypeName: "T",
		Properties: []rawschema.Property{
			{Name: "Z", Kind: rawschema.KindString},
			{Name: "A", Kind: rawschema.KindString},
			{Name: "M", Kind: rawschema.KindString},
		},
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	want := []string{"Z", "A", "M"}
	for i, w := range want {
		if out.Props[i].Name != w {
			t.Errorf("props[%d] = %q, want %q", i, out.Props[i].Name, w)
		}
	}
}

func TestTranslateFlags(t *testing.T) {
	b := NewBuilder(0)
	out, err := b.Translate(rawschema.Schema{
		TypeName: "T",
		Properties: []rawschema.Property{
			{Name: "Id", Kind: rawschema.KindString, ReadOnly: true, PrimaryIdentifier: true},
			{Name: "Name", Kind: rawschema.KindString, Required: true},
		},
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if !out.Props[0].ReadOnly || !out.Props[0].PrimaryIdentifier {
		t.Error("identity flags not carried over")
	}
	if !out.Props[1].Required {
		t.Error("required flag not carried over")
	}
}

func TestTranslateErrors(t *testing.T) {
	deep := rawschema.Property{Name: "Leaf", Kind: rawschema.KindString}
	for i := 0; i < 5; i++ {
		deep = rawschema.Property{Name: "N", Kind: rawschema.KindObject, Children: []rawschema.Property{deep}}
	}

	tests := []struct {
		name    string
		builder *Builder
		schema  rawschema.Schema
		substr  string
	}{
		{
			name:    "unknown kind",
			builder: NewBuilder(0),
			schema: rawschema.Schema{
				TypeName:   "T",
				Properties: []rawschema.Property{{Name: "P", Kind: "tuple"}},
			},
			substr: "unrecognized property shape",
		},
		{
			name:    "missing type name",
			builder: NewBuilder(0),
			schema:  rawschema.Schema{},
			substr:  "no type name",
		},
		{
			name:    "depth exceeded",
			builder: NewBuilder(3),
			schema:  rawschema.Schema{TypeName: "T", Properties: []rawschema.Property{deep}},
			substr:  "exceeds max depth",
		},
		{
			name:    "array without element",
			builder: NewBuilder(0),
			schema: rawschema.Schema{
				TypeName:   "T",
				Properties: []rawschema.Property{{Name: "L", Kind: rawschema.KindArray}},
			},
			substr: "no element shape",
		},
		{
			name:    "map without value",
			builder: NewBuilder(0),
			schema: rawschema.Schema{
				TypeName:   "T",
				Properties: []rawschema.Property{{Name: "M", Kind: rawschema.KindMap}},
			},
			substr: "no value shape",
		},
		{
			name:    "duplicate property name",
			builder: NewBuilder(0),
			schema: rawschema.Schema{
				TypeName: "T",
				Properties: []rawschema.Property{
					{Name: "P", Kind: rawschema.KindString},
					{Name: "P", Kind: rawschema.KindNumber},
				},
			},
			substr: "duplicate property path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Translate(tt.schema)
			if err == nil {
				t.Fatal("expected error")
			}
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.substr)
			}
		})
	}
}
