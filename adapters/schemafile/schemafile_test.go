package schemafile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/artpar/specforge/domain/rawschema"
)

const queueDoc = `{
	"typeName": "Example::Queue::Resource",
	"documentation": "ignored free-form block",
	"properties": {
		"QueueName": {"type": "string", "required": true},
		"QueueArn": {"type": "string", "readOnly": true},
		"QueueUrl": {"type": "string", "primaryIdentifier": true},
		"Tags": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"Key": {"type": "string"},
					"Value": {"type": "string"}
				}
			}
		},
		"Attributes": {
			"type": "map",
			"values": {"type": "string"}
		}
	}
}`

func TestParsePreservesDeclarationOrder(t *testing.T) {
	schema, err := Parse([]byte(queueDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if schema.TypeName != "Example::Queue::Resource" {
		t.Errorf("typeName = %q", schema.TypeName)
	}

	want := []string{"QueueName", "QueueArn", "QueueUrl", "Tags", "Attributes"}
	if len(schema.Properties) != len(want) {
		t.Fatalf("got %d properties, want %d", len(schema.Properties), len(want))
	}
	for i, name := range want {
		if schema.Properties[i].Name != name {
			t.Errorf("property %d = %q, want %q", i, schema.Properties[i].Name, name)
		}
	}
}

func TestParseFlags(t *testing.T) {
	schema, err := Parse([]byte(queueDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	byName := make(map[string]rawschema.Property)
	for _, p := range schema.Properties {
		byName[p.Name] = p
	}

	if !byName["QueueName"].Required {
		t.Error("QueueName not required")
	}
	if !byName["QueueArn"].ReadOnly {
		t.Error("QueueArn not read-only")
	}
	if !byName["QueueUrl"].PrimaryIdentifier {
		t.Error("QueueUrl not primary identifier")
	}
}

func TestParseContainers(t *testing.T) {
	schema, err := Parse([]byte(queueDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var tags, attrs rawschema.Property
	for _, p := range schema.Properties {
		switch p.Name {
		case "Tags":
			tags = p
		case "Attributes":
			attrs = p
		}
	}

	if tags.Kind != rawschema.KindArray || tags.Element == nil {
		t.Fatalf("Tags = %+v, want array with element", tags)
	}
	if tags.Element.Kind != rawschema.KindObject || len(tags.Element.Children) != 2 {
		t.Errorf("Tags element = %+v", tags.Element)
	}
	if tags.Element.Children[0].Name != "Key" || tags.Element.Children[1].Name != "Value" {
		t.Errorf("Tags element children out of order: %+v", tags.Element.Children)
	}

	if attrs.Kind != rawschema.KindMap || attrs.Value == nil || attrs.Value.Kind != rawschema.KindString {
		t.Errorf("Attributes = %+v, want map of string", attrs)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[1, 2]`},
		{"truncated", `{"typeName": "T", "properties": {`},
		{"non-string typeName", `{"typeName": 7}`},
		{"non-bool flag", `{"properties": {"A": {"type": "string", "required": "yes"}}}`},
		{"non-object property", `{"properties": {"A": 3}}`},
		{"non-object properties", `{"properties": [1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("Parse() accepted malformed document")
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "queue.json", queueDoc)
	writeFile(t, dir, "notes.txt", "not a schema")

	src := New(dir, zerolog.Nop())
	schemas, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(schemas) != 1 {
		t.Fatalf("got %d schemas, want 1", len(schemas))
	}
	if _, ok := schemas["Example::Queue::Resource"]; !ok {
		t.Error("schema not keyed by type name")
	}
}

func TestLoadRejectsDuplicateTypeName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", queueDoc)
	writeFile(t, dir, "b.json", queueDoc)

	_, err := New(dir, zerolog.Nop()).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "duplicate schema") {
		t.Errorf("Load() error = %v, want duplicate schema error", err)
	}
}

func TestLoadRejectsMissingTypeName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{"properties": {}}`)

	_, err := New(dir, zerolog.Nop()).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing typeName") {
		t.Errorf("Load() error = %v, want missing typeName error", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
