package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/artpar/specforge/domain/rawschema"
)

func TestValidateAllOrdersFailuresByName(t *testing.T) {
	// Two broken schemas (arrays without an element shape) and one sound
	// one. Failure lines must come out in name order regardless of map
	// iteration order.
	broken := func(typeName string) rawschema.Schema {
		return rawschema.Schema{
			TypeName: typeName,
			Properties: []rawschema.Property{
				{Name: "Items", Kind: rawschema.KindArray},
			},
		}
	}
	raw := map[string]rawschema.Schema{
		"Example::Zone::Resource":  broken("Example::Zone::Resource"),
		"Example::Alarm::Resource": broken("Example::Alarm::Resource"),
		"Example::Queue::Resource": {
			TypeName: "Example::Queue::Resource",
			Properties: []rawschema.Property{
				{Name: "QueueName", Kind: rawschema.KindString, Required: true},
			},
		},
	}

	var buf bytes.Buffer
	failed := validateAll(raw, 0, &buf)
	if failed != 2 {
		t.Fatalf("failed = %d, want 2", failed)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d failure lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Example::Alarm::Resource") {
		t.Errorf("first line = %q, want Alarm failure first", lines[0])
	}
	if !strings.Contains(lines[1], "Example::Zone::Resource") {
		t.Errorf("second line = %q, want Zone failure second", lines[1])
	}
}

func TestValidateAllCleanSet(t *testing.T) {
	raw := map[string]rawschema.Schema{
		"Example::Queue::Resource": {
			TypeName: "Example::Queue::Resource",
			Properties: []rawschema.Property{
				{Name: "QueueName", Kind: rawschema.KindString},
			},
		},
	}

	var buf bytes.Buffer
	if failed := validateAll(raw, 0, &buf); failed != 0 {
		t.Fatalf("failed = %d, want 0", failed)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
