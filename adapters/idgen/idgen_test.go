package idgen

import (
	"strings"
	"testing"
)

func TestVariantIDs(t *testing.T) {
	g := Variant{}
	a, b := g.New(), g.New()

	if !strings.HasPrefix(a, "sv-") {
		t.Errorf("id %q missing sv- prefix", a)
	}
	if a == b {
		t.Error("consecutive ids collide")
	}
}

func TestSequential(t *testing.T) {
	g := NewSequential("sv-test-")
	if got := g.New(); got != "sv-test-1" {
		t.Errorf("first id = %q", got)
	}
	if got := g.New(); got != "sv-test-2" {
		t.Errorf("second id = %q", got)
	}
}
