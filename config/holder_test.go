package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestHolderGet(t *testing.T) {
	path := writeConfig(t, "generator:\n  promotion_threshold: 3\n")

	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder() error = %v", err)
	}
	if got := h.Get().Generator.PromotionThreshold; got != 3 {
		t.Errorf("threshold = %d, want 3", got)
	}
}

func TestHolderReload(t *testing.T) {
	path := writeConfig(t, "generator:\n  promotion_threshold: 3\n")
	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	var notified *Config
	h.OnChange(func(cfg *Config) { notified = cfg })

	if err := os.WriteFile(path, []byte("generator:\n  promotion_threshold: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if got := h.Get().Generator.PromotionThreshold; got != 5 {
		t.Errorf("threshold after reload = %d, want 5", got)
	}
	if notified == nil || notified.Generator.PromotionThreshold != 5 {
		t.Errorf("OnChange not notified with new config: %+v", notified)
	}
}

func TestHolderReloadKeepsOldOnError(t *testing.T) {
	path := writeConfig(t, "generator:\n  promotion_threshold: 3\n")
	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("logging:\n  level: bogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(); err == nil {
		t.Fatal("Reload() accepted invalid config")
	}
	if got := h.Get().Generator.PromotionThreshold; got != 3 {
		t.Errorf("old config not kept: threshold = %d", got)
	}
}
