package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != DefaultNebulaConfig() {
		t.Errorf("embedded YAML = %+v, want %+v", cfg, DefaultNebulaConfig())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("scoring:\n  collect: 15\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Scoring.Collect != 15 {
		t.Errorf("Collect = %d, want 15", cfg.Scoring.Collect)
	}
	if cfg.Scoring.Craft != 50 {
		t.Errorf("Craft = %d, want default 50", cfg.Scoring.Craft)
	}
	if cfg.Spawn.Batch != 8 {
		t.Errorf("Batch = %d, want default 8", cfg.Spawn.Batch)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NebulaConfig)
		substr string
	}{
		{"zero batch", func(c *NebulaConfig) { c.Spawn.Batch = 0 }, "spawn.batch"},
		{"chance above one", func(c *NebulaConfig) { c.Spawn.ResourceChance = 1.5 }, "resource_chance"},
		{"negative refill", func(c *NebulaConfig) { c.Spawn.RefillBelow = -1 }, "refill_below"},
		{"negative score", func(c *NebulaConfig) { c.Scoring.Absorb = -5 }, "scoring"},
		{"negative cost", func(c *NebulaConfig) { c.Recipes.Pulse.Plasma = -1 }, "recipe pulse"},
		{"free recipe", func(c *NebulaConfig) { c.Recipes.Shield = Cost{} }, "recipe shield"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultNebulaConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tc.substr)
			}
		})
	}

	if err := DefaultNebulaConfig().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadNebulaCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("spawn:\n  batch: 5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadNebula(path)
	if err != nil {
		t.Fatalf("LoadNebula() failed: %v", err)
	}
	if cfg.Spawn.Batch != 5 {
		t.Errorf("Batch = %d, want 5", cfg.Spawn.Batch)
	}
}

func TestLoadNebulaCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadNebula(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("spawn:\n  resource_chance: 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := LoadNebula(bad)
	if err == nil {
		t.Error("invalid custom config should be an error")
	}
	if cfg != DefaultNebulaConfig() {
		t.Error("failed load should still return defaults")
	}
}

func TestMarshalWritesYAMLKeys(t *testing.T) {
	data, err := Marshal(DefaultNebulaConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "resource_chance: 0.7") {
		t.Errorf("marshalled YAML missing resource_chance:\n%s", data)
	}
}
