package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Root != "output/save" || cfg.BoundsPath != "input/lengths.npy" || cfg.ExportDir != "img" {
		t.Fatalf("paths = %+v", cfg)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.yaml")
	doc := `
root: runs/a/save
export: true
export_dir: frames
palette: speed
tick_interval: 40ms
width: 800
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REPLAY_WIDTH", "1024")
	t.Setenv("REPLAY_SKIP_CORRUPT", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "runs/a/save" || !cfg.Export || cfg.ExportDir != "frames" || cfg.Palette != "speed" {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
	if cfg.TickInterval != 40*time.Millisecond {
		t.Fatalf("tick interval = %v", cfg.TickInterval)
	}
	if cfg.Width != 1024 || !cfg.SkipCorrupt {
		t.Fatalf("env not applied: %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.Height != 600 || cfg.BoundsPath != "input/lengths.npy" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
	}{
		{"empty root", func(c *Config) { c.Root = "" }},
		{"tiny", func(c *Config) { c.Height = 4 }},
		{"palette", func(c *Config) { c.Palette = "plaid" }},
		{"negative margin", func(c *Config) { c.Margin = -1 }},
		{"negative tick", func(c *Config) { c.TickInterval = -time.Second }},
		{"export dir", func(c *Config) { c.Export = true; c.ExportDir = "" }},
		{"headless noop", func(c *Config) { c.Headless = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mod(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("accepted")
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	c := Default()
	c.Margin = 0
	if err := c.Validate(); err != nil {
		t.Fatalf("zero margin: %v", err)
	}
	c.Headless = true
	c.Journal = "runs.db"
	if err := c.Validate(); err != nil {
		t.Fatalf("headless with journal: %v", err)
	}
}

// settings that later overrides fix must not fail the load
func TestLoadLeavesValidationToCaller(t *testing.T) {
	t.Setenv("REPLAY_HEADLESS", "true")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Headless {
		t.Fatal("env not applied")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("headless without output accepted")
	}
	cfg.Export = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("after override: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
