// Package config loads viewer settings from defaults, an optional YAML
// file and REPLAY_* environment variables, in that order. Callers apply
// their own overrides and then call Validate.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/particle-replay-go/internal/render"
)

// Config holds the viewer settings.
type Config struct {
	Root       string `yaml:"root" env:"REPLAY_ROOT"`
	Prefix     string `yaml:"prefix" env:"REPLAY_PREFIX"`
	BoundsPath string `yaml:"bounds" env:"REPLAY_BOUNDS"`

	Export    bool   `yaml:"export" env:"REPLAY_EXPORT"`
	ExportDir string `yaml:"export_dir" env:"REPLAY_EXPORT_DIR"`
	// Headless renders off screen only; it requires Export to produce output.
	Headless bool `yaml:"headless" env:"REPLAY_HEADLESS"`

	Width   int     `yaml:"width" env:"REPLAY_WIDTH"`
	Height  int     `yaml:"height" env:"REPLAY_HEIGHT"`
	Margin  float64 `yaml:"margin" env:"REPLAY_MARGIN"`
	Palette string  `yaml:"palette" env:"REPLAY_PALETTE"`

	// TickInterval paces headless playback and sets the window TPS.
	// Zero means as fast as the surface allows.
	TickInterval time.Duration `yaml:"tick_interval" env:"REPLAY_TICK_INTERVAL"`

	SkipCorrupt  bool   `yaml:"skip_corrupt" env:"REPLAY_SKIP_CORRUPT"`
	Prefetch     bool   `yaml:"prefetch" env:"REPLAY_PREFETCH"`
	ExitOnFinish bool   `yaml:"exit_on_finish" env:"REPLAY_EXIT_ON_FINISH"`
	Journal      string `yaml:"journal" env:"REPLAY_JOURNAL"`
}

// Default mirrors the layout of the simulation's working directory.
func Default() Config {
	return Config{
		Root:         "output/save",
		Prefix:       "iter",
		BoundsPath:   "input/lengths.npy",
		ExportDir:    "img",
		Width:        600,
		Height:       600,
		Margin:       0.01,
		Palette:      render.PaletteSolid,
		TickInterval: time.Millisecond,
		ExitOnFinish: true,
	}
}

// Load applies the YAML file at path (if any) and then the environment on
// top of the defaults. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every unusable setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Root == "" {
		errs = append(errs, errors.New("root is empty"))
	}
	if c.BoundsPath == "" {
		errs = append(errs, errors.New("bounds is empty"))
	}
	if c.Width <= 0 || c.Height <= render.TitleBand {
		errs = append(errs, fmt.Errorf("size %dx%d too small", c.Width, c.Height))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("negative margin %v", c.Margin))
	}
	if c.TickInterval < 0 {
		errs = append(errs, fmt.Errorf("negative tick interval %v", c.TickInterval))
	}
	if _, err := render.ParsePalette(c.Palette); err != nil {
		errs = append(errs, err)
	}
	if c.Export && c.ExportDir == "" {
		errs = append(errs, errors.New("export enabled without export_dir"))
	}
	if c.Headless && !c.Export && c.Journal == "" {
		errs = append(errs, errors.New("headless playback without export or journal produces nothing"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
