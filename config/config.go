// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Population PopulationConfig `yaml:"population"`
	Fish       FishConfig       `yaml:"fish"`
	Render     RenderConfig     `yaml:"render"`
	Controls   ControlsConfig   `yaml:"controls"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Audio      AudioConfig      `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The screen is also the world: fish
// are clamped to [0, Width] x [0, Height].
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PopulationConfig holds the starting population size.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// FishConfig holds the inclusive ranges fish attributes are drawn from at spawn.
type FishConfig struct {
	MinSize  int `yaml:"min_size"`
	MaxSize  int `yaml:"max_size"`
	MinSpeed int `yaml:"min_speed"`
	MaxSpeed int `yaml:"max_speed"`
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	Background RGBA    `yaml:"background"`
	TextColor  RGBA    `yaml:"text_color"`
	FontSize   int     `yaml:"font_size"`
	TrailScale float64 `yaml:"trail_scale"` // trail line length as a fraction of the fish position vector
	HUDX       int     `yaml:"hud_x"`
	HUDY       int     `yaml:"hud_y"`
	HUDSpacing int     `yaml:"hud_spacing"`
}

// ControlsConfig holds interactive control limits.
type ControlsConfig struct {
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per stats window
}

// AudioConfig holds predation sound parameters.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	GulpMillis int     `yaml:"gulp_ms"`
	BaseFreq   float64 `yaml:"base_freq"` // tone for the smallest possible prey; larger prey sound lower
	Volume     float64 `yaml:"volume"`    // beep effects.Volume exponent (base 2), 0 = unchanged
}

// RGBA is a YAML-friendly color given as a four element list.
type RGBA [4]uint8

// Color converts to the standard library color type.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT         float64    // seconds per tick (1 / TargetFPS)
	Background color.RGBA // Render.Background
	TextColor  color.RGBA // Render.TextColor
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations that would break simulation invariants.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Population.Initial < 0 {
		return fmt.Errorf("population.initial must not be negative, got %d", c.Population.Initial)
	}
	if c.Fish.MinSize <= 0 || c.Fish.MaxSize < c.Fish.MinSize {
		return fmt.Errorf("fish size range [%d,%d] invalid", c.Fish.MinSize, c.Fish.MaxSize)
	}
	if c.Fish.MinSpeed < 0 || c.Fish.MaxSpeed < c.Fish.MinSpeed {
		return fmt.Errorf("fish speed range [%d,%d] invalid", c.Fish.MinSpeed, c.Fish.MaxSpeed)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.Background = c.Render.Background.Color()
	c.Derived.TextColor = c.Render.TextColor.Color()

	if c.Controls.MaxStepsPerFrame < 1 {
		c.Controls.MaxStepsPerFrame = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
