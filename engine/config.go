package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberforge/ember/core"
)

// Config is the engine configuration surface. Zero values fall back to the
// defaults below, so a config file only needs the fields it changes.
type Config struct {
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	WindowTitle  string `yaml:"window_title"`

	// FixedTimestep is the simulation tick in seconds.
	FixedTimestep   float64 `yaml:"fixed_timestep"`
	PhysicsSubsteps int     `yaml:"physics_substeps"`

	// Gravity is screen-space (Y-down), so positive Y pulls downward.
	Gravity        core.Vec2 `yaml:"gravity"`
	PixelsPerMeter float64   `yaml:"pixels_per_meter"`

	ClearColor core.RGB `yaml:"clear_color"`

	// DesignWidth/DesignHeight enable letterboxed resolution-independent
	// scaling when both are set.
	DesignWidth  int `yaml:"design_width"`
	DesignHeight int `yaml:"design_height"`

	DisplayMode string `yaml:"display_mode"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		WindowWidth:     120,
		WindowHeight:    40,
		WindowTitle:     "ember",
		FixedTimestep:   1.0 / 60,
		PhysicsSubsteps: 4,
		Gravity:         core.Vec2{X: 0, Y: 900},
		PixelsPerMeter:  40,
		ClearColor:      core.RGBBlack,
		DisplayMode:     "windowed",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores required fields a config file zeroed out.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.FixedTimestep <= 0 {
		c.FixedTimestep = def.FixedTimestep
	}
	if c.PhysicsSubsteps <= 0 {
		c.PhysicsSubsteps = def.PhysicsSubsteps
	}
	if c.PixelsPerMeter <= 0 {
		c.PixelsPerMeter = def.PixelsPerMeter
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = def.WindowHeight
	}
	if c.WindowTitle == "" {
		c.WindowTitle = def.WindowTitle
	}
	if c.DisplayMode == "" {
		c.DisplayMode = def.DisplayMode
	}
}
