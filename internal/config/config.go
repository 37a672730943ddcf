// Package config holds the run configuration for the map generator.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Render modes.
const (
	RenderScreen = "screen"
	RenderText   = "text"
)

// Config holds all generation and rendering settings for one run.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Automaton AutomatonConfig `yaml:"automaton"`
	Walker    WalkerConfig    `yaml:"walker"`
	Run       RunConfig       `yaml:"run"`
	Render    RenderConfig    `yaml:"render"`
}

// GridConfig holds the initial grid settings.
type GridConfig struct {
	// Width and Height are the grid dimensions in cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Fill is the probability that each cell starts occupied when the grid
	// is seeded with noise.
	Fill float64 `yaml:"fill"`
}

// AutomatonConfig holds the cellular-automata pass settings.
type AutomatonConfig struct {
	// Radius is the neighbor window half-width (1 gives a 3x3 window).
	Radius int `yaml:"radius"`

	// Threshold is the occupancy ratio above which a cell becomes occupied.
	Threshold float64 `yaml:"threshold"`
}

// WalkerConfig holds the drunk-walker pass settings.
type WalkerConfig struct {
	// Walks is the number of walks performed per iteration.
	Walks int `yaml:"walks"`

	// Steps is the number of steps taken per walk.
	Steps int `yaml:"steps"`

	// RoomWidth and RoomHeight are the carved room dimensions. When the
	// corresponding Max field is larger, each iteration picks a size
	// uniformly from [base, max] for variety.
	RoomWidth     int `yaml:"room_width"`
	RoomWidthMax  int `yaml:"room_width_max"`
	RoomHeight    int `yaml:"room_height"`
	RoomHeightMax int `yaml:"room_height_max"`

	// RoomChance is the base room-carve probability per step and
	// RoomChanceStep the amount it grows by after each failed draw.
	RoomChance     float64 `yaml:"room_chance"`
	RoomChanceStep float64 `yaml:"room_chance_step"`

	// TurnChance is the base heading-change probability per step and
	// TurnChanceStep the amount it grows by after each failed draw.
	TurnChance     float64 `yaml:"turn_chance"`
	TurnChanceStep float64 `yaml:"turn_chance_step"`
}

// RunConfig holds the pipeline settings.
type RunConfig struct {
	// Iterations is the number of automaton+walker rounds to run.
	Iterations int `yaml:"iterations"`

	// Seed for random number generation, for reproducible maps.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`
}

// RenderConfig holds the output settings.
type RenderConfig struct {
	// Mode is "screen" for the interactive tcell viewer or "text" for
	// plain frames on stdout.
	Mode string `yaml:"mode"`

	// DelayMS is the pause between frames in screen mode. 0 waits for a
	// keypress instead.
	DelayMS int `yaml:"delay_ms"`
}

// Default returns a Config with the standard demo parameters.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:  80,
			Height: 24,
			Fill:   0.5,
		},
		Automaton: AutomatonConfig{
			Radius:    1,
			Threshold: 0.5,
		},
		Walker: WalkerConfig{
			Walks:          5,
			Steps:          10,
			RoomWidth:      5,
			RoomHeight:     3,
			RoomChance:     0.1,
			RoomChanceStep: 0.05,
			TurnChance:     0.2,
			TurnChanceStep: 0.03,
		},
		Run: RunConfig{
			Iterations: 5,
		},
		Render: RenderConfig{
			Mode: RenderScreen,
		},
	}
}

// Load reads a YAML config file and layers it over the defaults.
// A missing path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all settings are within their allowed ranges.
func (c *Config) Validate() error {
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		return fmt.Errorf("grid dimensions %dx%d: both must be at least 1", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.Fill < 0 || c.Grid.Fill > 1 {
		return fmt.Errorf("grid fill %v: must be in [0,1]", c.Grid.Fill)
	}
	if c.Automaton.Radius < 0 {
		return fmt.Errorf("automaton radius %d: must be non-negative", c.Automaton.Radius)
	}
	if c.Automaton.Threshold < 0 || c.Automaton.Threshold > 1 {
		return fmt.Errorf("automaton threshold %v: must be in [0,1]", c.Automaton.Threshold)
	}
	if c.Walker.Walks < 0 {
		return fmt.Errorf("walker walks %d: must be non-negative", c.Walker.Walks)
	}
	if c.Walker.Steps < 0 {
		return fmt.Errorf("walker steps %d: must be non-negative", c.Walker.Steps)
	}
	if c.Walker.RoomWidth < 1 || c.Walker.RoomHeight < 1 {
		return fmt.Errorf("room size %dx%d: both must be at least 1", c.Walker.RoomWidth, c.Walker.RoomHeight)
	}
	if c.Walker.RoomWidthMax != 0 && c.Walker.RoomWidthMax < c.Walker.RoomWidth {
		return fmt.Errorf("room_width_max %d: must be at least room_width %d", c.Walker.RoomWidthMax, c.Walker.RoomWidth)
	}
	if c.Walker.RoomHeightMax != 0 && c.Walker.RoomHeightMax < c.Walker.RoomHeight {
		return fmt.Errorf("room_height_max %d: must be at least room_height %d", c.Walker.RoomHeightMax, c.Walker.RoomHeight)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"room_chance", c.Walker.RoomChance},
		{"turn_chance", c.Walker.TurnChance},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("walker %s %v: must be in [0,1]", p.name, p.value)
		}
	}
	if c.Walker.RoomChanceStep < 0 || c.Walker.TurnChanceStep < 0 {
		return fmt.Errorf("walker probability steps must be non-negative")
	}
	if c.Run.Iterations < 0 {
		return fmt.Errorf("iterations %d: must be non-negative", c.Run.Iterations)
	}
	if c.Render.Mode != RenderScreen && c.Render.Mode != RenderText {
		return fmt.Errorf("render mode %q: must be %q or %q", c.Render.Mode, RenderScreen, RenderText)
	}
	if c.Render.DelayMS < 0 {
		return fmt.Errorf("render delay %dms: must be non-negative", c.Render.DelayMS)
	}
	return nil
}
