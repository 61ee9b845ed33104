// Package config holds the tunable parameters of the renderer and the host.
// Values are loaded from a JSON file over the built-in defaults so a config
// only needs to name what it changes.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"
)

// Config holds every tunable of the program
type Config struct {
	Render   RenderConfig   `json:"render"`
	Shading  ShadingConfig  `json:"shading"`
	Movement MovementConfig `json:"movement"`
	Window   WindowConfig   `json:"window"`
	Assets   AssetsConfig   `json:"assets"`
	Audio    AudioConfig    `json:"audio"`
}

// RenderConfig defines the off-screen frame and the projection
type RenderConfig struct {
	Width      int     `json:"width"`       // Frame width in pixels (one ray per column)
	Height     int     `json:"height"`      // Frame height in pixels
	FOVDegrees float64 `json:"fov_degrees"` // Horizontal field of view
	Workers    int     `json:"workers"`     // Column bands rendered in parallel (1 = sequential)
	TileSize   int     `json:"tile_size"`   // Edge length of every texture in texels
}

// ShadingConfig defines the distance falloff
type ShadingConfig struct {
	Near            float64 `json:"near"`             // Full brightness at or below this distance
	Far             float64 `json:"far"`              // Floor brightness at or beyond this distance
	FloorBrightness int     `json:"floor_brightness"` // Darkest tint (0-255)
}

// MovementConfig defines camera motion
type MovementConfig struct {
	Speed      float64 `json:"speed"`        // Grid units per second
	TurnSpeed  float64 `json:"turn_speed"`   // Radians per second
	Clearance  float64 `json:"clearance"`    // Minimum distance kept from walls
	MaxFrameMs int     `json:"max_frame_ms"` // Upper bound on a single frame's dt
}

// WindowConfig defines the host window
type WindowConfig struct {
	Scale     int    `json:"scale"` // Integer upscale of the frame
	Title     string `json:"title"`
	Resizable bool   `json:"resizable"`
}

// AssetsConfig names the map and atlas files. Empty paths select the
// built-in map and the procedural placeholder textures.
type AssetsConfig struct {
	Map   string `json:"map"`
	Atlas string `json:"atlas"`
}

// AudioConfig defines the bump tone
type AudioConfig struct {
	Enabled bool    `json:"enabled"`
	BumpHz  float64 `json:"bump_hz"`
	BumpMs  int     `json:"bump_ms"`
}

// DefaultConfig returns the reference setup
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      400,
			Height:     300,
			FOVDegrees: 75,
			Workers:    4,
			TileSize:   64,
		},
		Shading: ShadingConfig{
			Near:            0.3,
			Far:             6.0,
			FloorBrightness: 40,
		},
		Movement: MovementConfig{
			Speed:      3.0,
			TurnSpeed:  math.Pi,
			Clearance:  0.3,
			MaxFrameMs: 100,
		},
		Window: WindowConfig{
			Scale:     2,
			Title:     "Gridcaster",
			Resizable: true,
		},
		Audio: AudioConfig{
			Enabled: false,
			BumpHz:  110,
			BumpMs:  80,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.FOVDegrees <= 0 || r.FOVDegrees >= 180 {
		return fmt.Errorf("fov_degrees must lie in (0, 180), got %v", r.FOVDegrees)
	}
	if r.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", r.Workers)
	}
	if r.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", r.TileSize)
	}

	s := c.Shading
	if s.Near <= 0 || s.Far <= s.Near {
		return fmt.Errorf("shading needs 0 < near < far, got near=%v far=%v", s.Near, s.Far)
	}
	if s.FloorBrightness < 0 || s.FloorBrightness > 255 {
		return fmt.Errorf("floor_brightness must lie in [0, 255], got %d", s.FloorBrightness)
	}

	m := c.Movement
	if m.Speed < 0 || m.TurnSpeed < 0 {
		return fmt.Errorf("movement speeds must not be negative")
	}
	if m.Clearance < 0 || m.Clearance >= 0.5 {
		return fmt.Errorf("clearance must lie in [0, 0.5), got %v", m.Clearance)
	}
	if m.MaxFrameMs <= 0 {
		return fmt.Errorf("max_frame_ms must be positive, got %d", m.MaxFrameMs)
	}

	if c.Window.Scale < 1 {
		return fmt.Errorf("window scale must be at least 1, got %d", c.Window.Scale)
	}

	if c.Audio.Enabled && (c.Audio.BumpHz <= 0 || c.Audio.BumpMs <= 0) {
		return fmt.Errorf("audio bump tone needs positive bump_hz and bump_ms")
	}

	return nil
}

// FOV returns the field of view in radians.
func (c *Config) FOV() float64 {
	return c.Render.FOVDegrees * math.Pi / 180
}

// MaxFrame returns the dt clamp as a duration.
func (c *Config) MaxFrame() time.Duration {
	return time.Duration(c.Movement.MaxFrameMs) * time.Millisecond
}

// BumpDuration returns the bump tone length.
func (c *Config) BumpDuration() time.Duration {
	return time.Duration(c.Audio.BumpMs) * time.Millisecond
}
