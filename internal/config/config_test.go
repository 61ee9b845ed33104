package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Expected defaults to be valid, got %v", err)
	}

	if c.Render.Width != 400 || c.Render.Height != 300 {
		t.Errorf("Expected 400x300 frame, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if math.Abs(c.FOV()-1.30899694) > 1e-8 {
		t.Errorf("Expected 75 degrees in radians, got %v", c.FOV())
	}
	if c.MaxFrame() != 100*time.Millisecond {
		t.Errorf("Expected 100ms frame clamp, got %v", c.MaxFrame())
	}
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got %v", err)
	}
	if c.Movement.Speed != 3 {
		t.Errorf("Expected default speed 3, got %v", c.Movement.Speed)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"render": {"width": 320, "workers": 2},
		"assets": {"map": "maps/level.json"},
		"audio": {"enabled": true}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if c.Render.Width != 320 {
		t.Errorf("Expected width 320, got %d", c.Render.Width)
	}
	if c.Render.Height != 300 {
		t.Errorf("Expected untouched height 300, got %d", c.Render.Height)
	}
	if c.Render.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", c.Render.Workers)
	}
	if c.Assets.Map != "maps/level.json" {
		t.Errorf("Expected map path 'maps/level.json', got '%s'", c.Assets.Map)
	}
	if !c.Audio.Enabled || c.Audio.BumpHz != 110 {
		t.Errorf("Expected audio enabled with default tone, got %+v", c.Audio)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"render": `},
		{"fov", `{"render": {"fov_degrees": 180}}`},
		{"shading", `{"shading": {"near": 7}}`},
		{"clearance", `{"movement": {"clearance": 0.5}}`},
		{"workers", `{"render": {"workers": 0}}`},
		{"floor brightness", `{"shading": {"floor_brightness": 300}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
