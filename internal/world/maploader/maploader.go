package maploader

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"chosenoffset.com/gridcaster/internal/world/atlas"
	"chosenoffset.com/gridcaster/internal/world/grid"
)

// ErrSpawnBlocked is returned when the spawn point lies inside a wall.
var ErrSpawnBlocked = errors.New("player spawn is inside a wall")

//go:embed maps/default.json
var defaultMap []byte

// SpawnPoint defines the camera start position in world coordinates
type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapData represents the loaded map configuration
type MapData struct {
	Name           string     `json:"name"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	AtlasPath      string     `json:"atlas,omitempty"` // Optional, relative to the map file
	PlayerSpawn    SpawnPoint `json:"player_spawn"`
	HeadingDegrees float64    `json:"heading_degrees"` // Counter-clockwise from east
	Tiles          [][]int    `json:"tiles"`           // Cell codes [row][col], row 0 is the far edge
}

// Map represents a loaded map with its grid and, if the map names one, its atlas
type Map struct {
	Data  *MapData
	Grid  *grid.Grid
	Atlas *atlas.Atlas
}

// LoadMap loads a map from a JSON file and its associated atlas
func LoadMap(mapPath string) (*Map, error) {
	// Read the map JSON file
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid map %s: %w", mapPath, err)
	}

	// Load the atlas
	if m.Data.AtlasPath != "" {
		atlasPath := m.Data.AtlasPath
		if !filepath.IsAbs(atlasPath) {
			atlasPath = filepath.Join(filepath.Dir(mapPath), atlasPath)
		}
		atlasObj, err := atlas.LoadAtlas(atlasPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load atlas %s: %w", atlasPath, err)
		}
		m.Atlas = atlasObj
	}

	return m, nil
}

// Default returns the built-in map.
func Default() (*Map, error) {
	m, err := Parse(defaultMap)
	if err != nil {
		return nil, fmt.Errorf("built-in map: %w", err)
	}
	return m, nil
}

// Parse decodes and validates map JSON. Atlas paths are left unresolved.
func Parse(data []byte) (*Map, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, err
	}

	g, err := grid.New(mapData.Tiles)
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.Solid(mapData.PlayerSpawn.X, mapData.PlayerSpawn.Y) {
		return nil, fmt.Errorf("%w at (%v, %v)", ErrSpawnBlocked, mapData.PlayerSpawn.X, mapData.PlayerSpawn.Y)
	}

	return &Map{Data: &mapData, Grid: g}, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	// Validate tiles array dimensions
	if len(data.Tiles) != data.Height {
		return fmt.Errorf("tiles array height mismatch: expected %d, got %d", data.Height, len(data.Tiles))
	}

	for y, row := range data.Tiles {
		if len(row) != data.Width {
			return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
		}
	}

	return nil
}

// Spawn returns the camera start position and heading in radians.
func (m *Map) Spawn() (x, y, heading float64) {
	return m.Data.PlayerSpawn.X, m.Data.PlayerSpawn.Y, m.Data.HeadingDegrees * math.Pi / 180
}
