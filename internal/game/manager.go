package game

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/movement"
	"chosenoffset.com/gridcaster/internal/placeholders"
	"chosenoffset.com/gridcaster/internal/raycast"
	"chosenoffset.com/gridcaster/internal/render"
	"chosenoffset.com/gridcaster/internal/world/atlas"
	"chosenoffset.com/gridcaster/internal/world/maploader"
	"chosenoffset.com/gridcaster/pkg/logger"
)

// Assets names where the map and textures come from. Empty paths fall back
// to the atlas named by the map, then to the built-in map and placeholders.
type Assets struct {
	MapPath   string
	AtlasPath string
}

// LoadMap loads the configured map or the built-in one.
func LoadMap(path string) (*maploader.Map, error) {
	if path == "" {
		logger.Log.Info("Using built-in map")
		return maploader.Default()
	}

	m, err := maploader.LoadMap(path)
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"map":    path,
		"name":   m.Data.Name,
		"width":  m.Data.Width,
		"height": m.Data.Height,
	}).Info("Loaded map")
	return m, nil
}

// LoadTextures resolves the texture set: an explicit atlas wins over the
// map's own atlas, which wins over the placeholders.
func LoadTextures(atlasPath string, m *maploader.Map) (*atlas.TextureSet, error) {
	var a *atlas.Atlas
	switch {
	case atlasPath != "":
		loaded, err := atlas.LoadAtlas(atlasPath)
		if err != nil {
			return nil, err
		}
		logger.Log.WithField("atlas", atlasPath).Info("Loaded atlas")
		a = loaded
	case m.Atlas != nil:
		a = m.Atlas
	default:
		logger.Log.Info("Using placeholder textures")
		return placeholders.Textures()
	}

	return atlas.FromAtlas(a)
}

// LoadGame builds a ready-to-run Game from the config and assets. input may
// be nil until a backend is chosen; Update requires it.
func LoadGame(cfg *config.Config, assets Assets, input render.InputManager) (*Game, error) {
	gameMap, err := LoadMap(assets.MapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}

	textures, err := LoadTextures(assets.AtlasPath, gameMap)
	if err != nil {
		return nil, fmt.Errorf("failed to load textures: %w", err)
	}
	if textures.TileSize() != cfg.Render.TileSize {
		return nil, fmt.Errorf("textures are %dpx, config expects %dpx", textures.TileSize(), cfg.Render.TileSize)
	}

	return NewGame(cfg, gameMap, textures, input)
}

// NewGame wires the renderer and integrator for gameMap.
func NewGame(cfg *config.Config, gameMap *maploader.Map, textures raycast.Textures, input render.InputManager) (*Game, error) {
	renderer, err := raycast.NewRenderer(gameMap.Grid, textures, raycast.Options{
		FOV:   cfg.FOV(),
		Width: cfg.Render.Width,
		Shading: raycast.Shading{
			Near:  cfg.Shading.Near,
			Far:   cfg.Shading.Far,
			Floor: uint8(cfg.Shading.FloorBrightness),
		},
		Workers: cfg.Render.Workers,
	})
	if err != nil {
		return nil, err
	}

	x, y, heading := gameMap.Spawn()
	logger.Log.WithFields(logrus.Fields{
		"x":       x,
		"y":       y,
		"heading": heading,
		"workers": cfg.Render.Workers,
	}).Debug("Spawning camera")

	return &Game{
		ScreenWidth:  cfg.Render.Width,
		ScreenHeight: cfg.Render.Height,
		GameMap:      gameMap,
		Camera:       movement.Camera{X: x, Y: y, Heading: heading},
		Integrator:   movement.NewIntegrator(gameMap.Grid, cfg.Movement.Clearance),
		Renderer:     renderer,
		Frame:        raycast.NewFrame(cfg.Render.Width, cfg.Render.Height),
		InputMgr:     input,
		Speed:        cfg.Movement.Speed,
		TurnSpeed:    cfg.Movement.TurnSpeed,
		MaxFrame:     cfg.MaxFrame(),
		Now:          time.Now,
	}, nil
}
