package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/gridcaster/internal/audio"
	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/game"
	"chosenoffset.com/gridcaster/internal/render"
	ebitenrender "chosenoffset.com/gridcaster/internal/render/ebiten"
	"chosenoffset.com/gridcaster/internal/render/terminal"
	"chosenoffset.com/gridcaster/pkg/logger"
)

type options struct {
	configPath string
	mapPath    string
	atlasPath  string
	backend    string
	logPath    string
	debug      bool
	snapshot   string
	audio      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "gridcaster.json", "Path to the config file")
	flag.StringVar(&opts.mapPath, "map", "", "Map file (overrides config, empty for the built-in map)")
	flag.StringVar(&opts.atlasPath, "atlas", "", "Atlas config file (overrides config and the map's atlas)")
	flag.StringVar(&opts.backend, "backend", "ebiten", "Presentation backend: ebiten or terminal")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stderr")
	flag.BoolVar(&opts.debug, "debug", false, "Start with the debug line shown")
	flag.StringVar(&opts.snapshot, "snapshot", "", "Render one frame to this PNG and exit")
	flag.BoolVar(&opts.audio, "audio", false, "Play a tone when walking into a wall")
	flag.Parse()

	if err := run(opts); err != nil {
		// The log file is closed and the terminal is restored by now.
		logger.Log.SetOutput(os.Stderr)
		logger.Log.WithError(err).Error("Gridcaster failed")
		os.Exit(1)
	}
}

// run is main without os.Exit.
func run(opts options) error {
	var logOut io.Writer
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	} else if opts.backend == "terminal" {
		// stderr shares the tty with the screen.
		logOut = io.Discard
	}
	logger.Init(logOut)

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	assets := game.Assets{MapPath: cfg.Assets.Map, AtlasPath: cfg.Assets.Atlas}
	if opts.mapPath != "" {
		assets.MapPath = opts.mapPath
	}
	if opts.atlasPath != "" {
		assets.AtlasPath = opts.atlasPath
	}

	logger.Log.WithFields(logrus.Fields{
		"config":  opts.configPath,
		"backend": opts.backend,
		"width":   cfg.Render.Width,
		"height":  cfg.Render.Height,
		"fov":     cfg.Render.FOVDegrees,
	}).Info("Starting gridcaster")

	g, err := game.LoadGame(cfg, assets, nil)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	g.Debug = opts.debug

	if opts.snapshot != "" {
		if err := g.Snapshot(opts.snapshot); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		logger.Log.WithField("path", opts.snapshot).Info("Wrote snapshot")
		return nil
	}

	var engine render.Engine
	switch opts.backend {
	case "ebiten":
		engine = ebitenrender.NewEngine()
		g.InputMgr = ebitenrender.NewInputManager()
	case "terminal":
		term, err := terminal.NewEngine()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		engine = term
		g.InputMgr = term.Input()
	default:
		return fmt.Errorf("unknown backend %q", opts.backend)
	}

	if opts.audio || cfg.Audio.Enabled {
		player, err := audio.NewPlayer(cfg.Audio.BumpHz, cfg.BumpDuration())
		if err != nil {
			logger.Log.WithError(err).Warn("Audio disabled")
		} else {
			defer player.Close()
			g.Bumper = player
		}
	}

	engine.SetWindowSize(cfg.Render.Width*cfg.Window.Scale, cfg.Render.Height*cfg.Window.Scale)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)

	if err := engine.RunGame(g); err != nil {
		return fmt.Errorf("game exited: %w", err)
	}
	logger.Log.WithField("frames", g.FrameCount).Info("Goodbye")
	return nil
}
