package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/fishtank/audio"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
	"github.com/pthm-cable/fishtank/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	rendererName := flag.String("renderer", "raylib", "Drawing backend: raylib or terminal")
	sound := flag.Bool("sound", false, "Play a gulp sound on every predation")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call in headless mode")
	debug := flag.Bool("debug", false, "Log every predation")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:           rngSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *sound {
		p, err := audio.NewSpeakerPlayer(cfg.Audio, cfg.Fish.MinSize)
		if err != nil {
			slog.Warn("audio unavailable, running silent", "error", err)
		} else {
			opts.Sound = p
		}
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}

	var backend renderer.Backend
	switch *rendererName {
	case "raylib":
		backend = renderer.NewRaylibBackend(cfg.Controls.MaxStepsPerFrame)
	case "terminal":
		// The terminal owns stdout while drawing
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		backend = renderer.NewTerminalBackend()
	default:
		slog.Error("unknown renderer", "renderer", *rendererName)
		os.Exit(1)
	}

	if err := backend.Open(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Title, cfg.Screen.TargetFPS); err != nil {
		slog.Error("failed to open renderer", "renderer", *rendererName, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	g, err := game.NewGameWithOptions(cfg, backend, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		backend.Close()
		os.Exit(1)
	}
	defer g.Unload()

	for !backend.ShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}

// runHeadless steps the simulation as fast as possible without a renderer.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) {
	g, err := game.NewGameWithOptions(cfg, nil, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
		if alive, _ := g.Population(); alive == 0 && maxTicks == 0 {
			slog.Info("nothing left to simulate", "tick", g.Tick())
			return
		}
	}
}
