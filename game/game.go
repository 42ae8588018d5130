package game

import (
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/audio"
	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Options configures game behavior.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int // simulation ticks per UpdateHeadless call

	// Sound plays a gulp on every predation. Nil means silent.
	Sound audio.Player
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	sim *Simulation

	backend renderer.Backend
	sound   audio.Player

	// Telemetry
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	paused         bool
	speed          int // steps per frame (1..MaxStepsPerFrame)
	stepsPerUpdate int

	// Once-only population events
	extinctLogged  bool
	survivorLogged bool
}

// NewGameWithOptions creates a game with the given options.
// backend may be nil when opts.Headless is set.
func NewGameWithOptions(cfg *config.Config, backend renderer.Backend, opts Options) (*Game, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	bounds := components.ScreenBounds(cfg.Screen.Width, cfg.Screen.Height)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	sound := opts.Sound
	if sound == nil {
		sound = audio.Silent{}
	}

	if opts.Headless {
		backend = nil
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		cfg:            cfg,
		sim:            NewSimulation(bounds, rng),
		backend:        backend,
		sound:          sound,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		outputManager:  om,
		logStats:       opts.LogStats,
		speed:          1,
		stepsPerUpdate: stepsPerUpdate,
	}

	g.sim.Populate(cfg.Population.Initial, cfg.Fish)

	slog.Info("simulation initialized",
		"seed", opts.Seed,
		"fish", g.sim.Len(),
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"output_dir", om.Dir(),
	)

	return g, nil
}

// Update applies user controls and runs the simulation for one frame.
func (g *Game) Update() {
	if g.backend != nil {
		g.applyControls(g.backend.Controls())
	}

	if g.paused {
		return
	}
	for i := 0; i < g.speed; i++ {
		g.step()
	}
}

// UpdateHeadless runs the simulation without graphics or input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// applyControls handles pause, single step and speed changes.
func (g *Game) applyControls(c renderer.Controls) {
	if c.TogglePause {
		g.paused = !g.paused
	}
	if c.SpeedDelta != 0 {
		g.speed += c.SpeedDelta
		if g.speed < 1 {
			g.speed = 1
		}
		if limit := g.cfg.Controls.MaxStepsPerFrame; g.speed > limit {
			g.speed = limit
		}
	}
	// Stepping only makes sense while paused
	if c.Step && g.paused {
		g.step()
	}
}

// step advances the simulation one tick and feeds the telemetry.
func (g *Game) step() {
	res := g.sim.Step()

	if n := len(res.Predations); n > 0 {
		g.collector.RecordKills(n)
		g.recordPredations(res)
	}
	g.collector.RecordEvasions(res.Evasions)

	g.checkPopulation()
	g.flushTelemetry()
}

// recordPredations logs, sounds and persists predation events.
func (g *Game) recordPredations(res StepResult) {
	records := make([]telemetry.PredationRecord, 0, len(res.Predations))
	for _, p := range res.Predations {
		slog.Debug("predation",
			"tick", res.Tick,
			"eater", p.EaterID,
			"prey", p.PreyID,
			"prey_size", p.PreySize,
			"eater_size", p.EaterSize,
		)
		g.sound.Gulp(p.PreySize)

		records = append(records, telemetry.PredationRecord{
			Tick:      res.Tick,
			EaterID:   p.EaterID,
			PreyID:    p.PreyID,
			PreySize:  p.PreySize,
			EaterSize: p.EaterSize,
			X:         p.Position.X,
			Y:         p.Position.Y,
		})
	}

	if err := g.outputManager.WritePredations(records); err != nil {
		slog.Error("failed to write predations", "error", err)
	}
}

// checkPopulation logs the lone-survivor and extinction events once each.
func (g *Game) checkPopulation() {
	n := g.sim.Len()
	if n == 1 && !g.survivorLogged && g.cfg.Population.Initial > 1 {
		g.survivorLogged = true
		f := g.sim.Fish()[0]
		slog.Info("lone survivor",
			"tick", g.sim.Tick(),
			"id", f.ID,
			"size", f.Size,
			"speed", f.Speed,
		)
	}
	if n == 0 && !g.extinctLogged {
		g.extinctLogged = true
		slog.Info("population extinct", "tick", g.sim.Tick(), "dead", g.sim.DeadCount())
	}
}

// flushTelemetry emits a stats window when one has elapsed.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	fish := g.sim.Fish()
	sizes := make([]float64, len(fish))
	speeds := make([]float64, len(fish))
	for i, f := range fish {
		sizes[i] = float64(f.Size)
		speeds[i] = float64(f.Speed)
	}

	stats := g.collector.Flush(tick, g.sim.DeadCount(), sizes, speeds)

	if g.logStats {
		stats.LogStats()
	}
	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}

// Draw renders the current state to the backend.
func (g *Game) Draw() {
	if g.backend == nil {
		return
	}
	renderer.DrawFrame(g.backend, g.style(), renderer.Frame{
		Fish:      g.sim.Fish(),
		DeadCount: g.sim.DeadCount(),
		Status: renderer.Status{
			Paused: g.paused,
			Speed:  g.speed,
			Tick:   g.sim.Tick(),
		},
	})
}

func (g *Game) style() renderer.Style {
	r := g.cfg.Render
	return renderer.Style{
		Background: g.cfg.Derived.Background,
		TextColor:  g.cfg.Derived.TextColor,
		FontSize:   r.FontSize,
		TrailScale: r.TrailScale,
		HUDX:       r.HUDX,
		HUDY:       r.HUDY,
		HUDSpacing: r.HUDSpacing,
	}
}

// Unload releases the output files and the audio device.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.sound.Close()
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() int {
	return g.sim.Tick()
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Speed returns the current steps per frame.
func (g *Game) Speed() int {
	return g.speed
}

// Population returns the live and dead fish counts.
func (g *Game) Population() (alive, dead int) {
	return g.sim.Len(), g.sim.DeadCount()
}

// Bounds returns the world box fish are clamped to.
func (g *Game) Bounds() r2.Box {
	return g.sim.Bounds()
}
