package renderer

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/ui"
)

// RaylibBackend draws into a raylib window. Frame pacing comes from
// rl.SetTargetFPS, which EndDrawing waits on.
type RaylibBackend struct {
	maxSpeed int
	strip    *ui.ControlStrip
	pending  Controls
	open     bool
}

// NewRaylibBackend creates a backend whose speed slider goes up to maxSpeed.
func NewRaylibBackend(maxSpeed int) *RaylibBackend {
	return &RaylibBackend{maxSpeed: maxSpeed}
}

// Open creates the window.
func (r *RaylibBackend) Open(width, height int, title string, targetFPS int) error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return errors.New("raylib: window initialization failed")
	}
	rl.SetTargetFPS(int32(targetFPS))

	r.strip = ui.NewControlStrip(width, height)
	r.open = true
	return nil
}

// ShouldClose reports whether the window close button or Escape was pressed.
func (r *RaylibBackend) ShouldClose() bool {
	return rl.WindowShouldClose()
}

func (r *RaylibBackend) BeginFrame() {
	rl.BeginDrawing()
}

func (r *RaylibBackend) EndFrame() {
	rl.EndDrawing()
}

func (r *RaylibBackend) Clear(c color.RGBA) {
	rl.ClearBackground(toColor(c))
}

func (r *RaylibBackend) Circle(center r2.Vec, radius float32, c color.RGBA) {
	rl.DrawCircleV(toVector(center), radius, toColor(c))
}

func (r *RaylibBackend) Line(a, b r2.Vec, c color.RGBA) {
	rl.DrawLineV(toVector(a), toVector(b), toColor(c))
}

func (r *RaylibBackend) Text(s string, x, y, size int, c color.RGBA) {
	rl.DrawText(s, int32(x), int32(y), int32(size), toColor(c))
}

// DrawStatus draws the raygui control strip and queues its actions.
func (r *RaylibBackend) DrawStatus(s Status) {
	if r.strip == nil {
		return
	}
	act := r.strip.Draw(ui.ControlState{
		Paused:   s.Paused,
		Speed:    s.Speed,
		MaxSpeed: r.maxSpeed,
		Tick:     s.Tick,
	})
	r.pending = r.pending.Merge(Controls{
		TogglePause: act.TogglePause,
		Step:        act.Step,
		SpeedDelta:  act.SpeedDelta,
	})
}

// Controls returns keyboard input plus any clicks from the last frame.
// Space pauses, N steps, comma and period change speed.
func (r *RaylibBackend) Controls() Controls {
	keys := Controls{
		TogglePause: rl.IsKeyPressed(rl.KeySpace),
		Step:        rl.IsKeyPressed(rl.KeyN),
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		keys.SpeedDelta--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		keys.SpeedDelta++
	}

	c := r.pending.Merge(keys)
	r.pending = Controls{}
	return c
}

// Close closes the window if it was opened.
func (r *RaylibBackend) Close() {
	if r.open {
		rl.CloseWindow()
		r.open = false
	}
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func toVector(v r2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}
