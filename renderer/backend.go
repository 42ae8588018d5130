// Package renderer draws the simulation through a pluggable drawing backend.
package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Backend is the drawing surface the game renders to once per tick.
// Coordinates are canvas units: (0, 0) top-left, (width, height) bottom-right.
type Backend interface {
	// Open creates the window (or terminal surface) and sets frame pacing.
	Open(width, height int, title string, targetFPS int) error
	// ShouldClose reports whether the user asked to quit.
	ShouldClose() bool

	BeginFrame()
	// EndFrame presents the frame and blocks until the next frame is due.
	EndFrame()

	Clear(c color.RGBA)
	Circle(center r2.Vec, radius float32, c color.RGBA)
	Line(a, b r2.Vec, c color.RGBA)
	Text(s string, x, y, size int, c color.RGBA)

	// Controls returns user input gathered since the previous call.
	Controls() Controls

	Close()
}

// Controls is the user input consumed by the game loop each frame.
type Controls struct {
	TogglePause bool
	Step        bool // advance one tick while paused
	SpeedDelta  int  // change in steps per frame
}

// Merge combines two input snapshots.
func (c Controls) Merge(o Controls) Controls {
	return Controls{
		TogglePause: c.TogglePause != o.TogglePause,
		Step:        c.Step || o.Step,
		SpeedDelta:  c.SpeedDelta + o.SpeedDelta,
	}
}

// Status is run state a backend may show alongside the counters.
type Status struct {
	Paused bool
	Speed  int
	Tick   int
}

// StatusDrawer is implemented by backends that can show run state and
// interactive controls.
type StatusDrawer interface {
	DrawStatus(s Status)
}
