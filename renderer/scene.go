package renderer

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/components"
)

// Style holds the fixed drawing parameters for a frame.
type Style struct {
	Background color.RGBA
	TextColor  color.RGBA
	FontSize   int
	TrailScale float64
	HUDX       int
	HUDY       int
	HUDSpacing int
}

// Frame is the read-only data drawn for one tick.
type Frame struct {
	Fish      []*components.Fish
	DeadCount int
	Status    Status
}

// DrawFrame renders one complete frame: clear, fish, counters, present.
func DrawFrame(b Backend, st Style, f Frame) {
	b.BeginFrame()
	b.Clear(st.Background)

	for _, fish := range f.Fish {
		DrawFish(b, fish, st.TrailScale)
	}

	DrawCounters(b, st, f.DeadCount, len(f.Fish))

	if sd, ok := b.(StatusDrawer); ok {
		sd.DrawStatus(f.Status)
	}

	b.EndFrame()
}

// DrawFish draws the body as a filled circle and one line per trail point,
// running from the point towards trailScale times the fish position.
func DrawFish(b Backend, f *components.Fish, trailScale float64) {
	b.Circle(f.Position, f.Radius(), f.Color)

	offset := r2.Scale(trailScale, f.Position)
	for _, p := range f.Trail {
		b.Line(p, r2.Add(p, offset), f.Color)
	}
}

// DrawCounters draws the dead and live population counters.
func DrawCounters(b Backend, st Style, dead, alive int) {
	b.Text(fmt.Sprintf("Dead Fishies: %d", dead), st.HUDX, st.HUDY, st.FontSize, st.TextColor)
	b.Text(fmt.Sprintf("Fishies: %d", alive), st.HUDX, st.HUDY+st.HUDSpacing, st.FontSize, st.TextColor)
}
