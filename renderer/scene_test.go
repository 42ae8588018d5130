package renderer

import (
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/components"
)

type call struct {
	op     string
	a, b   r2.Vec
	radius float32
	text   string
	x, y   int
	size   int
	color  color.RGBA
}

// recorder is a Backend that logs draw calls.
type recorder struct {
	calls  []call
	status *Status
}

func (r *recorder) Open(int, int, string, int) error { return nil }
func (r *recorder) ShouldClose() bool                { return false }
func (r *recorder) BeginFrame()                      { r.calls = append(r.calls, call{op: "begin"}) }
func (r *recorder) EndFrame()                        { r.calls = append(r.calls, call{op: "end"}) }
func (r *recorder) Clear(c color.RGBA)               { r.calls = append(r.calls, call{op: "clear", color: c}) }
func (r *recorder) Circle(center r2.Vec, radius float32, c color.RGBA) {
	r.calls = append(r.calls, call{op: "circle", a: center, radius: radius, color: c})
}
func (r *recorder) Line(a, b r2.Vec, c color.RGBA) {
	r.calls = append(r.calls, call{op: "line", a: a, b: b, color: c})
}
func (r *recorder) Text(s string, x, y, size int, c color.RGBA) {
	r.calls = append(r.calls, call{op: "text", text: s, x: x, y: y, size: size, color: c})
}
func (r *recorder) Controls() Controls { return Controls{} }
func (r *recorder) Close()             {}

func (r *recorder) ops() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, c.op)
	}
	return out
}

// statusRecorder also implements StatusDrawer.
type statusRecorder struct{ recorder }

func (r *statusRecorder) DrawStatus(s Status) { r.status = &s }

var testStyle = Style{
	Background: color.RGBA{245, 245, 245, 255},
	TextColor:  color.RGBA{0, 0, 0, 255},
	FontSize:   20,
	TrailScale: 0.1,
	HUDX:       10,
	HUDY:       10,
	HUDSpacing: 20,
}

func TestDrawFrameOrder(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	f := components.NewFish(1, 100, 50, 2, 1, red)

	rec := &recorder{}
	DrawFrame(rec, testStyle, Frame{Fish: []*components.Fish{&f}, DeadCount: 3})

	want := []string{"begin", "clear", "circle", "line", "line", "text", "text", "end"}
	got := rec.ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}

	if rec.calls[1].color != testStyle.Background {
		t.Errorf("clear color = %v, want %v", rec.calls[1].color, testStyle.Background)
	}

	circle := rec.calls[2]
	if circle.a != f.Position || circle.radius != 2 || circle.color != red {
		t.Errorf("circle = %+v", circle)
	}

	// Trail line runs from the point to point + 0.1 * position
	line := rec.calls[3]
	wantEnd := r2.Vec{X: 110, Y: 55}
	if line.a != f.Trail[0] || line.b != wantEnd {
		t.Errorf("line = %v -> %v, want %v -> %v", line.a, line.b, f.Trail[0], wantEnd)
	}
}

func TestDrawCounters(t *testing.T) {
	rec := &recorder{}
	DrawCounters(rec, testStyle, 4, 16)

	if len(rec.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(rec.calls))
	}
	dead, alive := rec.calls[0], rec.calls[1]
	if dead.text != "Dead Fishies: 4" || dead.x != 10 || dead.y != 10 || dead.size != 20 {
		t.Errorf("dead counter = %+v", dead)
	}
	if alive.text != "Fishies: 16" || alive.x != 10 || alive.y != 30 || alive.size != 20 {
		t.Errorf("alive counter = %+v", alive)
	}
	if dead.color != testStyle.TextColor || alive.color != testStyle.TextColor {
		t.Error("counters should use the text color")
	}
}

func TestDrawFrameEmpty(t *testing.T) {
	rec := &recorder{}
	DrawFrame(rec, testStyle, Frame{DeadCount: 20})

	want := []string{"begin", "clear", "text", "text", "end"}
	got := rec.ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if rec.calls[3].text != "Fishies: 0" {
		t.Errorf("alive counter = %q", rec.calls[3].text)
	}
}

func TestDrawFrameStatusDrawer(t *testing.T) {
	rec := &statusRecorder{}
	DrawFrame(rec, testStyle, Frame{Status: Status{Paused: true, Speed: 3, Tick: 42}})

	if rec.status == nil {
		t.Fatal("DrawStatus was not called")
	}
	if !rec.status.Paused || rec.status.Speed != 3 || rec.status.Tick != 42 {
		t.Errorf("status = %+v", *rec.status)
	}
}

func TestControlsMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Controls
		want Controls
	}{
		{"empty", Controls{}, Controls{}, Controls{}},
		{"one toggle", Controls{TogglePause: true}, Controls{}, Controls{TogglePause: true}},
		{"two toggles cancel", Controls{TogglePause: true}, Controls{TogglePause: true}, Controls{}},
		{"step", Controls{}, Controls{Step: true}, Controls{Step: true}},
		{"speed adds", Controls{SpeedDelta: 2}, Controls{SpeedDelta: -1}, Controls{SpeedDelta: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Merge(tt.b); got != tt.want {
				t.Errorf("Merge = %+v, want %+v", got, tt.want)
			}
		})
	}
}
