package renderer

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// TerminalBackend draws into a terminal with tcell. The canvas is scaled to
// the terminal size; each cell stands for a block of canvas units.
type TerminalBackend struct {
	screen tcell.Screen

	width, height float64 // canvas size
	cols, rows    int

	ticker *time.Ticker
	events chan tcell.Event
	quit   bool

	pending Controls
	bg      tcell.Color
}

// NewTerminalBackend creates a backend on the real terminal.
func NewTerminalBackend() *TerminalBackend {
	return &TerminalBackend{}
}

// NewTerminalBackendWithScreen creates a backend on an existing screen,
// e.g. tcell.NewSimulationScreen in tests. The screen must not be initialized.
func NewTerminalBackendWithScreen(s tcell.Screen) *TerminalBackend {
	return &TerminalBackend{screen: s}
}

// Open initializes the terminal and starts event polling.
func (t *TerminalBackend) Open(width, height int, _ string, targetFPS int) error {
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	t.screen.HideCursor()

	t.width = float64(width)
	t.height = float64(height)
	t.cols, t.rows = t.screen.Size()

	t.ticker = time.NewTicker(time.Second / time.Duration(targetFPS))
	t.events = make(chan tcell.Event, 100)
	go func(s tcell.Screen, out chan<- tcell.Event) {
		for {
			ev := s.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			out <- ev
		}
	}(t.screen, t.events)

	return nil
}

// ShouldClose drains pending terminal events and reports whether Escape,
// q or Ctrl-C was pressed.
func (t *TerminalBackend) ShouldClose() bool {
	for {
		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		default:
			return t.quit
		}
	}
}

func (t *TerminalBackend) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				t.quit = true
			case ' ':
				t.pending.TogglePause = !t.pending.TogglePause
			case 'n':
				t.pending.Step = true
			case ',':
				t.pending.SpeedDelta--
			case '.':
				t.pending.SpeedDelta++
			}
		}
	case *tcell.EventResize:
		t.cols, t.rows = t.screen.Size()
		t.screen.Sync()
	}
}

func (t *TerminalBackend) BeginFrame() {}

// EndFrame shows the frame and waits for the next tick of the frame clock.
func (t *TerminalBackend) EndFrame() {
	t.screen.Show()
	if t.ticker != nil {
		<-t.ticker.C
	}
}

// Clear fills the whole terminal with c.
func (t *TerminalBackend) Clear(c color.RGBA) {
	t.bg = toTermColor(c)
	t.screen.SetStyle(tcell.StyleDefault.Background(t.bg))
	t.screen.Clear()
}

// Circle fills every cell whose center lies within radius of center.
func (t *TerminalBackend) Circle(center r2.Vec, radius float32, c color.RGBA) {
	sx, sy := t.cellSize()
	r := float64(radius)

	minCol := int(math.Floor((center.X - r) / sx))
	maxCol := int(math.Ceil((center.X + r) / sx))
	minRow := int(math.Floor((center.Y - r) / sy))
	maxRow := int(math.Ceil((center.Y + r) / sy))

	style := tcell.StyleDefault.Background(toTermColor(c))
	plotted := false
	for row := max(minRow, 0); row <= min(maxRow, t.rows-1); row++ {
		for col := max(minCol, 0); col <= min(maxCol, t.cols-1); col++ {
			cx := (float64(col) + 0.5) * sx
			cy := (float64(row) + 0.5) * sy
			if math.Hypot(cx-center.X, cy-center.Y) <= r {
				t.screen.SetContent(col, row, ' ', nil, style)
				plotted = true
			}
		}
	}

	// Small fish can fall between cell centers; mark the containing cell
	if !plotted {
		col, row := t.toCell(center)
		if t.inside(col, row) {
			t.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// Line plots the cells between a and b with a dot in color c.
func (t *TerminalBackend) Line(a, b r2.Vec, c color.RGBA) {
	c0, r0 := t.toCell(a)
	c1, r1 := t.toCell(b)

	steps := max(abs(c1-c0), abs(r1-r0))
	style := tcell.StyleDefault.Foreground(toTermColor(c)).Background(t.bg)
	for i := 0; i <= steps; i++ {
		col, row := c0, r0
		if steps > 0 {
			f := float64(i) / float64(steps)
			col = c0 + int(math.Round(f*float64(c1-c0)))
			row = r0 + int(math.Round(f*float64(r1-r0)))
		}
		if !t.inside(col, row) {
			continue
		}
		// Do not paint over fish bodies
		if _, _, st, _ := t.screen.GetContent(col, row); st != tcell.StyleDefault && st != t.defaultStyle() {
			continue
		}
		t.screen.SetContent(col, row, '·', nil, style)
	}
}

// Text writes s starting at the cell containing canvas point (x, y).
func (t *TerminalBackend) Text(s string, x, y, size int, c color.RGBA) {
	col, row := t.toCell(r2.Vec{X: float64(x), Y: float64(y)})
	style := tcell.StyleDefault.Foreground(toTermColor(c)).Background(t.bg)
	for i, ch := range []rune(s) {
		if t.inside(col+i, row) {
			t.screen.SetContent(col+i, row, ch, nil, style)
		}
	}
}

// DrawStatus writes a key help line on the bottom row.
func (t *TerminalBackend) DrawStatus(s Status) {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	line := fmt.Sprintf("[%s %dx tick %d] space:pause n:step ,/.:speed q:quit", state, s.Speed, s.Tick)
	style := tcell.StyleDefault.Reverse(true)
	row := t.rows - 1
	for i, ch := range []rune(line) {
		if t.inside(i, row) {
			t.screen.SetContent(i, row, ch, nil, style)
		}
	}
}

// Controls returns key presses seen since the last call.
func (t *TerminalBackend) Controls() Controls {
	c := t.pending
	t.pending = Controls{}
	return c
}

// Close restores the terminal.
func (t *TerminalBackend) Close() {
	if t.ticker != nil {
		t.ticker.Stop()
	}
	if t.screen != nil {
		t.screen.Fini()
	}
}

func (t *TerminalBackend) defaultStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.bg)
}

// cellSize returns the canvas units covered by one cell on each axis.
func (t *TerminalBackend) cellSize() (float64, float64) {
	return t.width / float64(max(t.cols, 1)), t.height / float64(max(t.rows, 1))
}

func (t *TerminalBackend) toCell(p r2.Vec) (int, int) {
	sx, sy := t.cellSize()
	return int(math.Floor(p.X / sx)), int(math.Floor(p.Y / sy))
}

func (t *TerminalBackend) inside(col, row int) bool {
	return col >= 0 && col < t.cols && row >= 0 && row < t.rows
}

func toTermColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
