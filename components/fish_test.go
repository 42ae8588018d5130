package components

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

var testBounds = ScreenBounds(800, 450)

func TestNewFishTrail(t *testing.T) {
	f := NewFish(1, 100, 200, 12, 3, color.RGBA{1, 2, 3, 255})

	if len(f.Trail) != 12 {
		t.Fatalf("trail length = %d, want 12", len(f.Trail))
	}
	for i, p := range f.Trail {
		if p != f.Position {
			t.Errorf("trail[%d] = %v, want spawn position %v", i, p, f.Position)
		}
	}
}

func TestMoveStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Corners and edges, fastest speed, so clamping is exercised constantly
	starts := []r2.Vec{{X: 0, Y: 0}, {X: 800, Y: 450}, {X: 0, Y: 450}, {X: 800, Y: 0}, {X: 400, Y: 225}}
	for _, s := range starts {
		f := NewFish(1, s.X, s.Y, 10, 10, color.RGBA{})
		for i := 0; i < 2000; i++ {
			f.Move(rng, testBounds)
			if !Contains(testBounds, f.Position) {
				t.Fatalf("start %v, step %d: position %v out of bounds", s, i, f.Position)
			}
		}
	}
}

func TestMoveDisplacementIsSpeedMultiple(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := NewFish(1, 400, 225, 5, 4, color.RGBA{})

	prev := f.Position
	prevTrail := append([]r2.Vec(nil), f.Trail...)
	f.Move(rng, testBounds)

	check := func(name string, d float64) {
		if d != 0 && math.Abs(d) != 4 {
			t.Errorf("%s displacement = %v, want one of -4, 0, 4", name, d)
		}
	}
	check("x", f.Position.X-prev.X)
	check("y", f.Position.Y-prev.Y)
	for i := range f.Trail {
		check("trail x", f.Trail[i].X-prevTrail[i].X)
		check("trail y", f.Trail[i].Y-prevTrail[i].Y)
	}
}

func TestMoveDeterministicWithSeed(t *testing.T) {
	a := NewFish(1, 300, 300, 20, 7, color.RGBA{})
	b := NewFish(1, 300, 300, 20, 7, color.RGBA{})
	rngA := rand.New(rand.NewSource(99))
	rngB := rand.New(rand.NewSource(99))

	for i := 0; i < 50; i++ {
		a.Move(rngA, testBounds)
		b.Move(rngB, testBounds)
	}

	if a.Position != b.Position {
		t.Errorf("positions diverged: %v vs %v", a.Position, b.Position)
	}
	for i := range a.Trail {
		if a.Trail[i] != b.Trail[i] {
			t.Fatalf("trail[%d] diverged: %v vs %v", i, a.Trail[i], b.Trail[i])
		}
	}
}

func TestTrailNotClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	f := NewFish(1, 0, 0, 50, 10, color.RGBA{})

	escaped := false
	for i := 0; i < 500 && !escaped; i++ {
		f.Move(rng, testBounds)
		for _, p := range f.Trail {
			if !Contains(testBounds, p) {
				escaped = true
				break
			}
		}
	}
	if !escaped {
		t.Error("expected at least one trail point to drift outside bounds")
	}
}

func TestZeroSpeedNeverMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := NewFish(1, 10, 20, 3, 0, color.RGBA{})
	for i := 0; i < 10; i++ {
		f.Move(rng, testBounds)
	}
	if f.Position != (r2.Vec{X: 10, Y: 20}) {
		t.Errorf("position = %v, want unchanged", f.Position)
	}
}

func TestGrow(t *testing.T) {
	f := NewFish(1, 0, 0, 30, 1, color.RGBA{})
	f.Grow(10)
	if f.Size != 40 {
		t.Errorf("size = %d, want 40", f.Size)
	}
	if len(f.Trail) != 30 {
		t.Errorf("trail length = %d, want 30 (grow must not extend trail)", len(f.Trail))
	}
	if f.Radius() != 40 {
		t.Errorf("radius = %v, want 40", f.Radius())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   r2.Vec
		want r2.Vec
	}{
		{"inside", r2.Vec{X: 5, Y: 5}, r2.Vec{X: 5, Y: 5}},
		{"left", r2.Vec{X: -3, Y: 5}, r2.Vec{X: 0, Y: 5}},
		{"right", r2.Vec{X: 900, Y: 5}, r2.Vec{X: 800, Y: 5}},
		{"top", r2.Vec{X: 5, Y: -1}, r2.Vec{X: 5, Y: 0}},
		{"bottom", r2.Vec{X: 5, Y: 451}, r2.Vec{X: 5, Y: 450}},
		{"corner", r2.Vec{X: -10, Y: 1000}, r2.Vec{X: 0, Y: 450}},
		{"on edge", r2.Vec{X: 800, Y: 450}, r2.Vec{X: 800, Y: 450}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in, testBounds); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
