// Package components defines the entity data stored in the simulation world.
package components

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Fish is a single simulated organism.
// Size doubles as draw radius and as mass in predation comparisons.
type Fish struct {
	ID       uint32
	Position r2.Vec
	Size     int
	Speed    int
	Color    color.RGBA

	// Trail points are decorative only. They start stacked on the spawn
	// position, one per unit of initial size, and are never clamped.
	Trail []r2.Vec
}

// NewFish creates a fish at (x, y) with a trail of size points.
func NewFish(id uint32, x, y float64, size, speed int, c color.RGBA) Fish {
	pos := r2.Vec{X: x, Y: y}
	trail := make([]r2.Vec, size)
	for i := range trail {
		trail[i] = pos
	}
	return Fish{
		ID:       id,
		Position: pos,
		Size:     size,
		Speed:    speed,
		Color:    c,
		Trail:    trail,
	}
}

// Move performs one random-walk step: the body and every trail point are
// displaced by Speed * d on each axis, with d drawn independently from
// {-1, 0, 1}. Only the body position is clamped to bounds.
//
// Draws happen in a fixed order (body x, body y, then x, y per trail point)
// so a seeded rng reproduces the same walk.
func (f *Fish) Move(rng *rand.Rand, bounds r2.Box) {
	speed := float64(f.Speed)

	f.Position.X += step(rng) * speed
	f.Position.Y += step(rng) * speed
	f.Position = Clamp(f.Position, bounds)

	for i := range f.Trail {
		f.Trail[i].X += step(rng) * speed
		f.Trail[i].Y += step(rng) * speed
	}
}

// Grow adds amount to the fish size. No upper bound.
func (f *Fish) Grow(amount int) {
	f.Size += amount
}

// Radius returns the draw radius.
func (f *Fish) Radius() float32 {
	return float32(f.Size)
}

// step draws a displacement direction from {-1, 0, 1}.
func step(rng *rand.Rand) float64 {
	return float64(rng.Intn(3) - 1)
}

// Clamp limits p to the closed box b.
func Clamp(p r2.Vec, b r2.Box) r2.Vec {
	if p.X < b.Min.X {
		p.X = b.Min.X
	}
	if p.X > b.Max.X {
		p.X = b.Max.X
	}
	if p.Y < b.Min.Y {
		p.Y = b.Min.Y
	}
	if p.Y > b.Max.Y {
		p.Y = b.Max.Y
	}
	return p
}

// Contains reports whether p lies inside the closed box b.
func Contains(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ScreenBounds returns the box [0, width] x [0, height].
func ScreenBounds(width, height int) r2.Box {
	return r2.Box{Max: r2.Vec{X: float64(width), Y: float64(height)}}
}
