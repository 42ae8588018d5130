package game

import (
	"image/color"

	"github.com/pthm-cable/fishtank/config"
)

// Populate spawns n fish with uniformly random position, size, speed and
// opaque color. Positions are whole numbers in [0, width) x [0, height);
// size and speed are drawn from the inclusive ranges in fc.
func (s *Simulation) Populate(n int, fc config.FishConfig) {
	width := int(s.bounds.Max.X - s.bounds.Min.X)
	height := int(s.bounds.Max.Y - s.bounds.Min.Y)

	for i := 0; i < n; i++ {
		x := s.bounds.Min.X + float64(s.rng.Intn(width))
		y := s.bounds.Min.Y + float64(s.rng.Intn(height))
		size := fc.MinSize + s.rng.Intn(fc.MaxSize-fc.MinSize+1)
		speed := fc.MinSpeed + s.rng.Intn(fc.MaxSpeed-fc.MinSpeed+1)
		c := color.RGBA{
			R: uint8(s.rng.Intn(256)),
			G: uint8(s.rng.Intn(256)),
			B: uint8(s.rng.Intn(256)),
			A: 255,
		}
		s.Spawn(x, y, size, speed, c)
	}
}
