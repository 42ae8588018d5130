package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/components"
)

// MoveAll runs the movement phase: every fish takes one random-walk step in
// slice order, all drawing from the same rng.
func MoveAll(fish []*components.Fish, rng *rand.Rand, bounds r2.Box) {
	for _, f := range fish {
		f.Move(rng, bounds)
	}
}
