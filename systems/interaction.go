// Package systems provides the per-tick update rules for the simulation.
package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/components"
)

// Predation records one fish eating another during a tick.
type Predation struct {
	EaterID    uint32
	PreyID     uint32
	EaterIndex int    // index into the slice passed to ResolveInteractions
	PreyIndex  int    // index into the slice passed to ResolveInteractions
	PreySize   int    // size absorbed by the eater
	EaterSize  int    // eater size after growing
	Position   r2.Vec // eater position at the moment of the kill
}

// Interactions is the outcome of one interaction phase.
type Interactions struct {
	// Eaten[i] is true when fish i was eaten this tick. The caller removes
	// those fish after the phase; survivors keep their relative order.
	Eaten      []bool
	Predations []Predation
	Evasions   int
}

// Kills returns the number of fish eaten.
func (r Interactions) Kills() int {
	return len(r.Predations)
}

// ResolveInteractions runs the pairwise predation/evasion pass over fish in
// slice order, using their current (post-movement) positions.
//
// For each pair (i, j) with i < j that overlap (distance < size_i + size_j):
//   - the larger i eats j, grows by j's size, and stops scanning for this tick;
//   - the smaller i is pushed away by Speed_i * (pos_i - pos_j);
//   - equal sizes do nothing.
//
// Ties are broken by slice order: an eater takes the first overlapping
// smaller fish after it, and lower indices get to act first. A fish that has
// been eaten is skipped for the rest of the pass, both as actor and as target.
// The slice itself is never reordered or shortened here.
func ResolveInteractions(fish []*components.Fish) Interactions {
	res := Interactions{Eaten: make([]bool, len(fish))}

	for i, a := range fish {
		if res.Eaten[i] {
			continue
		}
		for j := i + 1; j < len(fish); j++ {
			if res.Eaten[j] {
				continue
			}
			b := fish[j]
			if a.Size == b.Size || !Overlapping(a, b) {
				continue
			}

			if a.Size > b.Size {
				a.Grow(b.Size)
				res.Eaten[j] = true
				res.Predations = append(res.Predations, Predation{
					EaterID:    a.ID,
					PreyID:     b.ID,
					EaterIndex: i,
					PreyIndex:  j,
					PreySize:   b.Size,
					EaterSize:  a.Size,
					Position:   a.Position,
				})
				break // at most one kill per fish per tick
			}

			Evade(a, b)
			res.Evasions++
		}
	}

	return res
}

// Overlapping reports whether two fish bodies touch.
func Overlapping(a, b *components.Fish) bool {
	return r2.Norm(r2.Sub(a.Position, b.Position)) < float64(a.Size+b.Size)
}

// Evade displaces prey away from threat by prey.Speed times their current
// separation. The step is not normalized, so it grows with the separation,
// and the result is not clamped; the next Move brings it back in bounds.
func Evade(prey, threat *components.Fish) {
	away := r2.Sub(prey.Position, threat.Position)
	prey.Position = r2.Add(prey.Position, r2.Scale(float64(prey.Speed), away))
}
