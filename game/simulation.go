package game

import (
	"image/color"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/systems"
)

// StepResult describes what happened during one tick.
type StepResult struct {
	Tick       int
	Predations []systems.Predation
	Evasions   int
}

// Simulation owns the fish population and advances it tick by tick.
//
// Fish live in an ark world; order holds their insertion order, which the
// interaction phase depends on for tie-breaking. Component pointers handed out
// by Fish are only valid until the next Step or Spawn.
type Simulation struct {
	world   *ecs.World
	fishMap *ecs.Map1[components.Fish]
	order   []ecs.Entity

	rng    *rand.Rand
	bounds r2.Box

	nextID    uint32
	deadCount int
	tick      int

	// Reused between steps
	scratch []*components.Fish
}

// NewSimulation creates an empty simulation clamped to bounds.
// rng is the only source of randomness; pass a seeded one for reproducible runs.
func NewSimulation(bounds r2.Box, rng *rand.Rand) *Simulation {
	world := ecs.NewWorld()
	return &Simulation{
		world:   world,
		fishMap: ecs.NewMap1[components.Fish](world),
		rng:     rng,
		bounds:  bounds,
		nextID:  1,
	}
}

// Spawn adds a fish at the end of the population order and returns its ID.
func (s *Simulation) Spawn(x, y float64, size, speed int, c color.RGBA) uint32 {
	id := s.nextID
	s.nextID++

	f := components.NewFish(id, x, y, size, speed, c)
	e := s.fishMap.NewEntity(&f)
	s.order = append(s.order, e)
	return id
}

// Step advances the population by one tick: every fish moves, then
// overlapping pairs are resolved and eaten fish are removed.
func (s *Simulation) Step() StepResult {
	fish := s.collect()

	// 1. Movement
	systems.MoveAll(fish, s.rng, s.bounds)

	// 2. Interaction (positions are post-movement)
	res := systems.ResolveInteractions(fish)

	// 3. Apply removals after the pass so indices stay stable during it
	if res.Kills() > 0 {
		s.removeEaten(res.Eaten)
	}

	s.tick++
	return StepResult{
		Tick:       s.tick,
		Predations: res.Predations,
		Evasions:   res.Evasions,
	}
}

// removeEaten drops eaten entities from the world and compacts order,
// keeping survivors in their original relative order.
func (s *Simulation) removeEaten(eaten []bool) {
	kept := s.order[:0]
	for i, e := range s.order {
		if eaten[i] {
			s.world.RemoveEntity(e)
			s.deadCount++
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so removed entities are not retained
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = ecs.Entity{}
	}
	s.order = kept
}

// collect resolves the ordered entity list to component pointers.
func (s *Simulation) collect() []*components.Fish {
	s.scratch = s.scratch[:0]
	for _, e := range s.order {
		s.scratch = append(s.scratch, s.fishMap.Get(e))
	}
	return s.scratch
}

// Fish returns the live fish in population order.
// The slice and pointers are invalidated by the next Step or Spawn.
func (s *Simulation) Fish() []*components.Fish {
	return s.collect()
}

// Len returns the number of live fish.
func (s *Simulation) Len() int {
	return len(s.order)
}

// DeadCount returns the total number of fish eaten so far.
func (s *Simulation) DeadCount() int {
	return s.deadCount
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int {
	return s.tick
}

// Bounds returns the box fish are clamped to.
func (s *Simulation) Bounds() r2.Box {
	return s.bounds
}
