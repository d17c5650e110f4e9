package object

import (
	"math/rand"
	"time"
)

// Spawner allows entities to be added to the world.
type Spawner interface {
	Spawn(e Entity)
}

// IntervalSpawner adds one entity per interval of simulated time,
// the first one on the first update.
type IntervalSpawner struct {
	Interval time.Duration

	// New builds the entity to place at (x, y).
	New func(x, y float64) Entity

	last    time.Duration
	started bool
}

// NewIntervalSpawner creates a spawner for the given interval and factory.
func NewIntervalSpawner(interval time.Duration, factory func(x, y float64) Entity) *IntervalSpawner {
	return &IntervalSpawner{
		Interval: interval,
		New:      factory,
	}
}

// Update spawns at a uniformly random playfield position when the interval
// has elapsed since the last spawn. now is the accumulated simulation time.
// Returns true when an entity was spawned.
func (s *IntervalSpawner) Update(now time.Duration, screen Screen, rng *rand.Rand, sp Spawner) bool {
	if s.New == nil || sp == nil {
		return false
	}
	if s.started && now-s.last < s.Interval {
		return false
	}

	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}
	x := float() * float64(screen.Width)
	y := float() * float64(screen.Height)

	sp.Spawn(s.New(x, y))
	s.last = now
	s.started = true
	return true
}
