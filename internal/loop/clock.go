package loop

import "time"

// TimeSource provides wall-clock time to the Clock.
type TimeSource interface {
	Now() time.Time
}

// SystemTimeSource reads the real wall clock.
type SystemTimeSource struct{}

// Now returns time.Now().
func (SystemTimeSource) Now() time.Time {
	return time.Now()
}

// Clock turns wall-clock gaps into clamped simulation deltas.
// Simulation time only ever grows by the deltas it hands out, so a long
// stall (a suspended process, a backgrounded window) costs at most MaxStep.
type Clock struct {
	source  TimeSource
	maxStep time.Duration
	last    time.Time
	simTime time.Duration
}

// NewClock creates a clock seeded with the source's current time,
// so the first Tick returns roughly zero.
func NewClock(source TimeSource, maxStep time.Duration) *Clock {
	if source == nil {
		source = SystemTimeSource{}
	}
	return &Clock{
		source:  source,
		maxStep: maxStep,
		last:    source.Now(),
	}
}

// Reset re-seeds the last timestamp without touching simulation time.
func (c *Clock) Reset() {
	c.last = c.source.Now()
}

// Tick returns the time since the previous tick, clamped to [0, maxStep],
// and adds it to the simulation time.
func (c *Clock) Tick() time.Duration {
	now := c.source.Now()
	delta := now.Sub(c.last)
	c.last = now

	if delta < 0 {
		delta = 0
	}
	if delta > c.maxStep {
		delta = c.maxStep
	}
	c.simTime += delta
	return delta
}

// SimulationTime returns the sum of every delta returned so far.
func (c *Clock) SimulationTime() time.Duration {
	return c.simTime
}

// MaxStep returns the per-tick clamp.
func (c *Clock) MaxStep() time.Duration {
	return c.maxStep
}
