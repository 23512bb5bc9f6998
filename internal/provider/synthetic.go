package provider

import (
	"math"
	"math/rand"

	"github.com/jonboulle/clockwork"
)

// Oscillator produces the synthetic percent moves used on simulated paths:
// a slow wall-clock sine wave plus bounded random jitter, phase-shifted per
// ticker so simulated quotes don't move in lockstep. The output is visually
// plausible but clearly non-authoritative.
type Oscillator struct {
	clock clockwork.Clock
	rand  func() float64
}

// NewOscillator uses the real clock and math/rand jitter.
func NewOscillator() *Oscillator {
	return &Oscillator{clock: clockwork.NewRealClock(), rand: rand.Float64}
}

// NewOscillatorWith injects the time source and jitter source so tests can
// assert exact fallback values.
func NewOscillatorWith(clock clockwork.Clock, random func() float64) *Oscillator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if random == nil {
		random = rand.Float64
	}
	return &Oscillator{clock: clock, rand: random}
}

// Shift returns a percent move in roughly [-0.9, +1.08]. basis is the
// per-ticker phase offset (the fallback base price).
func (o *Oscillator) Shift(basis float64) float64 {
	ms := float64(o.clock.Now().UnixMilli())
	return (math.Sin(ms/60000+basis) + o.rand()*0.2) * 0.9
}
