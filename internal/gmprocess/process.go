// Package gmprocess implements a bounded first-order Gauss-Markov process:
// a scalar whose rate of change is a linear decay plus Gaussian white noise,
// clamped to a configured envelope after every step.
//
// Mean is the reset point applied on Configure; subsequent drift is governed
// only by Mu and the noise term, with the clamp keeping the value inside
// [Min, Max]. This models bounded drift rather than true mean reversion.
package gmprocess

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Model holds the parameters of one process.
type Model struct {
	Mean     float64 `json:"mean" yaml:"mean"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	NoiseAmp float64 `json:"noise_amp" yaml:"noise_amp"`
	Mu       float64 `json:"mu" yaml:"mu"`
}

// Validate reports whether the parameter set is acceptable.
func (m Model) Validate() error {
	for name, v := range map[string]float64{
		"mean": m.Mean, "min": m.Min, "max": m.Max,
		"noise_amp": m.NoiseAmp, "mu": m.Mu,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, name)
		}
	}
	if m.Min > m.Max {
		return fmt.Errorf("%w: min %g > max %g", ErrInvalidParameter, m.Min, m.Max)
	}
	if m.Mean < m.Min || m.Mean > m.Max {
		return fmt.Errorf("%w: mean %g outside [%g, %g]", ErrInvalidParameter, m.Mean, m.Min, m.Max)
	}
	if m.NoiseAmp < 0 {
		return fmt.Errorf("%w: noise_amp %g < 0", ErrInvalidParameter, m.NoiseAmp)
	}
	if m.Mu < 0 {
		return fmt.Errorf("%w: mu %g < 0", ErrInvalidParameter, m.Mu)
	}
	return nil
}

// Process is one Gauss-Markov process instance. All methods are safe for
// concurrent use; Configure and Update take the write lock for their full
// body so a reader never observes a half-applied parameter set.
type Process struct {
	mu       sync.RWMutex
	model    Model
	value    float64
	lastTime float64
	primed   bool
	rng      *rand.Rand
}

// New creates a process with the given parameters and noise seed. The value
// starts at the model mean.
func New(m Model, seed uint64) (*Process, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Process{
		model: m,
		value: m.Mean,
		rng:   rand.New(rand.NewPCG(seed, seed+1)),
	}, nil
}

// Configure atomically replaces the parameter set, resets the value to the
// new mean and restarts the time base, so the first Update after a
// reconfiguration integrates over a zero step. On error the previous
// parameters remain in effect.
func (p *Process) Configure(m Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.model = m
	p.value = m.Mean
	p.primed = false
	return nil
}

// Update advances the process to time t (seconds) and returns the new value.
// A zero or negative step is tolerated and leaves the value essentially
// unchanged; it is never an error.
func (p *Process) Update(t float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	dt := 0.0
	if p.primed {
		dt = t - p.lastTime
	}
	w := p.rng.NormFloat64() * p.model.NoiseAmp
	p.value += dt * (-p.model.Mu*p.value + w)
	p.value = clamp(p.value, p.model.Min, p.model.Max)
	p.lastTime = t
	p.primed = true
	return p.value
}

// Read returns a snapshot of the current parameter set.
func (p *Process) Read() Model {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// Value returns the current process value.
func (p *Process) Value() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
