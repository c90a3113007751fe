package gmprocess

import (
	"errors"
	"math"
	"testing"
)

func TestConfigureReadRoundtrip(t *testing.T) {
	p, err := New(Model{Mean: 0, Min: -1, Max: 1, NoiseAmp: 0.1, Mu: 0.5}, 1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	m := Model{Mean: 0.6, Min: 0.55, Max: 0.65, NoiseAmp: 0.005, Mu: 0.05}
	if err := p.Configure(m); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	if got := p.Read(); got != m {
		t.Errorf("read returned %+v, want %+v", got, m)
	}
	if p.Value() != m.Mean {
		t.Errorf("expected value reset to mean %g, got %g", m.Mean, p.Value())
	}
}

func TestConfigureInvalid(t *testing.T) {
	tests := []struct {
		name string
		m    Model
	}{
		{"inverted bounds", Model{Mean: 0, Min: 1, Max: -1, NoiseAmp: 0.1, Mu: 0.1}},
		{"negative noise", Model{Mean: 0, Min: -1, Max: 1, NoiseAmp: -0.1, Mu: 0.1}},
		{"negative mu", Model{Mean: 0, Min: -1, Max: 1, NoiseAmp: 0.1, Mu: -0.1}},
		{"mean below min", Model{Mean: -2, Min: -1, Max: 1, NoiseAmp: 0.1, Mu: 0.1}},
		{"nan mean", Model{Mean: math.NaN(), Min: -1, Max: 1, NoiseAmp: 0.1, Mu: 0.1}},
		{"inf max", Model{Mean: 0, Min: -1, Max: math.Inf(1), NoiseAmp: 0.1, Mu: 0.1}},
	}

	prev := Model{Mean: 0.1, Min: -1, Max: 1, NoiseAmp: 0.2, Mu: 0.3}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(prev, 1)
			if err != nil {
				t.Fatalf("new failed: %v", err)
			}
			err = p.Configure(tt.m)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if got := p.Read(); got != prev {
				t.Errorf("parameters changed after failed configure: %+v", got)
			}
		})
	}
}

func TestUpdateStaysInBounds(t *testing.T) {
	m := Model{Mean: 0.5, Min: 0.4, Max: 0.6, NoiseAmp: 5.0, Mu: 0.1}
	p, err := New(m, 42)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	for i := 0; i < 10000; i++ {
		v := p.Update(float64(i) * 0.1)
		if v < m.Min || v > m.Max {
			t.Fatalf("step %d: value %g outside [%g, %g]", i, v, m.Min, m.Max)
		}
	}
}

func TestUpdateZeroStep(t *testing.T) {
	p, err := New(Model{Mean: 0.3, Min: 0, Max: 1, NoiseAmp: 2.0, Mu: 0.5}, 7)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// First update after construction integrates over a zero step.
	if v := p.Update(100.0); v != 0.3 {
		t.Errorf("expected value unchanged at dt=0, got %g", v)
	}
	// Same timestamp again: still no drift.
	if v := p.Update(100.0); v != 0.3 {
		t.Errorf("expected value unchanged at repeated timestamp, got %g", v)
	}
}

func TestUpdateNonMonotonicClock(t *testing.T) {
	m := Model{Mean: 0.5, Min: 0, Max: 1, NoiseAmp: 0, Mu: 0.1}
	p, err := New(m, 3)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	p.Update(10.0)
	v := p.Update(9.0) // clock went backwards
	if v < m.Min || v > m.Max {
		t.Errorf("value %g escaped bounds on negative step", v)
	}
}

func TestUpdateDecay(t *testing.T) {
	// With zero noise the discrete step is value *= (1 - mu*dt).
	m := Model{Mean: 0.8, Min: 0, Max: 1, NoiseAmp: 0, Mu: 0.5}
	p, err := New(m, 1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	p.Update(0)
	v := p.Update(0.1)
	want := 0.8 * (1 - 0.5*0.1)
	if math.Abs(v-want) > 1e-12 {
		t.Errorf("expected %g after one decay step, got %g", want, v)
	}
}

func TestConfigureResetsTimeBase(t *testing.T) {
	m := Model{Mean: 0.5, Min: 0, Max: 1, NoiseAmp: 0, Mu: 1.0}
	p, err := New(m, 1)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	p.Update(0)
	p.Update(50.0)
	if err := p.Configure(m); err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	// A large wall-clock gap before the first post-configure update must not
	// produce a large integration step.
	if v := p.Update(200.0); v != m.Mean {
		t.Errorf("expected clean restart at mean %g, got %g", m.Mean, v)
	}
}
