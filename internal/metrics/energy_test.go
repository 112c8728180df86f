package metrics

import (
	"math"
	"testing"

	"github.com/kmuro/fieldsim/internal/geom"
	"github.com/kmuro/fieldsim/internal/world"
)

type stubMover struct {
	vel  geom.Vec2
	mass float64
}

func (s *stubMover) Position() geom.Vec2 { return geom.Vec2{} }
func (s *stubMover) Velocity() geom.Vec2 { return s.vel }
func (s *stubMover) Mass() float64       { return s.mass }

func movers(ms ...*stubMover) []world.Mover {
	out := make([]world.Mover, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func TestKineticOf(t *testing.T) {
	tests := []struct {
		name     string
		movers   []world.Mover
		expected float64
	}{
		{"empty", nil, 0},
		{"single", movers(&stubMover{vel: geom.V(3, 4), mass: 2}), 25},
		{"sum", movers(
			&stubMover{vel: geom.V(1, 0), mass: 2},
			&stubMover{vel: geom.V(0, 2), mass: 1},
		), 3},
		{"immovable excluded", movers(&stubMover{vel: geom.V(10, 0), mass: 0}), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KineticOf(tt.movers); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("KineticOf = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKineticEnergyMeanAndReset(t *testing.T) {
	m := NewKineticEnergy()

	m.Observe(movers(&stubMover{vel: geom.V(2, 0), mass: 1}), 0) // ke 2
	m.Observe(movers(&stubMover{vel: geom.V(4, 0), mass: 1}), 1) // ke 8

	if got := m.Value(); math.Abs(got-5) > 1e-12 {
		t.Errorf("mean energy = %v, want 5", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	d := NewEnergyDrift()

	fast := movers(&stubMover{vel: geom.V(2, 0), mass: 1}) // ke 2
	slow := movers(&stubMover{vel: geom.V(1, 0), mass: 1}) // ke 0.5

	d.Observe(fast, 0)
	if d.Value() != 0 {
		t.Errorf("drift after first sample = %v, want 0", d.Value())
	}

	d.Observe(slow, 1)
	if got := d.Value(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("drift = %v, want 0.75", got)
	}

	// drift tracks the worst excursion, not the latest
	d.Observe(fast, 2)
	if got := d.Value(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("drift after recovery = %v, want 0.75", got)
	}
}

func TestMomentum(t *testing.T) {
	// opposing momenta cancel
	pair := movers(
		&stubMover{vel: geom.V(3, 0), mass: 1},
		&stubMover{vel: geom.V(-3, 0), mass: 1},
	)
	if got := MomentumOf(pair); !got.IsZero() {
		t.Errorf("opposing momenta = %v, want zero", got)
	}

	m := NewMomentum()
	m.Observe(movers(&stubMover{vel: geom.V(3, 4), mass: 2}), 0)
	if got := m.Value(); math.Abs(got-10) > 1e-12 {
		t.Errorf("mean |momentum| = %v, want 10", got)
	}
}

func TestMaxSpeed(t *testing.T) {
	s := NewMaxSpeed()

	s.Observe(movers(&stubMover{vel: geom.V(3, 4), mass: 1}), 0)
	s.Observe(movers(&stubMover{vel: geom.V(1, 0), mass: 1}), 1)

	if got := s.Value(); math.Abs(got-5) > 1e-12 {
		t.Errorf("max speed = %v, want 5", got)
	}

	s.Reset()
	if s.Value() != 0 {
		t.Error("expected zero max speed after reset")
	}
}

func TestCalmness(t *testing.T) {
	c := NewCalmness(2)

	c.Observe(movers(&stubMover{vel: geom.V(1, 0), mass: 1}), 0)
	c.Observe(movers(&stubMover{vel: geom.V(5, 0), mass: 1}), 1)
	c.Observe(movers(&stubMover{vel: geom.V(0, 1), mass: 1}), 2)
	c.Observe(movers(&stubMover{vel: geom.V(0, 9), mass: 1}), 3)

	if got := c.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("calmness = %v, want 0.5", got)
	}

	fresh := NewCalmness(2)
	if fresh.Value() != 1.0 {
		t.Error("calmness with no samples should be 1.0")
	}
}
