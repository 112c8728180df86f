package sim

import (
	"github.com/kmuro/fieldsim/internal/world"
)

// BodyState is a per-ball snapshot taken once per recorded frame.
type BodyState struct {
	X, Y   float64
	VX, VY float64
}

// Frame holds one BodyState per mover, in registry order.
type Frame []BodyState

// Snapshot captures the current state of every mover in the world.
func Snapshot(w *world.World) Frame {
	movers := w.Registry.Movers()
	f := make(Frame, len(movers))
	for i, m := range movers {
		p, v := m.Position(), m.Velocity()
		f[i] = BodyState{X: p.X, Y: p.Y, VX: v.X, VY: v.Y}
	}
	return f
}

// Metric accumulates a scalar over the course of a run.
type Metric interface {
	Name() string
	Observe(movers []world.Mover, t float64)
	Value() float64
	Reset()
}

// Observer sees the world before each step. Observers must not mutate it.
type Observer interface {
	OnStep(w *world.World, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64

	// ValidateState aborts the run when any mover's position or velocity
	// picks up a NaN or Inf component.
	ValidateState bool

	// RecordEvery keeps one frame out of every N steps. Zero records all.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10,
		ValidateState: true,
	}
}

type Result struct {
	Times      []float64
	Frames     []Frame
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
}
