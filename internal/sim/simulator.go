package sim

import (
	"context"
	"fmt"

	"github.com/kmuro/fieldsim/internal/world"
)

// Simulator drives a world through fixed-dt frames, recording snapshots
// and feeding metrics and observers along the way. A Simulator owns its
// world for the duration of a run; reuse the same world for a second run
// only if picking up from the final state is what you want.
type Simulator struct {
	world     *world.World
	metrics   []Metric
	observers []Observer
}

func New(w *world.World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) World() *world.World { return s.world }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	return s.RunConfig(ctx, DefaultConfig())
}

func (s *Simulator) RunConfig(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Times = append(result.Times, t)
	result.Frames = append(result.Frames, Snapshot(s.world))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		movers := s.world.Registry.Movers()
		for _, m := range s.metrics {
			m.Observe(movers, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.world, t)
		}

		s.world.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !stateValid(s.world) {
			err := &StepError{Step: i, Time: t, Wrapped: ErrDiverged}
			result.Errors = append(result.Errors, err)
			break
		}

		if cfg.RecordEvery <= 1 || (i+1)%cfg.RecordEvery == 0 {
			result.Times = append(result.Times, t)
			result.Frames = append(result.Frames, Snapshot(s.world))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the world and hands it to the callback once per
// frame, without recording anything. The callback returning false stops
// the run early without error. This is the path the live view uses.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(w *world.World, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.world, t) {
			return nil
		}

		s.world.Step(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !stateValid(s.world) {
			return &StepError{Time: t, Wrapped: ErrDiverged}
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

func stateValid(w *world.World) bool {
	for _, m := range w.Registry.Movers() {
		if !m.Position().IsValid() || !m.Velocity().IsValid() {
			return false
		}
	}
	return true
}
