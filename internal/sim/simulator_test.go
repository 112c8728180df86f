package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kmuro/fieldsim/internal/body"
	"github.com/kmuro/fieldsim/internal/field"
	"github.com/kmuro/fieldsim/internal/geom"
	"github.com/kmuro/fieldsim/internal/world"
)

func fallingBallWorld() *world.World {
	w := world.New(geom.NewRect(0, 0, 1000, 1000))
	w.Registry.Add(body.New(geom.V(500, 100), 5, "#ffffff", geom.Vec2{}, 1, 0.8))
	w.Registry.Add(field.NewUniform(geom.V(0, 50)))
	return w
}

func TestSimulatorRun(t *testing.T) {
	s := New(fallingBallWorld())

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := s.RunConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	first := result.Frames[0][0]
	last := result.Frames[len(result.Frames)-1][0]
	if last.Y <= first.Y {
		t.Errorf("ball did not fall: y went from %v to %v", first.Y, last.Y)
	}
	if last.VY <= 0 {
		t.Errorf("expected downward velocity, got %v", last.VY)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(fallingBallWorld())
			_, err := s.RunConfig(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                            { return "count" }
func (c *countingMetric) Observe(movers []world.Mover, t float64) { c.count++ }
func (c *countingMetric) Value() float64                          { return float64(c.count) }
func (c *countingMetric) Reset()                                  { c.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New(fallingBallWorld())
	metric := &countingMetric{}
	s.AddMetric(metric)

	result, err := s.RunConfig(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["count"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

func TestSimulatorCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(fallingBallWorld())
	result, err := s.RunConfig(ctx, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || len(result.Frames) != 1 {
		t.Error("expected the initial frame in the partial result")
	}
}

// nanEntity poisons its own position after a set number of steps.
type nanEntity struct {
	stepsLeft int
	pos       geom.Vec2
}

func (n *nanEntity) Update(dt float64, w *world.World) {
	n.stepsLeft--
	if n.stepsLeft <= 0 {
		n.pos = geom.V(math.NaN(), 0)
	}
}
func (n *nanEntity) Position() geom.Vec2 { return n.pos }
func (n *nanEntity) Velocity() geom.Vec2 { return geom.Vec2{} }
func (n *nanEntity) Mass() float64       { return 1 }

func TestSimulatorDivergenceAborts(t *testing.T) {
	w := world.New(geom.NewRect(0, 0, 100, 100))
	w.Registry.Add(&nanEntity{stepsLeft: 3, pos: geom.V(50, 50)})

	s := New(w)
	result, err := s.RunConfig(context.Background(), Config{Dt: 0.1, Duration: 10, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrDiverged) {
		t.Errorf("expected ErrDiverged, got %v", result.Errors[0])
	}
	if result.StepsTaken != 3 {
		t.Errorf("expected run aborted at step 3, got %d steps", result.StepsTaken)
	}
}

func TestRunWithCallbackEarlyStop(t *testing.T) {
	s := New(fallingBallWorld())

	calls := 0
	err := s.RunWithCallback(context.Background(), Config{Dt: 0.1, Duration: 10}, func(w *world.World, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callback invocations, got %d", calls)
	}
}

func TestRecordEveryThinsFrames(t *testing.T) {
	s := New(fallingBallWorld())

	result, err := s.RunConfig(context.Background(), Config{Dt: 0.1, Duration: 1.0, RecordEvery: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// initial frame plus steps 5 and 10
	if len(result.Frames) != 3 {
		t.Errorf("expected 3 frames, got %d", len(result.Frames))
	}
	if result.StepsTaken != 10 {
		t.Errorf("thinning must not change the step count, got %d", result.StepsTaken)
	}
}

func TestEnsembleRunsAreIndependent(t *testing.T) {
	factory := func(seed int64) *world.World {
		w := world.New(geom.NewRect(0, 0, 1000, 1000))
		w.Registry.Add(body.New(geom.V(500, 500), 5, "#ffffff", geom.V(float64(seed), 0), 1, 0.8))
		return w
	}

	e := NewEnsemble(factory, 4, 1).WithMetrics(func() []Metric {
		return []Metric{&countingMetric{}}
	})

	results, err := e.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	for i, r := range results {
		last := r.Frames[len(r.Frames)-1][0]
		want := 500 + float64(i+1) // seed i+1, unit time
		if math.Abs(last.X-want) > 1e-9 {
			t.Errorf("run %d final x = %v, want %v", i, last.X, want)
		}
		if r.Metrics["count"] != 10 {
			t.Errorf("run %d metric count = %v, want 10", i, r.Metrics["count"])
		}
	}
}
