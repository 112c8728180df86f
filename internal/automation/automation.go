// Package automation runs scripted sequences of simulations described
// in YAML scenario files.
package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kmuro/fieldsim/internal/config"
	"github.com/kmuro/fieldsim/internal/scene"
	"github.com/kmuro/fieldsim/internal/sim"
	"github.com/kmuro/fieldsim/internal/storage"
)

// Scenario is a named sequence of simulation runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep describes one run. Zero-valued fields fall back to the
// preset (when given) or the global defaults.
type ScenarioStep struct {
	Scene       string  `yaml:"scene"`
	Preset      string  `yaml:"preset"`
	Duration    float64 `yaml:"duration"`
	Dt          float64 `yaml:"dt"`
	Seed        int64   `yaml:"seed"`
	Count       int     `yaml:"count"`
	Restitution float64 `yaml:"restitution"`
	Gravity     float64 `yaml:"gravity"`
	Save        bool    `yaml:"save"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// StepResult pairs a step with its outcome. RunID is empty unless the
// step asked to be saved.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	RunID  string
	Result *sim.Result
}

// RunScenario executes every step in order. Pass a nil store to skip
// persistence even for steps marked save.
func RunScenario(ctx context.Context, scenario *Scenario, registry *scene.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("step %d/%d: %s\n", i+1, len(scenario.Steps), step.Scene)

		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		w, err := registry.Build(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		balls := storage.DescribeBalls(w)

		s := sim.New(w)
		for _, m := range registry.DefaultMetrics() {
			s.AddMetric(m)
		}

		result, err := s.RunConfig(ctx, sim.Config{
			Dt:            cfg.Dt,
			Duration:      cfg.Duration,
			Seed:          cfg.Seed,
			ValidateState: true,
		})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		stepResult := StepResult{Step: step, Config: cfg, Result: result}

		if step.Save && store != nil {
			info := storage.RunInfo{
				Scene:       cfg.Scene,
				Dt:          cfg.Dt,
				Duration:    cfg.Duration,
				Seed:        cfg.Seed,
				ArenaWidth:  cfg.Arena.Width,
				ArenaHeight: cfg.Arena.Height,
				Balls:       balls,
			}
			runID, err := store.Save(info, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			stepResult.RunID = runID
		}

		results = append(results, stepResult)
	}

	return results, nil
}

func stepConfig(step ScenarioStep) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if step.Preset != "" {
		p := config.GetPreset(step.Scene, step.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scene %q", step.Preset, step.Scene)
		}
		*cfg = *p
		if cfg.FPS == 0 {
			cfg.FPS = config.DefaultFPS
		}
	}

	cfg.Scene = step.Scene
	if step.Duration > 0 {
		cfg.Duration = step.Duration
	}
	if step.Dt > 0 {
		cfg.Dt = step.Dt
	}
	if step.Count > 0 {
		cfg.Count = step.Count
	}
	if step.Restitution > 0 {
		cfg.Restitution = step.Restitution
	}
	if step.Gravity != 0 {
		cfg.Gravity = step.Gravity
	}

	cfg.Seed = step.Seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
