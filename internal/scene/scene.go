// Package scene builds worlds from named generators. A scene name plus a
// seed fully determines the initial state, so runs are reproducible.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/kmuro/fieldsim/internal/body"
	"github.com/kmuro/fieldsim/internal/config"
	"github.com/kmuro/fieldsim/internal/field"
	"github.com/kmuro/fieldsim/internal/geom"
	"github.com/kmuro/fieldsim/internal/metrics"
	"github.com/kmuro/fieldsim/internal/sim"
	"github.com/kmuro/fieldsim/internal/world"
)

var palette = []string{
	"#e06c75", "#61afef", "#98c379", "#e5c07b",
	"#c678dd", "#56b6c2", "#d19a66", "#abb2bf",
}

// Builder populates a fresh world for one scene. Builders draw all
// randomness from rng so equal seeds give equal worlds.
type Builder func(cfg *config.Config, rng *rand.Rand, w *world.World)

type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}

	r.builders["random"] = buildRandom
	r.builders["grid"] = buildGrid
	r.builders["headon"] = buildHeadon
	r.builders["corner"] = buildCorner
	r.builders["orbit"] = buildOrbit
	r.builders["custom"] = buildCustom

	return r
}

func (r *Registry) Build(cfg *config.Config) (*world.World, error) {
	build, ok := r.builders[cfg.Scene]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", cfg.Scene)
	}

	w := world.New(geom.NewRect(0, 0, cfg.Arena.Width, cfg.Arena.Height))
	rng := rand.New(rand.NewSource(cfg.Seed))
	build(cfg, rng, w)
	return w, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMomentum(),
		metrics.NewMaxSpeed(),
	}
}

// addConfiguredFields installs the gravity field and any explicit field
// entries. Every builder calls it so config-level fields apply uniformly.
func addConfiguredFields(cfg *config.Config, w *world.World) {
	if cfg.Gravity != 0 {
		w.Registry.Add(field.NewUniform(geom.V(0, cfg.Gravity)))
	}
	for _, f := range cfg.Fields {
		switch f.Type {
		case "uniform":
			w.Registry.Add(field.NewUniform(geom.V(f.FX, f.FY)))
		case "radial":
			radial := field.NewRadial(geom.V(f.CX, f.CY), f.Strength)
			if f.MinDistance > 0 {
				radial.MinDistance = f.MinDistance
			}
			w.Registry.Add(radial)
		case "drag":
			w.Registry.Add(field.NewDrag(f.Coefficient))
		}
	}
}

func buildRandom(cfg *config.Config, rng *rand.Rand, w *world.World) {
	addConfiguredFields(cfg, w)

	bounds := w.Bounds
	for i := 0; i < cfg.Count; i++ {
		radius := 8 + rng.Float64()*12
		pos := geom.V(
			bounds.Left+radius+rng.Float64()*(bounds.Width()-2*radius),
			bounds.Top+radius+rng.Float64()*(bounds.Height()-2*radius),
		)
		vel := geom.V(rng.Float64()*400-200, rng.Float64()*400-200)
		mass := radius * radius / 100
		w.Registry.Add(body.New(pos, radius, palette[i%len(palette)], vel, mass, cfg.Restitution))
	}
}

func buildGrid(cfg *config.Config, rng *rand.Rand, w *world.World) {
	addConfiguredFields(cfg, w)

	cols := int(math.Ceil(math.Sqrt(float64(cfg.Count))))
	if cols == 0 {
		return
	}
	rows := (cfg.Count + cols - 1) / cols

	bounds := w.Bounds
	dx := bounds.Width() / float64(cols+1)
	dy := bounds.Height() / float64(rows+1)
	radius := math.Min(dx, dy) / 4

	for i := 0; i < cfg.Count; i++ {
		col := i % cols
		row := i / cols
		pos := geom.V(
			bounds.Left+dx*float64(col+1),
			bounds.Top+dy*float64(row+1),
		)
		w.Registry.Add(body.New(pos, radius, palette[i%len(palette)], geom.Vec2{}, 1, cfg.Restitution))
	}
}

func buildHeadon(cfg *config.Config, rng *rand.Rand, w *world.World) {
	addConfiguredFields(cfg, w)

	bounds := w.Bounds
	cy := bounds.Center().Y
	left := body.New(geom.V(bounds.Left+bounds.Width()/4, cy), 20, palette[0], geom.V(200, 0), 1, cfg.Restitution)
	right := body.New(geom.V(bounds.Right-bounds.Width()/4, cy), 20, palette[1], geom.V(-200, 0), 1, cfg.Restitution)
	w.Registry.Add(left)
	w.Registry.Add(right)
}

func buildCorner(cfg *config.Config, rng *rand.Rand, w *world.World) {
	addConfiguredFields(cfg, w)

	bounds := w.Bounds
	origin := geom.V(bounds.Left+bounds.Width()/8, bounds.Top+bounds.Height()/8)

	for i := 0; i < cfg.Count; i++ {
		radius := 6 + rng.Float64()*8
		jitter := geom.V(rng.Float64()*60-30, rng.Float64()*60-30)
		angle := rng.Float64() * math.Pi / 2
		speed := 150 + rng.Float64()*250
		vel := geom.V(math.Cos(angle)*speed, math.Sin(angle)*speed)
		w.Registry.Add(body.New(origin.Add(jitter), radius, palette[i%len(palette)], vel, 1, cfg.Restitution))
	}
}

func buildOrbit(cfg *config.Config, rng *rand.Rand, w *world.World) {
	addConfiguredFields(cfg, w)

	center := w.Bounds.Center()
	const strength = 4e6
	w.Registry.Add(field.NewRadial(center, strength))

	// immovable anchor marks the attractor visually
	w.Registry.Add(body.New(center, 15, palette[3], geom.Vec2{}, 0, 1))

	for i := 0; i < cfg.Count; i++ {
		dist := 80 + rng.Float64()*120
		angle := rng.Float64() * 2 * math.Pi
		pos := center.Add(geom.V(math.Cos(angle)*dist, math.Sin(angle)*dist))

		// tangential speed for a circular orbit at this distance
		speed := math.Sqrt(strength / dist)
		vel := geom.V(-math.Sin(angle)*speed, math.Cos(angle)*speed)
		w.Registry.Add(body.New(pos, 6, palette[i%len(palette)], vel, 1, cfg.Restitution))
	}
}

func buildCustom(cfg *config.Config, rng *rand.Rand, w *world.World) {
	addConfiguredFields(cfg, w)

	for i, b := range cfg.Balls {
		color := b.Color
		if color == "" {
			color = palette[i%len(palette)]
		}
		w.Registry.Add(body.New(geom.V(b.X, b.Y), b.Radius, color, geom.V(b.VX, b.VY), b.Mass, b.Restitution))
	}
}
