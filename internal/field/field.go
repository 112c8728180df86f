// Package field provides the force sources that drive balls: uniform
// fields, radial attractors and repellers, and linear drag. Every source is
// a pure function of the target's state; fields never mutate what they act
// on, and they carry no per-step state of their own.
package field

import (
	"github.com/kmuro/fieldsim/internal/geom"
	"github.com/kmuro/fieldsim/internal/world"
)

// Uniform applies the same force to every mover, independent of position.
// Gravity is a Uniform with Force = (0, g*scale) in arena coordinates.
type Uniform struct {
	Force geom.Vec2
}

func NewUniform(force geom.Vec2) *Uniform {
	return &Uniform{Force: force}
}

func (u *Uniform) AppliedForce(m world.Mover) geom.Vec2 {
	return u.Force
}

func (u *Uniform) Update(dt float64, w *world.World) {}

// Radial pulls movers toward Center with strength falling off as 1/d².
// A negative Strength repels. MinDistance caps the falloff so movers
// passing through the center do not receive unbounded force.
type Radial struct {
	Center      geom.Vec2
	Strength    float64
	MinDistance float64
}

func NewRadial(center geom.Vec2, strength float64) *Radial {
	return &Radial{Center: center, Strength: strength, MinDistance: 1}
}

func (r *Radial) AppliedForce(m world.Mover) geom.Vec2 {
	offset := r.Center.Sub(m.Position())
	d := offset.Length()
	if d == 0 {
		// direction undefined at the exact center
		return geom.Vec2{}
	}
	if d < r.MinDistance {
		d = r.MinDistance
	}
	return offset.Normalize().Scale(r.Strength / (d * d))
}

func (r *Radial) Update(dt float64, w *world.World) {}

// Drag opposes the mover's velocity with force -Coefficient * v.
type Drag struct {
	Coefficient float64
}

func NewDrag(coefficient float64) *Drag {
	return &Drag{Coefficient: coefficient}
}

func (d *Drag) AppliedForce(m world.Mover) geom.Vec2 {
	return m.Velocity().Scale(-d.Coefficient)
}

func (d *Drag) Update(dt float64, w *world.World) {}
