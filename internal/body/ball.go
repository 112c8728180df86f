// Package body implements the circular physics body: force accumulation,
// pairwise circle-circle collision with restitution, semi-implicit Euler
// integration, and arena boundary bounces.
package body

import (
	"github.com/kmuro/fieldsim/internal/geom"
	"github.com/kmuro/fieldsim/internal/world"
)

// restThreshold is the per-axis velocity magnitude below which a boundary
// bounce is damped to exactly zero, so bodies settle instead of jittering.
const restThreshold = 0.1

// Ball is a circular body driven by force fields and resolved against other
// balls. Collision effects are recorded into pending accumulators during
// detection and consumed once during integration, so simultaneous contacts
// accumulate before any of them is applied.
type Ball struct {
	pos         geom.Vec2
	vel         geom.Vec2
	mass        float64
	restitution float64
	shape       geom.Circle
	color       string

	netForce          geom.Vec2
	pendingVelocity   geom.Vec2
	pendingCorrection geom.Vec2
}

// New creates a ball at pos. Restitution is the fraction of approach
// velocity kept after a bounce: 1 is perfectly elastic, 0 perfectly
// inelastic. A mass of zero or less makes the ball immune to field forces
// while still receiving collision corrections.
func New(pos geom.Vec2, radius float64, color string, vel geom.Vec2, mass, restitution float64) *Ball {
	return &Ball{
		pos:         pos,
		vel:         vel,
		mass:        mass,
		restitution: restitution,
		shape:       geom.NewCircle(radius),
		color:       color,
	}
}

func (b *Ball) Position() geom.Vec2 { return b.pos }
func (b *Ball) Velocity() geom.Vec2 { return b.vel }
func (b *Ball) Mass() float64       { return b.mass }
func (b *Ball) Restitution() float64 {
	return b.restitution
}
func (b *Ball) Radius() float64 { return b.shape.Radius }
func (b *Ball) Color() string   { return b.color }

// CollisionShape implements world.Collidable.
func (b *Ball) CollisionShape() geom.Circle { return b.shape }

// SetVelocity replaces the current velocity. Scene builders use this; the
// physics step never does.
func (b *Ball) SetVelocity(v geom.Vec2) { b.vel = v }

// ApplyForce adds force into the per-step accumulator. Velocity is not
// touched until Integrate, so every field present this step contributes to
// the same acceleration.
func (b *Ball) ApplyForce(force geom.Vec2) {
	b.netForce = b.netForce.Add(force)
}

// invMass returns 1/mass, treating non-positive mass as immovable.
func (b *Ball) invMass() float64 {
	if b.mass > 0 {
		return 1 / b.mass
	}
	return 0
}

// CollectForces queries every force source in the registry and accumulates
// its contribution.
func (b *Ball) CollectForces(w *world.World) {
	for _, e := range w.Registry.Entities() {
		if e == world.Entity(b) {
			continue
		}
		if src, ok := e.(world.ForceSource); ok {
			b.ApplyForce(src.AppliedForce(b))
		}
	}
}

// DetectCollisions resets the pending accumulators and runs the pairwise
// overlap pass against every other collidable in the registry. Only other
// *Ball entities are resolved; collidables of other kinds are skipped.
// Effects are recorded into pending state on both sides, not applied.
func (b *Ball) DetectCollisions(w *world.World) {
	b.pendingVelocity = geom.Vec2{}
	b.pendingCorrection = geom.Vec2{}

	for _, e := range w.Registry.Entities() {
		if e == world.Entity(b) {
			continue
		}
		if _, ok := e.(world.Collidable); !ok {
			continue
		}
		other, ok := e.(*Ball)
		if !ok {
			continue
		}
		if b.shape.Intersects(other.shape, b.pos, other.pos) {
			b.resolve(other)
		}
	}
}

// resolve records positional correction and impulse for one overlapping
// pair. Each degenerate case is a silent skip for this pair this step:
// coincident centers have no separation direction, a pair of immovable
// bodies has no finite impulse, and a pair already separating along the
// normal needs none.
func (b *Ball) resolve(other *Ball) {
	distance := b.pos.Distance(other.pos)
	if distance == 0 {
		return
	}

	overlap := (b.shape.Radius + other.shape.Radius) - distance
	dir := b.pos.Sub(other.pos).Normalize()

	half := dir.Scale(overlap / 2)
	b.pendingCorrection = b.pendingCorrection.Add(half)
	other.pendingCorrection = other.pendingCorrection.Sub(half)

	velAlongNormal := b.vel.Sub(other.vel).Dot(dir)
	if velAlongNormal >= 0 {
		return
	}

	invSum := b.invMass() + other.invMass()
	if invSum == 0 {
		return
	}

	e := min(b.restitution, other.restitution)
	j := -(1 + e) * velAlongNormal / invSum

	impulse := dir.Scale(j)
	b.pendingVelocity = b.pendingVelocity.Add(impulse.Scale(b.invMass()))
	other.pendingVelocity = other.pendingVelocity.Sub(impulse.Scale(other.invMass()))
}

// Integrate applies the accumulated force as acceleration over dt, folds in
// pending collision state, and advances position. Collision velocity is an
// instantaneous impulse and is not scaled by dt.
func (b *Ball) Integrate(dt float64) {
	if b.mass > 0 {
		b.vel = b.vel.Add(b.netForce.Scale(dt / b.mass))
	}
	b.netForce = geom.Vec2{}

	b.vel = b.vel.Add(b.pendingVelocity)
	b.pos = b.pos.Add(b.pendingCorrection)
	b.pos = b.pos.Add(b.vel.Scale(dt))
}

// constrain clamps the ball inside bounds, reflecting each axis's velocity
// with this ball's restitution. Both axes are checked unconditionally so a
// corner hit corrects both in the same step.
func (b *Ball) constrain(bounds geom.Rect) {
	if b.pos.X-b.shape.Radius < bounds.Left {
		b.pos.X = bounds.Left + b.shape.Radius
		b.vel.X = b.damp(b.vel.X * -b.restitution)
	}
	if b.pos.X+b.shape.Radius > bounds.Right {
		b.pos.X = bounds.Right - b.shape.Radius
		b.vel.X = b.damp(b.vel.X * -b.restitution)
	}
	if b.pos.Y-b.shape.Radius < bounds.Top {
		b.pos.Y = bounds.Top + b.shape.Radius
		b.vel.Y = b.damp(b.vel.Y * -b.restitution)
	}
	if b.pos.Y+b.shape.Radius > bounds.Bottom {
		b.pos.Y = bounds.Bottom - b.shape.Radius
		b.vel.Y = b.damp(b.vel.Y * -b.restitution)
	}
}

func (b *Ball) damp(v float64) float64 {
	if v < restThreshold && v > -restThreshold {
		return 0
	}
	return v
}

// Update runs the full per-frame pipeline: force accumulation, collision
// detection into pending state, integration, boundary clamp. Detection
// completes over the whole registry before any pending state is consumed.
func (b *Ball) Update(dt float64, w *world.World) {
	b.CollectForces(w)
	b.DetectCollisions(w)
	b.Integrate(dt)
	b.constrain(w.Bounds)
}
