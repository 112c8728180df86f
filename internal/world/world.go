// Package world holds the entity registry and the capability interfaces the
// physics step is written against.
//
// Entities gain behavior by implementing capability interfaces:
//
//   - [Entity]: stepped once per frame
//   - [Mover]: exposes kinematic state to force sources
//   - [ForceSource]: contributes a force to a Mover each step
//   - [Collidable]: participates in collision detection
//
// Registry iteration order is insertion order and is load-bearing: bodies
// update sequentially, and a body's collision pass mutates the pending state
// of bodies that may or may not have run their own step this frame. The
// frame outcome therefore depends on insertion order. This matches the
// original sandbox behavior and is deliberate; callers that need
// reproducible runs get it by building the world in a fixed order.
package world

import "github.com/kmuro/fieldsim/internal/geom"

// Entity is anything that lives in the registry and is stepped once per
// frame. Force fields implement this with a no-op.
type Entity interface {
	Update(dt float64, w *World)
}

// Mover exposes the kinematic state a force source may read. Force sources
// must not mutate the mover; forces flow back through the simulation step.
type Mover interface {
	Position() geom.Vec2
	Velocity() geom.Vec2
	Mass() float64
}

// ForceSource contributes a force vector to a mover, as a pure function of
// the mover's current state.
type ForceSource interface {
	AppliedForce(m Mover) geom.Vec2
}

// Collidable exposes a collision shape. Resolution itself is type-gated:
// a body only resolves against other bodies of its own concrete type.
type Collidable interface {
	CollisionShape() geom.Circle
}

// Registry is an ordered collection of entities.
type Registry struct {
	entities []Entity
}

func NewRegistry() *Registry {
	return &Registry{entities: make([]Entity, 0, 16)}
}

func (r *Registry) Add(e Entity) {
	r.entities = append(r.entities, e)
}

// Remove drops the first occurrence of e, preserving the order of the rest.
func (r *Registry) Remove(e Entity) {
	for i, have := range r.entities {
		if have == e {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			return
		}
	}
}

// Entities returns the live backing slice in insertion order. Callers must
// not mutate it.
func (r *Registry) Entities() []Entity {
	return r.entities
}

func (r *Registry) Len() int {
	return len(r.entities)
}

// Movers returns the registered entities that expose kinematic state, in
// registry order.
func (r *Registry) Movers() []Mover {
	movers := make([]Mover, 0, len(r.entities))
	for _, e := range r.entities {
		if m, ok := e.(Mover); ok {
			movers = append(movers, m)
		}
	}
	return movers
}

// World is the simulation arena: a registry of entities bounded by a
// rectangle that bodies bounce against.
type World struct {
	Registry *Registry
	Bounds   geom.Rect
}

func New(bounds geom.Rect) *World {
	return &World{
		Registry: NewRegistry(),
		Bounds:   bounds,
	}
}

// Step advances every entity by dt, in registry order.
func (w *World) Step(dt float64) {
	for _, e := range w.Registry.Entities() {
		e.Update(dt, w)
	}
}
