package metrics

import (
	"github.com/kmuro/fieldsim/internal/geom"
	"github.com/kmuro/fieldsim/internal/world"
)

// MomentumOf returns the instantaneous total momentum vector. Immovable
// bodies are excluded.
func MomentumOf(movers []world.Mover) geom.Vec2 {
	var total geom.Vec2
	for _, m := range movers {
		mass := m.Mass()
		if mass <= 0 {
			continue
		}
		total = total.Add(m.Velocity().Scale(mass))
	}
	return total
}

// Momentum reports the mean magnitude of total momentum over a run.
type Momentum struct {
	name    string
	sum     float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(movers []world.Mover, t float64) {
	m.sum += MomentumOf(movers).Length()
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.sum = 0
	m.samples = 0
}
