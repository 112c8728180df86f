package metrics

import (
	"math"

	"github.com/kmuro/fieldsim/internal/world"
)

// MaxSpeed reports the fastest speed any body reached during a run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (s *MaxSpeed) Name() string { return s.name }

func (s *MaxSpeed) Observe(movers []world.Mover, t float64) {
	for _, m := range movers {
		s.max = math.Max(s.max, m.Velocity().Length())
	}
}

func (s *MaxSpeed) Value() float64 {
	return s.max
}

func (s *MaxSpeed) Reset() {
	s.max = 0
}

// Calmness reports the fraction of samples in which every body stayed
// below a speed threshold. 1.0 means the scene never got lively.
type Calmness struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewCalmness(threshold float64) *Calmness {
	return &Calmness{name: "calmness", threshold: threshold}
}

func (c *Calmness) Name() string { return c.name }

func (c *Calmness) Observe(movers []world.Mover, t float64) {
	c.samples++
	for _, m := range movers {
		if m.Velocity().Length() > c.threshold {
			c.violations++
			break
		}
	}
}

func (c *Calmness) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Calmness) Reset() {
	c.violations = 0
	c.samples = 0
}
