package metrics

import (
	"math"

	"github.com/kmuro/fieldsim/internal/world"
)

// KineticOf returns the instantaneous kinetic energy of a set of movers.
// Bodies with non-positive mass are immovable and contribute nothing.
func KineticOf(movers []world.Mover) float64 {
	total := 0.0
	for _, m := range movers {
		mass := m.Mass()
		if mass <= 0 {
			continue
		}
		total += 0.5 * mass * m.Velocity().LengthSquared()
	}
	return total
}

// KineticEnergy reports the mean kinetic energy over a run.
type KineticEnergy struct {
	name    string
	sum     float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(movers []world.Mover, t float64) {
	k.sum += KineticOf(movers)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.sum = 0
	k.samples = 0
}

// EnergyDrift reports the worst relative deviation of kinetic energy from
// its value at the first observation. Wall restitution and inelastic
// contacts both bleed energy, so a large value is expected for lossy
// scenes; for an elastic free-flight scene it flags integration trouble.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(movers []world.Mover, t float64) {
	energy := KineticOf(movers)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
