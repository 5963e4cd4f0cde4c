package metrics

import (
	"math"

	"github.com/san-kum/reaxsim/internal/dynamo"
)

// EnergyDrift is the largest relative deviation of the total energy from its
// first observed value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.Hamiltonian
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, u dynamo.Control, t float64) {
	energy := e.dyn.Energy(x)
	if math.IsNaN(energy) {
		return
	}

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Temperature is the mean kinetic temperature over the observed states.
type Temperature struct {
	name    string
	sys     Thermal
	sum     float64
	samples int
}

func NewTemperature(sys Thermal) *Temperature {
	return &Temperature{name: "mean_temperature", sys: sys}
}

func (m *Temperature) Name() string { return m.name }

func (m *Temperature) Observe(x dynamo.State, u dynamo.Control, t float64) {
	m.sum += m.sys.Temperature(x)
	m.samples++
}

func (m *Temperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Temperature) Reset() {
	m.sum = 0
	m.samples = 0
}
