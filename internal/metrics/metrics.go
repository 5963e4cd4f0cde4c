package metrics

import "github.com/san-kum/reaxsim/internal/dynamo"

// Metric accumulates a scalar over the states of a trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State, u dynamo.Control, t float64)
	Value() float64
	Reset()
}

// Thermal is implemented by systems that can report an instantaneous
// kinetic temperature.
type Thermal interface {
	Temperature(x dynamo.State) float64
}
