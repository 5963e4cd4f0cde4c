package md

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/dynamo"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

// MaxwellBoltzmann draws velocities for temperature kelvin from seed, removes
// the centre-of-mass drift and rescales to hit the temperature exactly.
// Atoms without a mass take the mass of their type.
func MaxwellBoltzmann(sys *atoms.System, ff *forcefield.Repository, kelvin float64, seed int64) error {
	if kelvin < 0 {
		return fmt.Errorf("%w: temperature %v K", dynamo.ErrParameterBounds, kelvin)
	}
	n := sys.Len()
	if n == 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	masses := make([]float64, n)
	var momentum [3]float64
	total := 0.0
	for i := range sys.Atoms {
		a := &sys.Atoms[i]
		m := a.Mass
		if m == 0 {
			m = ff.Type(a.Type).Mass
		}
		if !(m > 0) {
			return fmt.Errorf("%w: atom %d has mass %v", dynamo.ErrParameterBounds, a.ID, m)
		}
		masses[i] = m
		total += m

		sigma := math.Sqrt(Boltzmann * kelvin * AccelConversion / m)
		for d := 0; d < 3; d++ {
			a.Velocity[d] = sigma * rng.NormFloat64()
			momentum[d] += m * a.Velocity[d]
		}
	}

	ke := 0.0
	for i := range sys.Atoms {
		v := &sys.Atoms[i].Velocity
		for d := 0; d < 3; d++ {
			v[d] -= momentum[d] / total
			ke += 0.5 * masses[i] * v[d] * v[d]
		}
	}
	ke /= AccelConversion

	current := temperature(ke, n)
	if current == 0 {
		return nil
	}
	scale := math.Sqrt(kelvin / current)
	for i := range sys.Atoms {
		for d := 0; d < 3; d++ {
			sys.Atoms[i].Velocity[d] *= scale
		}
	}
	return nil
}
