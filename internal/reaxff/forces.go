package reaxff

import (
	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

// DefaultForceStep is the displacement in angstrom used by Forces.
const DefaultForceStep = 1e-4

// Forces returns -dE/dx for every atom by central differences of the total
// energy, together with the energy of the undisplaced snapshot. sys is not
// modified.
func Forces(sys *atoms.System, ff *forcefield.Repository, opts Options, h float64) ([][3]float64, float64, error) {
	if h <= 0 {
		h = DefaultForceStep
	}

	res, err := Evaluate(sys, ff, opts)
	if err != nil {
		return nil, 0, err
	}

	work := sys.Clone()
	forces := make([][3]float64, sys.Len())
	for i := range work.Atoms {
		for d := 0; d < 3; d++ {
			x0 := work.Atoms[i].Position[d]

			work.Atoms[i].Position[d] = x0 + h
			plus, err := Evaluate(work, ff, opts)
			if err != nil {
				return nil, 0, err
			}
			work.Atoms[i].Position[d] = x0 - h
			minus, err := Evaluate(work, ff, opts)
			if err != nil {
				return nil, 0, err
			}
			work.Atoms[i].Position[d] = x0

			forces[i][d] = -(plus.Energies.Total() - minus.Energies.Total()) / (2 * h)
		}
	}
	return forces, res.Energies.Total(), nil
}
