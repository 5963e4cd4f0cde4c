package reaxff

import (
	"fmt"
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"gonum.org/v1/gonum/mat"
)

// coulombEV converts e^2/angstrom to eV, the unit of the EEM constants.
const coulombEV = 14.399645

// EEMCharges equilibrates electronegativity across the snapshot:
//
//	chi_i + 2 eta_i q_i + sum_j J_ij q_j = mu   for every atom i
//	sum_i q_i = sys.Charge
//
// with J_ij the tapered, shielded Coulomb kernel. The n+1 unknowns are the
// charges and the common chemical potential mu.
func EEMCharges(sys *atoms.System, ff *forcefield.Repository) ([]float64, error) {
	n := sys.Len()
	if n == 0 {
		return nil, ErrEmptySystem
	}

	rcut := ff.General.TaperRadius
	a := mat.NewDense(n+1, n+1, nil)
	b := mat.NewVecDense(n+1, nil)

	for i := 0; i < n; i++ {
		ti := sys.Atoms[i].Type
		t := ff.Type(ti)
		a.Set(i, i, 2*t.Eta)
		a.Set(i, n, -1)
		a.Set(n, i, 1)
		b.SetVec(i, -t.Chi)

		for j := i + 1; j < n; j++ {
			r := sys.Distance(i, j)
			tap, _ := Taper(r, rcut)
			gamma := ff.CoulombShielding(ti, sys.Atoms[j].Type)
			jij := coulombEV * tap / math.Cbrt(r*r*r+gamma)
			a.Set(i, j, jij)
			a.Set(j, i, jij)
		}
	}
	b.SetVec(n, sys.Charge)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularCharges, err)
	}

	q := make([]float64, n)
	for i := range q {
		q[i] = x.AtVec(i)
		if math.IsNaN(q[i]) || math.IsInf(q[i], 0) {
			return nil, fmt.Errorf("%w: charge %d is %v", ErrSingularCharges, i, q[i])
		}
	}
	return q, nil
}
