package reaxff

import (
	"fmt"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"gonum.org/v1/gonum/floats"
)

// ScanPoint is one geometry of a distance scan.
type ScanPoint struct {
	Distance  float64
	Energies  Energies
	BondOrder float64
}

// ScanDistance moves atom j along the i-j axis so that it sits at each of the
// given distances from i, and evaluates every geometry. Atom i and every
// other atom stay fixed; sys is not modified.
func ScanDistance(sys *atoms.System, ff *forcefield.Repository, opts Options, i, j int, distances []float64) ([]ScanPoint, error) {
	checkIndex("atom", i, sys.Len())
	checkIndex("atom", j, sys.Len())
	if i == j {
		return nil, fmt.Errorf("%w: scan atoms %d and %d are the same", ErrDegenerateGeometry, i, j)
	}

	var axis [3]float64
	floats.SubTo(axis[:], sys.Atoms[j].Position[:], sys.Atoms[i].Position[:])
	norm := floats.Norm(axis[:], 2)
	if norm < MinDistance {
		return nil, fmt.Errorf("%w: atoms %d and %d", ErrDegenerateGeometry, i, j)
	}
	floats.Scale(1/norm, axis[:])

	work := sys.Clone()
	out := make([]ScanPoint, 0, len(distances))
	for _, r := range distances {
		floats.AddScaledTo(work.Atoms[j].Position[:], sys.Atoms[i].Position[:], r, axis[:])
		res, err := Evaluate(work, ff, opts)
		if err != nil {
			return nil, fmt.Errorf("scan at r=%g: %w", r, err)
		}
		out = append(out, ScanPoint{
			Distance:  r,
			Energies:  res.Energies,
			BondOrder: res.BondOrders().Total.At(i, j),
		})
	}
	return out, nil
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}
	return floats.Span(make([]float64, n), a, b)
}
