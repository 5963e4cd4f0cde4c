package reaxff

import (
	"fmt"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

// MinDistance is the closest two atoms may be before the geometry is
// rejected as degenerate.
const MinDistance = 1e-6

type ChargeMode int

const (
	// ChargesFixed uses the charges stored on the atoms.
	ChargesFixed ChargeMode = iota
	// ChargesEEM equilibrates charges from the EEM constants of each type.
	ChargesEEM
)

func (m ChargeMode) String() string {
	switch m {
	case ChargesEEM:
		return "eem"
	default:
		return "fixed"
	}
}

func ParseChargeMode(s string) (ChargeMode, error) {
	switch s {
	case "", "fixed":
		return ChargesFixed, nil
	case "eem":
		return ChargesEEM, nil
	}
	return ChargesFixed, fmt.Errorf("unknown charge mode: %s", s)
}

type Options struct {
	// Workers splits the pair passes across goroutines; values <= 1 run serially.
	Workers int
	Charges ChargeMode
}

func DefaultOptions() Options {
	return Options{Workers: 1, Charges: ChargesFixed}
}

// Evaluation is the read-only input of every energy term: the snapshot, its
// parameters, the completed bond-order pass and the atomic charges.
type Evaluation struct {
	System  *atoms.System
	Params  *forcefield.Repository
	BO      *BondOrders
	Charges []float64
}

// NewEvaluation checks the snapshot, runs the bond-order pass and resolves
// charges. An atom whose type does not index ff panics with an IndexError.
func NewEvaluation(sys *atoms.System, ff *forcefield.Repository, opts Options) (*Evaluation, error) {
	n := sys.Len()
	if n == 0 {
		return nil, ErrEmptySystem
	}
	checkTypes(sys, ff)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r := sys.Distance(i, j); !(r >= MinDistance) {
				return nil, fmt.Errorf("%w: atoms %d and %d are %.3g apart",
					ErrDegenerateGeometry, sys.Atoms[i].ID, sys.Atoms[j].ID, r)
			}
		}
	}

	c := &Evaluation{
		System: sys,
		Params: ff,
		BO:     ComputeBondOrders(sys, ff, opts.Workers),
	}

	switch opts.Charges {
	case ChargesEEM:
		q, err := EEMCharges(sys, ff)
		if err != nil {
			return nil, err
		}
		c.Charges = q
	default:
		c.Charges = make([]float64, n)
		for i, a := range sys.Atoms {
			c.Charges[i] = a.Charge
		}
	}
	return c, nil
}

func (c *Evaluation) N() int { return c.BO.N }

func (c *Evaluation) checkAtom(i int) {
	checkIndex("atom", i, c.BO.N)
}

func (c *Evaluation) typeOf(i int) int {
	return c.System.Atoms[i].Type
}

func (c *Evaluation) atomType(i int) forcefield.AtomType {
	return c.Params.Type(c.System.Atoms[i].Type)
}

// mass is the atom's own mass, or the mass of its type when unset.
func (c *Evaluation) mass(i int) float64 {
	if m := c.System.Atoms[i].Mass; m > 0 {
		return m
	}
	return c.atomType(i).Mass
}
