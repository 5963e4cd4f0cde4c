package reaxff

import (
	"errors"
	"fmt"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

var (
	// ErrEmptySystem is returned when evaluating a snapshot with no atoms.
	ErrEmptySystem = errors.New("reaxff: empty atom system")

	// ErrDegenerateGeometry is returned when two atoms are closer than MinDistance.
	ErrDegenerateGeometry = errors.New("reaxff: coincident atoms")

	// ErrNonFinite is returned when an evaluation produces NaN or Inf.
	ErrNonFinite = errors.New("reaxff: non-finite energy")

	// ErrSingularCharges is returned when charge equilibration has no unique solution.
	ErrSingularCharges = errors.New("reaxff: singular charge equilibration system")
)

// IndexError is the panic value for an atom or type index outside its table.
// It marks a programmer error, never a recoverable condition.
type IndexError struct {
	Kind  string
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("reaxff: %s index %d out of range [0,%d)", e.Kind, e.Index, e.Len)
}

func checkIndex(kind string, i, n int) {
	if i < 0 || i >= n {
		panic(IndexError{Kind: kind, Index: i, Len: n})
	}
}

func checkTypes(sys *atoms.System, ff *forcefield.Repository) {
	for i := range sys.Atoms {
		checkIndex("type", sys.Atoms[i].Type, ff.NumTypes())
	}
}
