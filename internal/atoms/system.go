// Package atoms holds the atom snapshot evaluated by the reaxff engine.
//
// Atoms are owned by the caller. The engine only reads them; positions and
// velocities are written by an integrator.
package atoms

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Atom struct {
	ID       int
	Type     int
	Position [3]float64
	Velocity [3]float64
	// Mass in amu. Zero takes the mass of the atom type.
	Mass   float64
	Charge float64
}

type System struct {
	Atoms []Atom
	// Charge is the net charge distributed by charge equilibration.
	Charge float64

	nextID int
}

func New(atoms []Atom) *System {
	s := &System{Atoms: make([]Atom, len(atoms))}
	copy(s.Atoms, atoms)
	for _, a := range s.Atoms {
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *System) Len() int { return len(s.Atoms) }

// Add appends an atom, assigning a fresh ID, and returns that ID.
func (s *System) Add(a Atom) int {
	a.ID = s.nextID
	s.nextID++
	s.Atoms = append(s.Atoms, a)
	return a.ID
}

// Remove deletes the atom with the given ID, preserving the order of the rest.
func (s *System) Remove(id int) bool {
	for i, a := range s.Atoms {
		if a.ID == id {
			s.Atoms = append(s.Atoms[:i], s.Atoms[i+1:]...)
			return true
		}
	}
	return false
}

func (s *System) Distance(i, j int) float64 {
	return floats.Distance(s.Atoms[i].Position[:], s.Atoms[j].Position[:], 2)
}

// Angle returns the i-j-k angle in radians with j at the vertex.
func (s *System) Angle(i, j, k int) float64 {
	var a, b [3]float64
	floats.SubTo(a[:], s.Atoms[i].Position[:], s.Atoms[j].Position[:])
	floats.SubTo(b[:], s.Atoms[k].Position[:], s.Atoms[j].Position[:])
	cos := floats.Dot(a[:], b[:]) / (floats.Norm(a[:], 2) * floats.Norm(b[:], 2))
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

func (s *System) Clone() *System {
	c := &System{
		Atoms:  make([]Atom, len(s.Atoms)),
		Charge: s.Charge,
		nextID: s.nextID,
	}
	copy(c.Atoms, s.Atoms)
	return c
}

// Positions flattens positions into a 3N slice.
func (s *System) Positions() []float64 {
	out := make([]float64, 0, 3*len(s.Atoms))
	for _, a := range s.Atoms {
		out = append(out, a.Position[:]...)
	}
	return out
}

func (s *System) SetPositions(x []float64) {
	for i := range s.Atoms {
		copy(s.Atoms[i].Position[:], x[3*i:3*i+3])
	}
}

func (s *System) Velocities() []float64 {
	out := make([]float64, 0, 3*len(s.Atoms))
	for _, a := range s.Atoms {
		out = append(out, a.Velocity[:]...)
	}
	return out
}

func (s *System) SetVelocities(v []float64) {
	for i := range s.Atoms {
		copy(s.Atoms[i].Velocity[:], v[3*i:3*i+3])
	}
}

// IsValid reports whether every coordinate is finite.
func (s *System) IsValid() bool {
	for _, a := range s.Atoms {
		for d := 0; d < 3; d++ {
			if math.IsNaN(a.Position[d]) || math.IsInf(a.Position[d], 0) ||
				math.IsNaN(a.Velocity[d]) || math.IsInf(a.Velocity[d], 0) {
				return false
			}
		}
	}
	return true
}
