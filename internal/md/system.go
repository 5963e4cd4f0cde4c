package md

import (
	"fmt"
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/dynamo"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

const (
	// AccelConversion turns kcal/mol/angstrom per amu into angstrom/fs^2.
	AccelConversion = 4.184e-4

	// Boltzmann is k_B in kcal/mol/K.
	Boltzmann = 0.0019872041
)

// System is a molecular snapshot viewed as a dynamical system. Types, masses
// and charges come from the template; positions and velocities come from the
// state passed to each call.
type System struct {
	template *atoms.System
	ff       *forcefield.Repository
	opts     reaxff.Options
	step     float64
	masses   []float64

	err error

	// Evaluations counts force evaluations.
	Evaluations int
}

// NewSystem checks that sys can be evaluated and that every atom has a mass.
// An atom with no mass of its own takes the mass of its type.
func NewSystem(sys *atoms.System, ff *forcefield.Repository, opts reaxff.Options, forceStep float64) (*System, error) {
	if _, err := reaxff.Evaluate(sys, ff, opts); err != nil {
		return nil, err
	}

	masses := make([]float64, sys.Len())
	for i, a := range sys.Atoms {
		m := a.Mass
		if m == 0 {
			m = ff.Type(a.Type).Mass
		}
		if !(m > 0) {
			return nil, fmt.Errorf("%w: atom %d has mass %v", dynamo.ErrParameterBounds, a.ID, m)
		}
		masses[i] = m
	}

	return &System{
		template: sys.Clone(),
		ff:       ff,
		opts:     opts,
		step:     forceStep,
		masses:   masses,
	}, nil
}

func (s *System) StateDim() int   { return 6 * s.template.Len() }
func (s *System) ControlDim() int { return 0 }

// Err returns the first evaluation error seen by Derive or Energy.
func (s *System) Err() error { return s.err }

func (s *System) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// State packs the template's positions and velocities.
func (s *System) State() dynamo.State {
	x := make(dynamo.State, 0, s.StateDim())
	x = append(x, s.template.Positions()...)
	return append(x, s.template.Velocities()...)
}

// Snapshot returns a copy of the template moved to state x.
func (s *System) Snapshot(x dynamo.State) *atoms.System {
	pos, vel := x.Half()
	snap := s.template.Clone()
	snap.SetPositions(pos)
	snap.SetVelocities(vel)
	return snap
}

// Derive returns [velocities | accelerations]. An evaluation failure is
// recorded in Err and poisons the accelerations with NaN.
func (s *System) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	n := len(x) / 2
	dx := make(dynamo.State, len(x))
	copy(dx[:n], x[n:])

	s.Evaluations++
	f, _, err := reaxff.Forces(s.Snapshot(x), s.ff, s.opts, s.step)
	if err != nil {
		s.fail(err)
		for i := n; i < len(dx); i++ {
			dx[i] = math.NaN()
		}
		return dx
	}

	for i, fi := range f {
		for d := 0; d < 3; d++ {
			dx[n+3*i+d] = fi[d] / s.masses[i] * AccelConversion
		}
	}
	return dx
}

// Kinetic is the kinetic energy of x in kcal/mol.
func (s *System) Kinetic(x dynamo.State) float64 {
	_, vel := x.Half()
	ke := 0.0
	for i, m := range s.masses {
		v := vel[3*i : 3*i+3]
		ke += 0.5 * m * (v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	return ke / AccelConversion
}

func (s *System) Potential(x dynamo.State) (float64, error) {
	res, err := reaxff.Evaluate(s.Snapshot(x), s.ff, s.opts)
	if err != nil {
		return math.NaN(), err
	}
	return res.Energies.Total(), nil
}

// Energy is the total energy of x. It is NaN when the potential cannot be
// evaluated.
func (s *System) Energy(x dynamo.State) float64 {
	pe, err := s.Potential(x)
	if err != nil {
		s.fail(err)
		return math.NaN()
	}
	return s.Kinetic(x) + pe
}

// Temperature is the kinetic temperature of x over 3N degrees of freedom.
func (s *System) Temperature(x dynamo.State) float64 {
	return temperature(s.Kinetic(x), len(s.masses))
}

func temperature(kinetic float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return 2 * kinetic / (3 * float64(n) * Boltzmann)
}
