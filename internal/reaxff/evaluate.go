package reaxff

import (
	"fmt"
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

// Energies are the named energy terms of one snapshot in kcal/mol.
type Energies struct {
	VdW       float64 `json:"vdw"`
	Coulomb   float64 `json:"coulomb"`
	Bond      float64 `json:"bond"`
	LonePair  float64 `json:"lone_pair"`
	Over      float64 `json:"over_coordination"`
	Under     float64 `json:"under_coordination"`
	Penalty   float64 `json:"penalty"`
	Coalition float64 `json:"coalition"`
	Angle     float64 `json:"angle"`
}

func (e Energies) Total() float64 {
	return e.VdW + e.Coulomb + e.Bond + e.LonePair + e.Over + e.Under + e.Penalty + e.Coalition + e.Angle
}

// Terms lists the energies in display order.
func (e Energies) Terms() []Term {
	return []Term{
		{"vdw", e.VdW},
		{"coulomb", e.Coulomb},
		{"bond", e.Bond},
		{"lone_pair", e.LonePair},
		{"over_coordination", e.Over},
		{"under_coordination", e.Under},
		{"penalty", e.Penalty},
		{"coalition", e.Coalition},
		{"angle", e.Angle},
	}
}

func (e Energies) Map() map[string]float64 {
	m := make(map[string]float64, 10)
	for _, t := range e.Terms() {
		m[t.Name] = t.Value
	}
	m["total"] = e.Total()
	return m
}

type Term struct {
	Name  string
	Value float64
}

func (e Energies) isFinite() bool {
	for _, t := range e.Terms() {
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
			return false
		}
	}
	return true
}

// Energies sums every term over the snapshot: pair terms over i<j, atom terms
// over every atom, and triple terms over each centre j with both arms bonded
// above the bond-order cutoff.
func (c *Evaluation) Energies() Energies {
	var e Energies
	n := c.BO.N

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			e.VdW += c.VanDerWaals(i, j)
			e.Coulomb += c.Coulomb(i, j)
			e.Bond += c.BondEnergy(i, j)
		}
	}

	for i := 0; i < n; i++ {
		e.LonePair += c.LonePairEnergy(i)
		e.Over += c.OverCoordination(i)
		e.Under += c.UnderCoordination(i)
	}

	cutoff := c.Params.General.BondOrderCutoff
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i == j || c.BO.Total.At(i, j) <= cutoff {
				continue
			}
			for k := i + 1; k < n; k++ {
				if k == j || c.BO.Total.At(j, k) <= cutoff {
					continue
				}
				e.Penalty += c.PenaltyEnergy(i, j, k)
				e.Coalition += c.CoalitionEnergy(i, j, k)
				e.Angle += c.AngleEnergy(i, j, k)
			}
		}
	}
	return e
}

type Result struct {
	Evaluation *Evaluation
	Energies   Energies
}

func (r *Result) BondOrders() *BondOrders { return r.Evaluation.BO }

// Evaluate runs the bond-order pass and every energy term on sys.
func Evaluate(sys *atoms.System, ff *forcefield.Repository, opts Options) (*Result, error) {
	c, err := NewEvaluation(sys, ff, opts)
	if err != nil {
		return nil, err
	}
	e := c.Energies()
	if !e.isFinite() {
		return nil, fmt.Errorf("%w: %+v", ErrNonFinite, e)
	}
	return &Result{Evaluation: c, Energies: e}, nil
}
