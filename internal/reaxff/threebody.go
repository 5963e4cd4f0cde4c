package reaxff

import (
	"math"

	"github.com/san-kum/reaxsim/internal/forcefield"
)

const (
	idealDoubleBond    = 2.0
	idealCoalitionBond = 1.5
)

// triple resolves the parameter row of the i-j-k angle (j at the centre).
// Repeated atoms never form an angle.
func (c *Evaluation) triple(i, j, k int) (forcefield.TripleParameters, bool) {
	c.checkAtom(i)
	c.checkAtom(j)
	c.checkAtom(k)
	if i == j || j == k || i == k {
		return forcefield.TripleParameters{}, false
	}
	return c.Params.Triple(c.typeOf(i), c.typeOf(j), c.typeOf(k))
}

// PenaltyEnergy penalises a centre atom j carrying two bonds close to double
// bonds.
func (c *Evaluation) PenaltyEnergy(i, j, k int) float64 {
	tr, ok := c.triple(i, j, k)
	if !ok || tr.Ppen1 == 0 {
		return 0
	}
	g := c.Params.General
	boij := c.BO.Total.At(i, j)
	bojk := c.BO.Total.At(j, k)
	d := c.BO.Dev.DeltapBoc[j]

	f9 := (2 + math.Exp(-g.Ppen3*d)) / (1 + math.Exp(-g.Ppen3*d) + math.Exp(g.Ppen4*d))
	return tr.Ppen1 * f9 *
		math.Exp(-g.Ppen2*(boij-idealDoubleBond)*(boij-idealDoubleBond)) *
		math.Exp(-g.Ppen2*(bojk-idealDoubleBond)*(bojk-idealDoubleBond))
}

// CoalitionEnergy acts on a centre atom j whose two bonds both sit near a
// bond order of 1.5, as in delocalised three-centre systems.
func (c *Evaluation) CoalitionEnergy(i, j, k int) float64 {
	tr, ok := c.triple(i, j, k)
	if !ok || tr.Pcoa1 == 0 {
		return 0
	}
	g := c.Params.General
	boij := c.BO.Total.At(i, j)
	bojk := c.BO.Total.At(j, k)
	d := c.BO.Dev.DeltapBoc[j]

	return tr.Pcoa1 / (1 + math.Exp(g.Pcoa2*d)) *
		math.Exp(-g.Pcoa4*(boij-idealCoalitionBond)*(boij-idealCoalitionBond)) *
		math.Exp(-g.Pcoa4*(bojk-idealCoalitionBond)*(bojk-idealCoalitionBond))
}

// AngleEnergy is the valence-angle strain around centre j, scaled by how
// strongly both arms are bonded.
func (c *Evaluation) AngleEnergy(i, j, k int) float64 {
	tr, ok := c.triple(i, j, k)
	if !ok || tr.Pval1 == 0 {
		return 0
	}
	pval3 := c.Params.General.Pval3
	f7ij := 1 - math.Exp(-pval3*c.BO.Total.At(i, j))
	f7jk := 1 - math.Exp(-pval3*c.BO.Total.At(j, k))
	if f7ij == 0 || f7jk == 0 {
		return 0
	}

	theta := c.System.Angle(i, j, k)
	dtheta := tr.Theta0*math.Pi/180 - theta
	return f7ij * f7jk * (tr.Pval1 - tr.Pval1*math.Exp(-tr.Pval2*dtheta*dtheta))
}
