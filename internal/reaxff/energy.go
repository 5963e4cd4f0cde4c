package reaxff

import (
	"math"
)

const (
	// CoulombConstant converts e^2/angstrom to kcal/mol.
	CoulombConstant = 332.0638

	// lonePairSharpness is the fixed steepness of the lone-pair switch.
	lonePairSharpness = 75.0

	// heavyAtomMass separates atoms whose lone pairs do not enter the
	// over/under-coordination neighbour sum.
	heavyAtomMass = 21.0

	overcoordGuard = 1e-8
)

// Taper is the 7th-order switching polynomial used by the non-bonded terms.
// It is 1 at r=0 and reaches 0 with zero slope at rcut; beyond rcut both
// values are 0.
func Taper(r, rcut float64) (tap, dtap float64) {
	if r >= rcut {
		return 0, 0
	}
	t7 := 20 / math.Pow(rcut, 7)
	t6 := -70 / math.Pow(rcut, 6)
	t5 := 84 / math.Pow(rcut, 5)
	t4 := -35 / math.Pow(rcut, 4)

	r2 := r * r
	r3 := r2 * r
	r4 := r2 * r2
	tap = ((t7*r+t6)*r+t5)*r*r4 + t4*r4 + 1
	dtap = 7*t7*r3*r3 + 6*t6*r3*r2 + 5*t5*r4 + 4*t4*r3
	return tap, dtap
}

// VanDerWaals is the shielded Morse-like dispersion energy of a pair.
func (c *Evaluation) VanDerWaals(i, j int) float64 {
	c.checkAtom(i)
	c.checkAtom(j)
	if i == j {
		return 0
	}
	v, ok := c.Params.VdW(c.typeOf(i), c.typeOf(j))
	if !ok {
		return 0
	}

	g := c.Params.General
	r := c.System.Distance(i, j)
	tap, _ := Taper(r, g.TaperRadius)
	if tap == 0 {
		return 0
	}

	p := g.PvdW
	fn13 := math.Pow(math.Pow(r, p)+math.Pow(1/v.GammaW, p), 1/p)
	x := 1 - fn13/v.RVdW
	return tap * v.Dij * (math.Exp(v.Alpha*x) - 2*math.Exp(0.5*v.Alpha*x))
}

// Coulomb is the shielded, tapered electrostatic energy of a pair.
func (c *Evaluation) Coulomb(i, j int) float64 {
	c.checkAtom(i)
	c.checkAtom(j)
	if i == j {
		return 0
	}
	qi, qj := c.Charges[i], c.Charges[j]
	if qi == 0 || qj == 0 {
		return 0
	}

	r := c.System.Distance(i, j)
	tap, _ := Taper(r, c.Params.General.TaperRadius)
	gamma := c.Params.CoulombShielding(c.typeOf(i), c.typeOf(j))
	dr3 := math.Cbrt(r*r*r + gamma)
	return CoulombConstant * qi * qj * tap / dr3
}

// BondEnergy is the covalent energy of a pair from its corrected bond orders.
func (c *Evaluation) BondEnergy(i, j int) float64 {
	c.checkAtom(i)
	c.checkAtom(j)
	if i == j {
		return 0
	}
	p, ok := c.Params.Pair(c.typeOf(i), c.typeOf(j))
	if !ok {
		return 0
	}

	e := 0.0
	if bs := c.BO.Sigma.At(i, j); bs > 0 {
		e -= p.DeSigma * bs * math.Exp(p.Pbe1*(1-math.Pow(bs, p.Pbe2)))
	}
	e -= p.DePi * c.BO.Pi.At(i, j)
	e -= p.DePiPi * c.BO.PiPi.At(i, j)
	return e
}

// LonePairEnergy penalises an atom whose lone-pair count falls short of its
// optimum.
func (c *Evaluation) LonePairEnergy(i int) float64 {
	c.checkAtom(i)
	plp2 := c.atomType(i).Plp2
	if plp2 == 0 {
		return 0
	}
	d := c.BO.Dev.DeltapLp[i]
	return plp2 * d / (1 + math.Exp(-lonePairSharpness*d))
}

// coordination returns the neighbour sum S and the lone-pair corrected
// deviation shared by the over- and under-coordination terms.
func (c *Evaluation) coordination(i int) (s, deltaLpCorr float64) {
	dfvl := 1.0
	if c.mass(i) > heavyAtomMass {
		dfvl = 0
	}

	dev := c.BO.Dev
	for j := 0; j < c.BO.N; j++ {
		if j == i {
			continue
		}
		pi := c.BO.Pi.At(i, j) + c.BO.PiPi.At(i, j)
		if pi == 0 {
			continue
		}
		s += (dev.Delta[j] - dfvl*dev.DeltapLp[i]) * pi
	}

	g := c.Params.General
	deltaLpCorr = dev.Delta[i] - dev.DeltapLp[i]/(1+g.Povun3*math.Exp(g.Povun4*s))
	return s, deltaLpCorr
}

// OverCoordination penalises an atom whose bond-order sum exceeds its
// valency.
func (c *Evaluation) OverCoordination(i int) float64 {
	c.checkAtom(i)
	t := c.atomType(i)

	sumBO := 0.0
	for j := 0; j < c.BO.N; j++ {
		bo := c.BO.Total.At(i, j)
		if bo == 0 {
			continue
		}
		p, ok := c.Params.Pair(c.typeOf(i), c.typeOf(j))
		if !ok {
			continue
		}
		sumBO += p.Povun1 * p.DeSigma * bo
	}
	if sumBO == 0 {
		return 0
	}

	_, dlc := c.coordination(i)
	return sumBO * dlc / (dlc + t.Valency + overcoordGuard) / (1 + math.Exp(t.Povun2*dlc))
}

// UnderCoordination stabilises an atom whose bond-order sum falls short of
// its valency, damped by neighbouring pi bonds.
func (c *Evaluation) UnderCoordination(i int) float64 {
	c.checkAtom(i)
	t := c.atomType(i)
	if t.Povun5 == 0 {
		return 0
	}

	g := c.Params.General
	s, dlc := c.coordination(i)
	return -t.Povun5 * (1 - math.Exp(g.Povun6*dlc)) /
		(1 + math.Exp(-t.Povun2*dlc)) /
		(1 + g.Povun7*math.Exp(g.Povun8*s))
}
