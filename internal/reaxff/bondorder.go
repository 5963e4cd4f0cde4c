package reaxff

import (
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/dynamo"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"gonum.org/v1/gonum/mat"
)

// SnapThreshold is the magnitude below which a bond-order component is
// reported as exactly zero.
const SnapThreshold = 1e-10

// minRowsPerWorker keeps tiny systems on one goroutine.
const minRowsPerWorker = 8

// BondOrders holds the pairwise bond-order matrices of one snapshot. Every
// matrix is symmetric by storage and its diagonal is never written, so it
// stays zero. For each pair Total is the sum of Sigma, Pi and PiPi.
type BondOrders struct {
	N int

	Total *mat.SymDense
	Sigma *mat.SymDense
	Pi    *mat.SymDense
	PiPi  *mat.SymDense

	UncorrectedTotal *mat.SymDense
	UncorrectedSigma *mat.SymDense
	UncorrectedPi    *mat.SymDense
	UncorrectedPiPi  *mat.SymDense

	Dev Deviations
}

// Deviations are the per-atom valence deviations derived from the bond
// orders. All slices have one entry per atom.
type Deviations struct {
	// Deltap is the uncorrected bond-order sum minus the nominal valency.
	Deltap []float64
	// DeltapBoc is the uncorrected bond-order sum minus the boc valency.
	DeltapBoc []float64
	// Delta feeds the over/under-coordination terms. It is computed from the
	// uncorrected sum, like Deltap.
	Delta []float64

	// Lone-pair helpers, computed from the corrected bond-order sum.
	DeltaE   []float64
	Vlpex    []float64
	Nlp      []float64
	DeltapLp []float64
}

func newBondOrders(n int) *BondOrders {
	return &BondOrders{
		N:                n,
		Total:            mat.NewSymDense(n, nil),
		Sigma:            mat.NewSymDense(n, nil),
		Pi:               mat.NewSymDense(n, nil),
		PiPi:             mat.NewSymDense(n, nil),
		UncorrectedTotal: mat.NewSymDense(n, nil),
		UncorrectedSigma: mat.NewSymDense(n, nil),
		UncorrectedPi:    mat.NewSymDense(n, nil),
		UncorrectedPiPi:  mat.NewSymDense(n, nil),
		Dev: Deviations{
			Deltap:    make([]float64, n),
			DeltapBoc: make([]float64, n),
			Delta:     make([]float64, n),
			DeltaE:    make([]float64, n),
			Vlpex:     make([]float64, n),
			Nlp:       make([]float64, n),
			DeltapLp:  make([]float64, n),
		},
	}
}

// ComputeBondOrders runs the full bond-order pass over sys. Pair work is split
// by row across workers with a barrier between passes; per-atom sums run
// serially in index order, so the result does not depend on workers.
//
// sys must be non-empty and no two atoms may coincide; NewEvaluation checks
// both. An atom whose type does not index ff panics with an IndexError.
func ComputeBondOrders(sys *atoms.System, ff *forcefield.Repository, workers int) *BondOrders {
	checkTypes(sys, ff)
	n := sys.Len()
	bo := newBondOrders(n)
	g := ff.General

	dynamo.ParallelFor(n, workers, minRowsPerWorker, func(start, end int) {
		for i := start; i < end; i++ {
			ti := sys.Atoms[i].Type
			for j := i + 1; j < n; j++ {
				s, pi, pipi := uncorrectedBondOrder(ff, ti, sys.Atoms[j].Type, sys.Distance(i, j))
				bo.UncorrectedSigma.SetSym(i, j, s)
				bo.UncorrectedPi.SetSym(i, j, pi)
				bo.UncorrectedPiPi.SetSym(i, j, pipi)
				bo.UncorrectedTotal.SetSym(i, j, s+pi+pipi)
			}
		}
	})

	for i := 0; i < n; i++ {
		t := ff.Type(sys.Atoms[i].Type)
		sum := rowSum(bo.UncorrectedTotal, i)
		bo.Dev.Deltap[i] = sum - t.Valency
		bo.Dev.DeltapBoc[i] = sum - t.ValencyBoc
	}

	dynamo.ParallelFor(n, workers, minRowsPerWorker, func(start, end int) {
		for i := start; i < end; i++ {
			ti := sys.Atoms[i].Type
			for j := i + 1; j < n; j++ {
				if bo.UncorrectedTotal.At(i, j) == 0 {
					continue
				}
				tj := sys.Atoms[j].Type
				f1, f4, f5 := correctionFactors(ff, ti, tj, bo.UncorrectedTotal.At(i, j), bo.Dev, i, j)

				s := snap(bo.UncorrectedSigma.At(i, j) * f1 * f4 * f5)
				pi := snap(bo.UncorrectedPi.At(i, j) * f1 * f1 * f4 * f5)
				pipi := snap(bo.UncorrectedPiPi.At(i, j) * f1 * f1 * f4 * f5)
				bo.Sigma.SetSym(i, j, s)
				bo.Pi.SetSym(i, j, pi)
				bo.PiPi.SetSym(i, j, pipi)
				bo.Total.SetSym(i, j, s+pi+pipi)
			}
		}
	})

	plp1 := g.Plp1
	for i := 0; i < n; i++ {
		t := ff.Type(sys.Atoms[i].Type)
		bo.Dev.Delta[i] = rowSum(bo.UncorrectedTotal, i) - t.Valency

		lp := lonePair(rowSum(bo.Total, i), t.ValenceElectrons, t.NlpOpt, plp1)
		bo.Dev.DeltaE[i] = lp.deltaE
		bo.Dev.Vlpex[i] = lp.vlpex
		bo.Dev.Nlp[i] = lp.nlp
		bo.Dev.DeltapLp[i] = lp.deltaLp
	}

	return bo
}

// uncorrectedBondOrder returns the sigma, pi and pi-pi components of BO' for
// a pair of types at distance r. Pairs whose BO' does not exceed the cutoff
// are not bonded. Otherwise the cutoff is subtracted from sigma only, so the
// sum of the three is always BO' - cutoff; sigma goes negative for a pair
// whose raw sigma is below the cutoff.
func uncorrectedBondOrder(ff *forcefield.Repository, ti, tj int, r float64) (sigma, pi, pipi float64) {
	p, ok := ff.Pair(ti, tj)
	if !ok {
		return 0, 0, 0
	}
	cutoff := ff.General.BondOrderCutoff
	roS, roP, roPP := ff.BondRadii(ti, tj, p)

	if roS > 0 {
		sigma = snap((1 + cutoff) * math.Exp(p.Pbo1*math.Pow(r/roS, p.Pbo2)))
	}
	if roP > 0 {
		pi = snap(math.Exp(p.Pbo3 * math.Pow(r/roP, p.Pbo4)))
	}
	if roPP > 0 {
		pipi = snap(math.Exp(p.Pbo5 * math.Pow(r/roPP, p.Pbo6)))
	}

	if sigma+pi+pipi <= cutoff {
		return 0, 0, 0
	}
	return sigma - cutoff, pi, pipi
}

// correctionFactors returns f1, f4 and f5 for the pair i-j of types ti-tj
// with uncorrected bond order boPrime. A factor whose pair flag is off is
// exactly 1.
func correctionFactors(ff *forcefield.Repository, ti, tj int, boPrime float64, dev Deviations, i, j int) (f1, f4, f5 float64) {
	f1, f4, f5 = 1, 1, 1
	p, ok := ff.Pair(ti, tj)
	if !ok {
		return
	}
	if p.OvercoordCorrection {
		f1 = overcoordFactor(ff.General, ff.Type(ti).Valency, ff.Type(tj).Valency, dev.Deltap[i], dev.Deltap[j])
	}
	if p.OneThreeCorrection {
		f4, f5 = oneThreeFactors(p, boPrime, dev.DeltapBoc[i], dev.DeltapBoc[j])
	}
	return
}

// overcoordFactor is f1, the correction for an atom whose uncorrected
// bond-order sum exceeds its valency.
func overcoordFactor(g forcefield.GeneralParameters, vali, valj, dpi, dpj float64) float64 {
	f2 := math.Exp(-g.Pboc1*dpi) + math.Exp(-g.Pboc1*dpj)
	f3 := -1 / g.Pboc2 * math.Log(0.5*(math.Exp(-g.Pboc2*dpi)+math.Exp(-g.Pboc2*dpj)))
	return 0.5 * ((vali+f2)/(vali+f2+f3) + (valj+f2)/(valj+f2+f3))
}

// oneThreeFactors are f4 and f5, which damp bonds whose ends are already
// saturated. bo is the uncorrected total bond order of the pair.
func oneThreeFactors(p forcefield.PairParameters, bo, dbi, dbj float64) (f4, f5 float64) {
	bo2 := bo * bo
	f4 = 1 / (1 + math.Exp(-(p.Pboc4*bo2-dbi)*p.Pboc3+p.Pboc5))
	f5 = 1 / (1 + math.Exp(-(p.Pboc4*bo2-dbj)*p.Pboc3+p.Pboc5))
	return
}

type lonePairTerms struct {
	deltaE, vlpex, nlp, deltaLp float64
}

func lonePair(sumBO, valenceElectrons, nlpOpt, plp1 float64) lonePairTerms {
	deltaE := sumBO - valenceElectrons
	half := math.Floor(deltaE / 2)
	vlpex := deltaE - 2*half
	nlp := math.Exp(-plp1*(2+vlpex)*(2+vlpex)) - half
	return lonePairTerms{
		deltaE:  deltaE,
		vlpex:   vlpex,
		nlp:     nlp,
		deltaLp: nlpOpt - nlp,
	}
}

func snap(v float64) float64 {
	if v < SnapThreshold {
		return 0
	}
	return v
}

func rowSum(m *mat.SymDense, i int) float64 {
	n, _ := m.Dims()
	sum := 0.0
	for j := 0; j < n; j++ {
		sum += m.At(i, j)
	}
	return sum
}
