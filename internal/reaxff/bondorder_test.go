package reaxff

import (
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"gonum.org/v1/gonum/mat"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func matrices(bo *BondOrders) map[string]*mat.SymDense {
	return map[string]*mat.SymDense{
		"total":             bo.Total,
		"sigma":             bo.Sigma,
		"pi":                bo.Pi,
		"pipi":              bo.PiPi,
		"uncorrected total": bo.UncorrectedTotal,
		"uncorrected sigma": bo.UncorrectedSigma,
		"uncorrected pi":    bo.UncorrectedPi,
		"uncorrected pipi":  bo.UncorrectedPiPi,
	}
}

var _ = Describe("ComputeBondOrders", func() {
	var (
		cho *forcefield.Repository
		sys *atoms.System
		bo  *BondOrders
	)

	BeforeEach(func() {
		cho = mustBuiltin("cho")
		sys = hydrocarbonCluster(20)
		bo = ComputeBondOrders(sys, cho, 1)
	})

	It("keeps every matrix symmetric with a zero diagonal", func() {
		for name, m := range matrices(bo) {
			for i := 0; i < bo.N; i++ {
				Expect(m.At(i, i)).To(BeZero(), "%s[%d][%d]", name, i, i)
				for j := 0; j < bo.N; j++ {
					Expect(m.At(i, j)).To(Equal(m.At(j, i)), "%s[%d][%d]", name, i, j)
				}
			}
		}
	})

	It("stores the total as the sum of its components", func() {
		for i := 0; i < bo.N; i++ {
			for j := 0; j < bo.N; j++ {
				Expect(bo.Total.At(i, j)).To(Equal(bo.Sigma.At(i, j) + bo.Pi.At(i, j) + bo.PiPi.At(i, j)))
				Expect(bo.UncorrectedTotal.At(i, j)).To(Equal(
					bo.UncorrectedSigma.At(i, j) + bo.UncorrectedPi.At(i, j) + bo.UncorrectedPiPi.At(i, j)))
			}
		}
	})

	It("never reports a component below the snap threshold", func() {
		for name, m := range matrices(bo) {
			// Uncorrected sigma and total carry the cutoff offset.
			if name == "uncorrected sigma" || name == "uncorrected total" {
				continue
			}
			for i := 0; i < bo.N; i++ {
				for j := 0; j < bo.N; j++ {
					v := m.At(i, j)
					Expect(v == 0 || v >= SnapThreshold).To(BeTrue(), "%s[%d][%d] = %g", name, i, j, v)
				}
			}
		}
	})

	It("panics with an IndexError for an unknown atom type", func() {
		sys.Atoms[4].Type = 7
		Expect(func() { ComputeBondOrders(sys, cho, 2) }).
			To(PanicWith(Equal(IndexError{Kind: "type", Index: 7, Len: 3})))
	})

	It("is idempotent on an unchanged snapshot", func() {
		again := ComputeBondOrders(sys, cho, 1)
		for name, m := range matrices(bo) {
			Expect(mat.Equal(m, matrices(again)[name])).To(BeTrue(), name)
		}
		Expect(again.Dev).To(Equal(bo.Dev))
	})

	It("does not depend on the worker count", func() {
		for _, workers := range []int{2, 3, 8} {
			par := ComputeBondOrders(sys, cho, workers)
			for name, m := range matrices(bo) {
				Expect(mat.Equal(m, matrices(par)[name])).To(BeTrue(), "%s with %d workers", name, workers)
			}
			Expect(par.Dev).To(Equal(bo.Dev))
		}
	})

	It("derives the deviations from the bond-order sums", func() {
		for i := 0; i < bo.N; i++ {
			t := cho.Type(sys.Atoms[i].Type)
			Expect(bo.Dev.Deltap[i]).To(BeNumerically("~", rowSum(bo.UncorrectedTotal, i)-t.Valency, 1e-12))
			Expect(bo.Dev.DeltapBoc[i]).To(BeNumerically("~", rowSum(bo.UncorrectedTotal, i)-t.ValencyBoc, 1e-12))
			Expect(bo.Dev.DeltaE[i]).To(BeNumerically("~", rowSum(bo.Total, i)-t.ValenceElectrons, 1e-12))
			Expect(bo.Dev.DeltapLp[i]).To(Equal(t.NlpOpt - bo.Dev.Nlp[i]))
		}
	})

	Context("with both corrections disabled", func() {
		It("leaves the corrected matrices equal to the uncorrected ones", func() {
			plain := ComputeBondOrders(sys, withoutCorrections(cho), 2)
			Expect(mat.Equal(plain.Pi, plain.UncorrectedPi)).To(BeTrue())
			Expect(mat.Equal(plain.PiPi, plain.UncorrectedPiPi)).To(BeTrue())
			for i := 0; i < plain.N; i++ {
				for j := 0; j < plain.N; j++ {
					Expect(plain.Sigma.At(i, j)).To(Equal(snap(plain.UncorrectedSigma.At(i, j))))
				}
			}
		})
	})

	Context("with only the one-three correction enabled", func() {
		It("applies f4 and f5 with f1 fixed at one", func() {
			ff := withCorrections(cho, false, true)
			d := ComputeBondOrders(sys, ff, 1)
			bonded := 0
			for i := 0; i < d.N; i++ {
				for j := i + 1; j < d.N; j++ {
					bop := d.UncorrectedTotal.At(i, j)
					if bop == 0 {
						continue
					}
					bonded++
					f1, f4, f5 := correctionFactors(ff, sys.Atoms[i].Type, sys.Atoms[j].Type, bop, d.Dev, i, j)
					Expect(f1).To(Equal(1.0))
					Expect(d.Pi.At(i, j)).To(Equal(snap(d.UncorrectedPi.At(i, j) * f4 * f5)))
				}
			}
			Expect(bonded).To(BeNumerically(">", 0))
		})
	})

	Context("with only the overcoordination correction enabled", func() {
		It("applies f1 with f4 and f5 fixed at one", func() {
			ff := withCorrections(cho, true, false)
			d := ComputeBondOrders(sys, ff, 1)
			bonded := 0
			for i := 0; i < d.N; i++ {
				for j := i + 1; j < d.N; j++ {
					bop := d.UncorrectedTotal.At(i, j)
					if bop == 0 {
						continue
					}
					bonded++
					f1, f4, f5 := correctionFactors(ff, sys.Atoms[i].Type, sys.Atoms[j].Type, bop, d.Dev, i, j)
					Expect(f4).To(Equal(1.0))
					Expect(f5).To(Equal(1.0))
					Expect(d.Sigma.At(i, j)).To(Equal(snap(d.UncorrectedSigma.At(i, j) * f1)))
					Expect(d.Pi.At(i, j)).To(Equal(snap(d.UncorrectedPi.At(i, j) * f1 * f1)))
				}
			}
			Expect(bonded).To(BeNumerically(">", 0))
		})
	})

	Describe("a sigma-only dimer", func() {
		var sigma *forcefield.Repository

		BeforeEach(func() {
			sigma = mustBuiltin("sigma")
		})

		It("matches the closed form at 1.2 angstrom", func() {
			d := ComputeBondOrders(dimer(0, 1.2), sigma, 1)
			want := 1.001*math.Exp(-0.1*math.Pow(1.2/1.3817, 6)) - 0.001
			Expect(d.Total.At(0, 1)).To(BeNumerically("~", 0.9579, 1e-4))
			Expect(d.Total.At(0, 1)).To(BeNumerically("~", want, 1e-12))
			Expect(d.Pi.At(0, 1)).To(BeZero())
			Expect(d.PiPi.At(0, 1)).To(BeZero())
		})

		It("decays monotonically with distance", func() {
			prev := math.Inf(1)
			for r := 0.8; r <= 2.6; r += 0.05 {
				s, pi, pipi := uncorrectedBondOrder(sigma, 0, 0, r)
				Expect(pi).To(BeZero())
				Expect(pipi).To(BeZero())
				Expect(s).To(BeNumerically("<", prev), "r = %.2f", r)
				Expect(s).To(BeNumerically(">", 0), "r = %.2f", r)
				prev = s
			}
		})

		It("is zero once the raw order drops below the cutoff", func() {
			s, pi, pipi := uncorrectedBondOrder(sigma, 0, 0, 4.0)
			Expect([]float64{s, pi, pipi}).To(Equal([]float64{0, 0, 0}))
		})
	})

	Describe("a pi-only dimer", func() {
		It("subtracts the cutoff from BO' even without a sigma branch", func() {
			ff := piOnly(0.1)
			d := ComputeBondOrders(dimer(0, 1.2), ff, 1)
			pi := math.Exp(-0.1)

			Expect(d.UncorrectedPi.At(0, 1)).To(BeNumerically("~", 0.904837, 1e-6))
			Expect(d.UncorrectedSigma.At(0, 1)).To(Equal(-0.1))
			Expect(d.UncorrectedTotal.At(0, 1)).To(BeNumerically("~", pi-0.1, 1e-12))
			Expect(d.Dev.Deltap[0]).To(BeNumerically("~", pi-0.1-2, 1e-12))
			Expect(d.Dev.DeltapBoc[1]).To(BeNumerically("~", pi-0.1-2, 1e-12))

			Expect(d.Sigma.At(0, 1)).To(BeZero())
			Expect(d.Pi.At(0, 1)).To(BeNumerically("~", pi, 1e-12))
		})

		It("is unbonded once the raw order is at or below the cutoff", func() {
			s, pi, pipi := uncorrectedBondOrder(piOnly(0.95), 0, 0, 1.2)
			Expect([]float64{s, pi, pipi}).To(Equal([]float64{0, 0, 0}))
		})
	})

	It("gives zero for pairs without a parameter row", func() {
		f := cho.Export()
		f.Pairs = f.Pairs[:0]
		bare, err := f.Build()
		Expect(err).NotTo(HaveOccurred())
		d := ComputeBondOrders(water(), bare, 1)
		Expect(mat.Sum(d.Total)).To(BeZero())
		Expect(mat.Sum(d.UncorrectedTotal)).To(BeZero())
	})
})

var _ = Describe("correction factors", func() {
	It("gives f1 = 1 when neither atom deviates and valencies match", func() {
		g := mustBuiltin("cho").General
		// f3 vanishes at zero deviation, leaving (val+f2)/(val+f2).
		Expect(overcoordFactor(g, 4, 4, 0, 0)).To(BeNumerically("~", 1, 1e-12))
	})

	It("shrinks f1 for overcoordinated atoms", func() {
		g := mustBuiltin("cho").General
		Expect(overcoordFactor(g, 4, 4, 0.5, 0.5)).To(BeNumerically("<", 1))
	})

	It("keeps f4 and f5 inside (0, 1)", func() {
		p := forcefield.PairParameters{Pboc3: 5, Pboc4: 3, Pboc5: 0.5}
		for _, d := range []float64{-1, 0, 0.5, 2} {
			f4, f5 := oneThreeFactors(p, 1.2, d, -d)
			Expect(f4).To(And(BeNumerically(">", 0), BeNumerically("<", 1)))
			Expect(f5).To(And(BeNumerically(">", 0), BeNumerically("<", 1)))
		}
	})

	It("snaps tiny values to exactly zero", func() {
		Expect(snap(5e-11)).To(BeZero())
		Expect(snap(-1e-3)).To(BeZero())
		Expect(snap(SnapThreshold)).To(Equal(SnapThreshold))
	})
})
