package reaxff

import (
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func mustEvaluation(sys *atoms.System, ff *forcefield.Repository) *Evaluation {
	c, err := NewEvaluation(sys, ff, DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Taper", func() {
	It("is one at the origin and zero at the cutoff", func() {
		tap, dtap := Taper(0, 10)
		Expect(tap).To(Equal(1.0))
		Expect(dtap).To(BeZero())

		tap, dtap = Taper(10, 10)
		Expect(tap).To(BeZero())
		Expect(dtap).To(BeZero())
	})

	It("is zero beyond the cutoff", func() {
		tap, dtap := Taper(12.5, 10)
		Expect(tap).To(BeZero())
		Expect(dtap).To(BeZero())
	})

	It("approaches zero smoothly from below the cutoff", func() {
		tap, dtap := Taper(9.999, 10)
		Expect(tap).To(BeNumerically("~", 0, 1e-12))
		Expect(dtap).To(BeNumerically("~", 0, 1e-9))
	})

	It("returns its own derivative", func() {
		const h = 1e-6
		for _, r := range []float64{1, 3.5, 7, 9} {
			plus, _ := Taper(r+h, 10)
			minus, _ := Taper(r-h, 10)
			_, dtap := Taper(r, 10)
			Expect(dtap).To(BeNumerically("~", (plus-minus)/(2*h), 1e-7), "r = %v", r)
		}
	})

	It("decreases monotonically across the window", func() {
		prev := 1.0
		for r := 0.5; r < 10; r += 0.5 {
			tap, _ := Taper(r, 10)
			Expect(tap).To(BeNumerically("<", prev))
			prev = tap
		}
	})
})

var _ = Describe("pair terms", func() {
	var cho *forcefield.Repository

	BeforeEach(func() {
		cho = mustBuiltin("cho")
	})

	It("is symmetric in the atom order", func() {
		sys := water()
		sys.Atoms[0].Charge = -0.6
		sys.Atoms[1].Charge = 0.3
		sys.Atoms[2].Charge = 0.3
		c := mustEvaluation(sys, cho)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				Expect(c.VanDerWaals(i, j)).To(Equal(c.VanDerWaals(j, i)))
				Expect(c.Coulomb(i, j)).To(Equal(c.Coulomb(j, i)))
				Expect(c.BondEnergy(i, j)).To(Equal(c.BondEnergy(j, i)))
			}
		}
	})

	It("is zero for an atom paired with itself", func() {
		c := mustEvaluation(water(), cho)
		Expect(c.VanDerWaals(1, 1)).To(BeZero())
		Expect(c.Coulomb(1, 1)).To(BeZero())
		Expect(c.BondEnergy(1, 1)).To(BeZero())
	})

	It("drops vdW and Coulomb beyond the taper radius", func() {
		sys := dimer(typeO, 10.5)
		sys.Atoms[0].Charge = 1
		sys.Atoms[1].Charge = -1
		c := mustEvaluation(sys, cho)
		Expect(c.VanDerWaals(0, 1)).To(BeZero())
		Expect(c.Coulomb(0, 1)).To(BeZero())
	})

	It("attracts opposite charges and scales with their product", func() {
		sys := dimer(typeO, 3)
		sys.Atoms[0].Charge = 0.5
		sys.Atoms[1].Charge = -0.5
		e1 := mustEvaluation(sys, cho).Coulomb(0, 1)
		Expect(e1).To(BeNumerically("<", 0))

		sys.Atoms[1].Charge = -1
		e2 := mustEvaluation(sys, cho).Coulomb(0, 1)
		Expect(e2).To(BeNumerically("~", 2*e1, 1e-12))
	})

	It("binds a sigma dimer at short range", func() {
		c := mustEvaluation(dimer(0, 1.2), mustBuiltin("sigma"))
		Expect(c.BondEnergy(0, 1)).To(BeNumerically("<", 0))

		far := mustEvaluation(dimer(0, 4.0), mustBuiltin("sigma"))
		Expect(far.BondEnergy(0, 1)).To(BeZero())
	})
})

var _ = Describe("valence terms", func() {
	var c *Evaluation

	BeforeEach(func() {
		c = coordinationRig(0)
	})

	Describe("LonePairEnergy", func() {
		It("is plp2 times the deficit once the switch is saturated", func() {
			c.BO.Dev.DeltapLp[0] = 0.5
			Expect(c.LonePairEnergy(0)).To(BeNumerically("~", 2*0.5/(1+math.Exp(-37.5)), 1e-15))
			Expect(c.LonePairEnergy(0)).To(BeNumerically("~", 1, 1e-12))
		})

		It("vanishes at the optimum and is negligible for a surplus", func() {
			Expect(c.LonePairEnergy(0)).To(BeZero())
			c.BO.Dev.DeltapLp[0] = -0.5
			e := c.LonePairEnergy(0)
			Expect(e).To(BeNumerically("<", 0))
			Expect(e).To(BeNumerically(">", -1e-15))
		})

		It("is zero for a type without plp2", func() {
			d := mustEvaluation(dimer(0, 1.2), mustBuiltin("sigma"))
			d.BO.Dev.DeltapLp[0] = 0.5
			Expect(d.LonePairEnergy(0)).To(BeZero())
		})
	})

	Describe("the neighbour sum", func() {
		BeforeEach(func() {
			c.BO.Dev.Delta[1] = 0.2
			c.BO.Dev.DeltapLp[0] = 0.5
		})

		It("subtracts the lone-pair deviation for light atoms", func() {
			s, _ := c.coordination(0)
			Expect(s).To(BeNumerically("~", (0.2-0.5)*0.5, 1e-15))
		})

		It("still counts an atom of exactly 21 amu as light", func() {
			c.System.Atoms[0].Mass = 21
			s, _ := c.coordination(0)
			Expect(s).To(BeNumerically("~", -0.15, 1e-15))
		})

		It("drops the lone-pair deviation above 21 amu", func() {
			c.System.Atoms[0].Mass = 21.5
			s, _ := c.coordination(0)
			Expect(s).To(BeNumerically("~", 0.2*0.5, 1e-15))
		})

		It("takes the heavy-atom switch from the atom's own mass", func() {
			heavy := coordinationRig(30)
			heavy.BO.Dev.Delta[1] = 0.2
			heavy.BO.Dev.DeltapLp[0] = 0.5
			Expect(heavy.mass(0)).To(Equal(30.0))
			Expect(heavy.atomType(0).Mass).To(Equal(12.0))
			s, _ := heavy.coordination(0)
			Expect(s).To(BeNumerically("~", 0.1, 1e-15))
		})

		It("falls back to the type mass without an override", func() {
			c.System.Atoms[0].Mass = 0
			Expect(c.mass(0)).To(Equal(12.0))
			s, _ := c.coordination(0)
			Expect(s).To(BeNumerically("~", -0.15, 1e-15))
		})

		It("halves the lone-pair correction with povun3 = 1 and povun4 = 0", func() {
			c.BO.Dev.Delta[0] = 1
			_, dlc := c.coordination(0)
			Expect(dlc).To(Equal(0.75))
		})
	})

	Describe("OverCoordination", func() {
		// sum povun1*De_sigma*BO = 0.5*100*1.5 and povun2 = 0 halves the result.
		const sumBO = 75.0

		It("matches the closed form for an overcoordinated atom", func() {
			c.BO.Dev.Delta[0] = 1
			want := sumBO * 1 / (1 + 4 + 1e-8) / 2
			Expect(c.OverCoordination(0)).To(BeNumerically("~", want, 1e-12))
			Expect(c.OverCoordination(0)).To(BeNumerically(">", 0))
		})

		It("stays finite when the corrected deviation cancels the valency", func() {
			c.BO.Dev.Delta[0] = -4
			e := c.OverCoordination(0)
			Expect(math.IsInf(e, 0) || math.IsNaN(e)).To(BeFalse())
			Expect(e).To(BeNumerically("~", sumBO*-4/1e-8/2, 1))
		})

		It("is zero for an atom without bonds", func() {
			c.BO.Total.SetSym(0, 1, 0)
			c.BO.Dev.Delta[0] = 1
			Expect(c.OverCoordination(0)).To(BeZero())
		})
	})

	Describe("UnderCoordination", func() {
		It("is negative for an undercoordinated atom", func() {
			c.BO.Dev.Delta[0] = -1
			want := -(1 - math.Exp(-1)) / 2
			Expect(c.UnderCoordination(0)).To(BeNumerically("~", want, 1e-12))
			Expect(c.UnderCoordination(0)).To(BeNumerically("~", -0.316060, 1e-6))
		})

		It("changes sign for an overcoordinated atom", func() {
			c.BO.Dev.Delta[0] = 1
			Expect(c.UnderCoordination(0)).To(BeNumerically("~", -(1-math.E)/2, 1e-12))
			Expect(c.UnderCoordination(0)).To(BeNumerically(">", 0))
		})

		It("is damped by neighbouring pi bonds through povun7 and povun8", func() {
			c.BO.Dev.Delta[0] = -1
			c.BO.Dev.Delta[1] = 0.2
			c.Params.General.Povun7, c.Params.General.Povun8 = 1, 2
			// Delta_lp stays 0, so s = 0.2*0.5 and the damping is 1+exp(0.2).
			want := -(1 - math.Exp(-1)) / 2 / (1 + math.Exp(0.2))
			Expect(c.UnderCoordination(0)).To(BeNumerically("~", want, 1e-12))
		})

		It("is zero for a type without povun5", func() {
			d := mustEvaluation(dimer(0, 1.2), mustBuiltin("sigma"))
			Expect(d.UnderCoordination(0)).To(BeZero())
		})
	})
})

var _ = Describe("index checks", func() {
	It("panics with an IndexError for an atom out of range", func() {
		c := mustEvaluation(water(), mustBuiltin("cho"))
		Expect(func() { c.VanDerWaals(0, 3) }).To(PanicWith(BeAssignableToTypeOf(IndexError{})))
		Expect(func() { c.LonePairEnergy(-1) }).To(PanicWith(BeAssignableToTypeOf(IndexError{})))
		Expect(func() { c.PenaltyEnergy(0, 1, 7) }).To(PanicWith(BeAssignableToTypeOf(IndexError{})))
	})

	It("panics with an IndexError for an unknown atom type", func() {
		sys := water()
		sys.Atoms[1].Type = 9
		Expect(func() { _, _ = NewEvaluation(sys, mustBuiltin("cho"), DefaultOptions()) }).
			To(PanicWith(Equal(IndexError{Kind: "type", Index: 9, Len: 3})))
	})
})

var _ = Describe("three-body terms", func() {
	var cho *forcefield.Repository

	BeforeEach(func() {
		cho = mustBuiltin("cho")
	})

	It("gives finite penalty and coalition energies for ozone", func() {
		c := mustEvaluation(ozone(), cho)
		for _, e := range []float64{c.PenaltyEnergy(0, 1, 2), c.CoalitionEnergy(0, 1, 2), c.AngleEnergy(0, 1, 2)} {
			Expect(math.IsNaN(e)).To(BeFalse())
			Expect(math.IsInf(e, 0)).To(BeFalse())
		}
		Expect(c.PenaltyEnergy(0, 1, 2)).To(BeNumerically(">=", 0))
	})

	It("gives zero without a triple row", func() {
		c := mustEvaluation(ozone(), withoutTriples(cho))
		Expect(c.PenaltyEnergy(0, 1, 2)).To(BeZero())
		Expect(c.CoalitionEnergy(0, 1, 2)).To(BeZero())
		Expect(c.AngleEnergy(0, 1, 2)).To(BeZero())
	})

	It("gives zero when an atom repeats", func() {
		c := mustEvaluation(ozone(), cho)
		Expect(c.PenaltyEnergy(0, 1, 0)).To(BeZero())
		Expect(c.CoalitionEnergy(1, 1, 2)).To(BeZero())
	})

	It("is symmetric in the outer atoms", func() {
		c := mustEvaluation(ozone(), cho)
		Expect(c.PenaltyEnergy(0, 1, 2)).To(BeNumerically("~", c.PenaltyEnergy(2, 1, 0), 1e-12))
		Expect(c.CoalitionEnergy(0, 1, 2)).To(BeNumerically("~", c.CoalitionEnergy(2, 1, 0), 1e-12))
		Expect(c.AngleEnergy(0, 1, 2)).To(BeNumerically("~", c.AngleEnergy(2, 1, 0), 1e-12))
	})
})

var _ = Describe("Evaluate", func() {
	It("rejects an empty system", func() {
		_, err := Evaluate(atoms.New(nil), mustBuiltin("cho"), DefaultOptions())
		Expect(err).To(MatchError(ErrEmptySystem))
	})

	It("rejects coincident atoms", func() {
		_, err := Evaluate(dimer(typeO, 0), mustBuiltin("cho"), DefaultOptions())
		Expect(err).To(MatchError(ErrDegenerateGeometry))
	})

	It("sums every term into a finite total", func() {
		res, err := Evaluate(water(), mustBuiltin("cho"), DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		e := res.Energies
		Expect(e.Total()).To(BeNumerically("~",
			e.VdW+e.Coulomb+e.Bond+e.LonePair+e.Over+e.Under+e.Penalty+e.Coalition+e.Angle, 1e-12))
		Expect(e.Map()).To(HaveKeyWithValue("total", e.Total()))
		Expect(e.Terms()).To(HaveLen(9))
		Expect(e.Bond).To(BeNumerically("<", 0))
		Expect(res.BondOrders().Bonds(0.3)).To(HaveLen(2))
	})

	It("gives the same energies for any worker count", func() {
		sys := hydrocarbonCluster(24)
		serial, err := Evaluate(sys, mustBuiltin("cho"), Options{Workers: 1})
		Expect(err).NotTo(HaveOccurred())
		parallel, err := Evaluate(sys, mustBuiltin("cho"), Options{Workers: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel.Energies).To(Equal(serial.Energies))
	})
})
