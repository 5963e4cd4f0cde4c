package reaxff

import (
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
)

const (
	typeC = 0
	typeH = 1
	typeO = 2
)

func mustBuiltin(name string) *forcefield.Repository {
	ff, err := forcefield.Builtin(name)
	if err != nil {
		panic(err)
	}
	return ff
}

// withoutTriples rebuilds ff with its three-body table dropped.
func withoutTriples(ff *forcefield.Repository) *forcefield.Repository {
	f := ff.Export()
	f.Triples = nil
	out, err := f.Build()
	if err != nil {
		panic(err)
	}
	return out
}

// withCorrections rebuilds ff with the bond-order correction flags of every
// pair set to the given values.
func withCorrections(ff *forcefield.Repository, overcoord, oneThree bool) *forcefield.Repository {
	f := ff.Export()
	for i := range f.Pairs {
		f.Pairs[i].OvercoordCorrection = overcoord
		f.Pairs[i].OneThreeCorrection = oneThree
	}
	out, err := f.Build()
	if err != nil {
		panic(err)
	}
	return out
}

func withoutCorrections(ff *forcefield.Repository) *forcefield.Repository {
	return withCorrections(ff, false, false)
}

// piOnly has a single type that bonds through its pi branch alone.
func piOnly(cutoff float64) *forcefield.Repository {
	g := mustBuiltin("sigma").General
	g.BondOrderCutoff = cutoff
	r := forcefield.New("pi", g, []forcefield.AtomType{
		{Symbol: "Y", Mass: 12, Valency: 2, ValenceElectrons: 4, ValencyBoc: 2, ValencyVal: 2, RoSigma: -1, RoPi: 1.2, RoPiPi: -1},
	})
	r.SetPair(0, 0, forcefield.PairParameters{Pbo3: -0.1, Pbo4: 1})
	return r
}

// coordinationRig is a hand-filled two-atom evaluation for the
// coordination terms. Atom 0 has the given mass override; the type itself
// weighs 12 amu.
func coordinationRig(mass float64) *Evaluation {
	g := mustBuiltin("sigma").General
	g.Povun3, g.Povun4 = 1, 0
	g.Povun6 = 1
	g.Povun7, g.Povun8 = 0, 0
	ff := forcefield.New("rig", g, []forcefield.AtomType{
		{Symbol: "Z", Mass: 12, Valency: 4, ValenceElectrons: 4, ValencyBoc: 4, ValencyVal: 4, RoSigma: 1.4, Plp2: 2, Povun5: 1},
	})
	ff.SetPair(0, 0, forcefield.PairParameters{DeSigma: 100, Povun1: 0.5})

	sys := dimer(0, 1.4)
	sys.Atoms[0].Mass = mass
	bo := newBondOrders(2)
	bo.Total.SetSym(0, 1, 1.5)
	bo.Sigma.SetSym(0, 1, 1)
	bo.Pi.SetSym(0, 1, 0.5)
	return &Evaluation{System: sys, Params: ff, BO: bo, Charges: make([]float64, 2)}
}

func atom(id, typ int, mass float64, x, y, z float64) atoms.Atom {
	return atoms.Atom{ID: id, Type: typ, Mass: mass, Position: [3]float64{x, y, z}}
}

func dimer(typ int, r float64) *atoms.System {
	return atoms.New([]atoms.Atom{
		atom(0, typ, 12, 0, 0, 0),
		atom(1, typ, 12, r, 0, 0),
	})
}

func ozone() *atoms.System {
	return atoms.New([]atoms.Atom{
		atom(0, typeO, 15.999, 0, 0, 0),
		atom(1, typeO, 15.999, 1.2, 0, 0),
		atom(2, typeO, 15.999, 2.0, 0.8, 0),
	})
}

func water() *atoms.System {
	half := 104.5 / 2 * math.Pi / 180
	return atoms.New([]atoms.Atom{
		atom(0, typeO, 15.999, 0, 0, 0),
		atom(1, typeH, 1.008, 0.9572*math.Sin(half), 0.9572*math.Cos(half), 0),
		atom(2, typeH, 1.008, -0.9572*math.Sin(half), 0.9572*math.Cos(half), 0),
	})
}

// hydrocarbonCluster is a deterministic, irregular C/H/O arrangement large
// enough to be split across several workers.
func hydrocarbonCluster(n int) *atoms.System {
	list := make([]atoms.Atom, n)
	for i := range list {
		f := float64(i)
		list[i] = atom(i, i%3, 12, 1.3*math.Mod(f, 4)+0.07*f, 1.25*math.Mod(math.Floor(f/4), 4)+0.03*f, 1.4*math.Floor(f/16))
	}
	return atoms.New(list)
}
