package forcefield

import (
	"fmt"
	"sort"
)

// Built-in parameter sets. "cho" is an illustrative carbon/hydrogen/oxygen
// set in the shape of a ReaxFF combustion field, not a fitted one. "sigma" is
// a single element with only a sigma radius and a vdW wall, useful for dimer
// scans and short MD runs.
var builtins = map[string]func() *Repository{
	"cho":   cho,
	"sigma": sigmaOnly,
}

func Builtin(name string) (*Repository, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownForceField, name, BuiltinNames())
	}
	return fn(), nil
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultGeneral() GeneralParameters {
	return GeneralParameters{
		Pboc1:           50.0,
		Pboc2:           9.5469,
		Plp1:            6.0891,
		BondOrderCutoff: 0.001,
		TaperRadius:     10.0,
		PvdW:            1.5591,
		Ppen2:           6.929,
		Ppen3:           0.3989,
		Ppen4:           3.9954,
		Pcoa2:           26.5405,
		Pcoa4:           2.6962,
		Povun3:          50.0,
		Povun4:          0.6991,
		Povun6:          1.0588,
		Povun7:          12.1176,
		Povun8:          13.3056,
		Pval3:           1.0,
	}
}

func cho() *Repository {
	r := New("cho", defaultGeneral(), []AtomType{
		{
			Symbol: "C", Mass: 12.0, Valency: 4, ValenceElectrons: 4, ValencyBoc: 4, ValencyVal: 4,
			RoSigma: 1.3817, RoPi: 1.1341, RoPiPi: 1.2114,
			RVdW: 1.8903, EpsilonVdW: 0.1838, AlphaVdW: 9.7559, GammaVdW: 2.1346,
			NlpOpt: 0, Plp2: 0, Povun2: -4.1, Povun5: 34.935,
			Chi: 5.9666, Eta: 7.0, GammaEEM: 0.9,
		},
		{
			Symbol: "H", Mass: 1.008, Valency: 1, ValenceElectrons: 1, ValencyBoc: 1, ValencyVal: 1,
			RoSigma: 0.893, RoPi: -0.1, RoPiPi: -0.1,
			RVdW: 1.355, EpsilonVdW: 0.093, AlphaVdW: 8.223, GammaVdW: 33.2894,
			NlpOpt: 0, Plp2: 0, Povun2: -15.7683, Povun5: 0,
			Chi: 3.7248, Eta: 9.6093, GammaEEM: 0.8203,
		},
		{
			Symbol: "O", Mass: 15.999, Valency: 2, ValenceElectrons: 6, ValencyBoc: 4, ValencyVal: 4,
			RoSigma: 1.245, RoPi: 1.0548, RoPiPi: 0.9049,
			RVdW: 2.389, EpsilonVdW: 0.1, AlphaVdW: 9.73, GammaVdW: 13.8449,
			NlpOpt: 2, Plp2: 0.8, Povun2: -3.55, Povun5: 37.5,
			Chi: 8.5, Eta: 8.3122, GammaEEM: 1.0898,
		},
	})
	const c, h, o = 0, 1, 2

	r.SetPair(c, c, PairParameters{
		Pbo1: -0.0777, Pbo2: 6.7268, Pbo3: -0.1, Pbo4: 9.1628, Pbo5: -0.455, Pbo6: 37.6117,
		Pboc3: 5.0, Pboc4: 30.0, Pboc5: 7.0,
		DeSigma: 158.2004, DePi: 99.1897, DePiPi: 78.0, Pbe1: -0.7738, Pbe2: 0.459, Povun1: 0.4147,
		OvercoordCorrection: true, OneThreeCorrection: true,
	})
	r.SetPair(c, h, PairParameters{
		Pbo1: -0.05, Pbo2: 6.9136,
		Pboc3: 5.0, Pboc4: 30.0, Pboc5: 7.0,
		DeSigma: 169.476, Pbe1: -0.6083, Pbe2: 7.6522, Povun1: 0.7652,
		OvercoordCorrection: true,
	})
	r.SetPair(h, h, PairParameters{
		Pbo1: -0.079, Pbo2: 6.0552,
		DeSigma: 153.3934, Pbe1: -0.46, Pbe2: 6.25, Povun1: 0.73,
		OvercoordCorrection: true,
	})
	r.SetPair(c, o, PairParameters{
		Pbo1: -0.1502, Pbo2: 5.0451, Pbo3: -0.2288, Pbo4: 7.2062, Pbo5: -0.35, Pbo6: 25.0,
		Pboc3: 5.0, Pboc4: 30.0, Pboc5: 7.0,
		DeSigma: 158.6946, DePi: 107.4583, DePiPi: 23.3136, Pbe1: -0.424, Pbe2: 1.583, Povun1: 0.5322,
		OvercoordCorrection: true, OneThreeCorrection: true,
	})
	r.SetPair(o, o, PairParameters{
		Pbo1: -0.1055, Pbo2: 9.0, Pbo3: -0.1225, Pbo4: 5.5, Pbo5: -0.1055, Pbo6: 29.7503,
		Pboc3: 5.0, Pboc4: 30.0, Pboc5: 7.0,
		DeSigma: 142.2858, DePi: 145.0, DePiPi: 50.8293, Pbe1: 0.2506, Pbe2: 0.3451, Povun1: 0.6051,
		OvercoordCorrection: true, OneThreeCorrection: true,
	})
	r.SetPair(o, h, PairParameters{
		Pbo1: -0.092, Pbo2: 4.279,
		Pboc3: 5.0, Pboc4: 30.0, Pboc5: 7.0,
		DeSigma: 160.0, Pbe1: -0.5725, Pbe2: 1.115, Povun1: 0.5626,
		OvercoordCorrection: true,
	})

	r.SetTriple(o, o, o, TripleParameters{Theta0: 116.8, Pval1: 30.0, Pval2: 1.5, Ppen1: 50.0, Pcoa1: -2.0})
	r.SetTriple(h, o, h, TripleParameters{Theta0: 104.5, Pval1: 17.5, Pval2: 1.1})
	r.SetTriple(h, o, o, TripleParameters{Theta0: 100.0, Pval1: 20.0, Pval2: 1.0})
	r.SetTriple(h, c, h, TripleParameters{Theta0: 109.47, Pval1: 13.8, Pval2: 2.0})
	r.SetTriple(h, c, o, TripleParameters{Theta0: 109.47, Pval1: 15.0, Pval2: 1.5})
	r.SetTriple(o, c, o, TripleParameters{Theta0: 120.0, Pval1: 25.0, Pval2: 1.2, Ppen1: 40.0, Pcoa1: -1.5})
	return r
}

func sigmaOnly() *Repository {
	g := defaultGeneral()
	r := New("sigma", g, []AtomType{
		{
			Symbol: "X", Mass: 12.0, Valency: 4, ValenceElectrons: 4, ValencyBoc: 4, ValencyVal: 4,
			RoSigma: 1.3817, RoPi: -1, RoPiPi: -1,
			RVdW: 1.8903, EpsilonVdW: 0.1838, AlphaVdW: 9.7559, GammaVdW: 2.1346,
		},
	})
	r.SetPair(0, 0, PairParameters{Pbo1: -0.1, Pbo2: 6, DeSigma: 100, Pbe1: -0.5, Pbe2: 1.0, Povun1: 0.5})
	return r
}
