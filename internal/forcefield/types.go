package forcefield

// GeneralParameters are the global scalars shared by every pair and triple.
type GeneralParameters struct {
	Pboc1           float64 `yaml:"pboc1"`
	Pboc2           float64 `yaml:"pboc2"`
	Plp1            float64 `yaml:"plp1"`
	BondOrderCutoff float64 `yaml:"bond_order_cutoff"`
	TaperRadius     float64 `yaml:"taper_radius"`
	PvdW            float64 `yaml:"pvdw"`
	Ppen2           float64 `yaml:"ppen2"`
	Ppen3           float64 `yaml:"ppen3"`
	Ppen4           float64 `yaml:"ppen4"`
	Pcoa2           float64 `yaml:"pcoa2"`
	Pcoa4           float64 `yaml:"pcoa4"`
	Povun3          float64 `yaml:"povun3"`
	Povun4          float64 `yaml:"povun4"`
	Povun6          float64 `yaml:"povun6"`
	Povun7          float64 `yaml:"povun7"`
	Povun8          float64 `yaml:"povun8"`
	Pval3           float64 `yaml:"pval3"`
}

// AtomType holds the one-body coefficients of a single element.
// A non-positive covalent radius means the element has no bond of that kind.
type AtomType struct {
	Symbol           string  `yaml:"symbol"`
	Mass             float64 `yaml:"mass"`
	Valency          float64 `yaml:"valency"`
	ValenceElectrons float64 `yaml:"valence_electrons"`
	ValencyBoc       float64 `yaml:"valency_boc"`
	ValencyVal       float64 `yaml:"valency_val"`
	RoSigma          float64 `yaml:"ro_sigma"`
	RoPi             float64 `yaml:"ro_pi"`
	RoPiPi           float64 `yaml:"ro_pipi"`
	RVdW             float64 `yaml:"rvdw"`
	EpsilonVdW       float64 `yaml:"epsilon_vdw"`
	AlphaVdW         float64 `yaml:"alpha_vdw"`
	GammaVdW         float64 `yaml:"gamma_vdw"`
	NlpOpt           float64 `yaml:"nlp_opt"`
	Plp2             float64 `yaml:"plp2"`
	Povun2           float64 `yaml:"povun2"`
	Povun5           float64 `yaml:"povun5"`
	Chi              float64 `yaml:"chi"`
	Eta              float64 `yaml:"eta"`
	GammaEEM         float64 `yaml:"gamma_eem"`
}

// PairParameters holds the two-body coefficients of an unordered type pair.
//
// Zero radii fall back to the arithmetic mean of the atom radii. Zero van der
// Waals values fall back to the combination rules in Repository.VdW.
// GammaCoulomb is the term added to r^3 in the shielded Coulomb kernel.
type PairParameters struct {
	RoSigma float64 `yaml:"ro_sigma"`
	RoPi    float64 `yaml:"ro_pi"`
	RoPiPi  float64 `yaml:"ro_pipi"`

	Pbo1 float64 `yaml:"pbo1"`
	Pbo2 float64 `yaml:"pbo2"`
	Pbo3 float64 `yaml:"pbo3"`
	Pbo4 float64 `yaml:"pbo4"`
	Pbo5 float64 `yaml:"pbo5"`
	Pbo6 float64 `yaml:"pbo6"`

	Pboc3 float64 `yaml:"pboc3"`
	Pboc4 float64 `yaml:"pboc4"`
	Pboc5 float64 `yaml:"pboc5"`

	DeSigma float64 `yaml:"de_sigma"`
	DePi    float64 `yaml:"de_pi"`
	DePiPi  float64 `yaml:"de_pipi"`
	Pbe1    float64 `yaml:"pbe1"`
	Pbe2    float64 `yaml:"pbe2"`
	Povun1  float64 `yaml:"povun1"`

	OvercoordCorrection bool `yaml:"overcoord_correction"`
	OneThreeCorrection  bool `yaml:"one_three_correction"`

	RVdW         float64 `yaml:"rvdw"`
	Dij          float64 `yaml:"dij"`
	Alpha        float64 `yaml:"alpha"`
	GammaW       float64 `yaml:"gamma_w"`
	GammaCoulomb float64 `yaml:"gamma_coulomb"`
}

// TripleParameters holds the three-body coefficients of an i-j-k angle with j
// at the centre. Theta0 is in degrees.
type TripleParameters struct {
	Theta0 float64 `yaml:"theta0"`
	Pval1  float64 `yaml:"pval1"`
	Pval2  float64 `yaml:"pval2"`
	Ppen1  float64 `yaml:"ppen1"`
	Pcoa1  float64 `yaml:"pcoa1"`
}

// VdWParameters are the resolved van der Waals coefficients of a pair.
type VdWParameters struct {
	RVdW   float64
	Dij    float64
	Alpha  float64
	GammaW float64
}

// PairKey identifies an unordered pair of type indices. Build it with
// NewPairKey so that A <= B.
type PairKey struct {
	A, B int
}

func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// TripleKey identifies an angle by its centre type and the sorted outer types.
type TripleKey struct {
	A, Center, B int
}

func NewTripleKey(i, j, k int) TripleKey {
	if i > k {
		i, k = k, i
	}
	return TripleKey{A: i, Center: j, B: k}
}
