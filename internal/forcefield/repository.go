package forcefield

import (
	"fmt"
	"math"
	"sort"
)

// Repository is a read-only set of force-field tables once built. Lookups of
// absent pairs or triples report ok == false, which callers treat as "no
// contribution".
type Repository struct {
	Name    string
	General GeneralParameters

	types   []AtomType
	index   map[string]int
	pairs   map[PairKey]PairParameters
	triples map[TripleKey]TripleParameters
}

func New(name string, general GeneralParameters, types []AtomType) *Repository {
	r := &Repository{
		Name:    name,
		General: general,
		types:   make([]AtomType, len(types)),
		index:   make(map[string]int, len(types)),
		pairs:   make(map[PairKey]PairParameters),
		triples: make(map[TripleKey]TripleParameters),
	}
	copy(r.types, types)
	for i, t := range r.types {
		r.index[t.Symbol] = i
	}
	return r
}

func (r *Repository) NumTypes() int { return len(r.types) }

// Type returns the one-body row of type t. An out-of-range index is a
// programmer error and panics with an error wrapping ErrUnknownType.
func (r *Repository) Type(t int) AtomType {
	if t < 0 || t >= len(r.types) {
		panic(fmt.Errorf("%w: index %d out of range [0,%d)", ErrUnknownType, t, len(r.types)))
	}
	return r.types[t]
}

func (r *Repository) TypeIndex(symbol string) (int, error) {
	t, ok := r.index[symbol]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownType, symbol)
	}
	return t, nil
}

func (r *Repository) Symbols() []string {
	out := make([]string, len(r.types))
	for i, t := range r.types {
		out[i] = t.Symbol
	}
	return out
}

func (r *Repository) SetPair(a, b int, p PairParameters) {
	r.Type(a)
	r.Type(b)
	r.pairs[NewPairKey(a, b)] = p
}

func (r *Repository) SetTriple(i, j, k int, p TripleParameters) {
	r.Type(i)
	r.Type(j)
	r.Type(k)
	r.triples[NewTripleKey(i, j, k)] = p
}

func (r *Repository) Pair(a, b int) (PairParameters, bool) {
	p, ok := r.pairs[NewPairKey(a, b)]
	return p, ok
}

func (r *Repository) Triple(i, j, k int) (TripleParameters, bool) {
	p, ok := r.triples[NewTripleKey(i, j, k)]
	return p, ok
}

// PairKeys returns the defined pairs in ascending order.
func (r *Repository) PairKeys() []PairKey {
	keys := make([]PairKey, 0, len(r.pairs))
	for k := range r.pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].A != keys[j].A {
			return keys[i].A < keys[j].A
		}
		return keys[i].B < keys[j].B
	})
	return keys
}

func (r *Repository) TripleKeys() []TripleKey {
	keys := make([]TripleKey, 0, len(r.triples))
	for k := range r.triples {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Center != b.Center {
			return a.Center < b.Center
		}
		if a.A != b.A {
			return a.A < b.A
		}
		return a.B < b.B
	})
	return keys
}

// BondRadii resolves the sigma, pi and pi-pi equilibrium radii of a pair. A
// branch is 0 unless both atom types define a positive radius for it.
func (r *Repository) BondRadii(a, b int, p PairParameters) (sigma, pi, pipi float64) {
	ta, tb := r.Type(a), r.Type(b)
	sigma = resolveRadius(ta.RoSigma, tb.RoSigma, p.RoSigma)
	pi = resolveRadius(ta.RoPi, tb.RoPi, p.RoPi)
	pipi = resolveRadius(ta.RoPiPi, tb.RoPiPi, p.RoPiPi)
	return
}

func resolveRadius(ra, rb, override float64) float64 {
	if ra <= 0 || rb <= 0 {
		return 0
	}
	if override > 0 {
		return override
	}
	return 0.5 * (ra + rb)
}

// VdW resolves the van der Waals coefficients of a pair: explicit pair values
// win, otherwise the atom values are combined geometrically.
func (r *Repository) VdW(a, b int) (VdWParameters, bool) {
	if p, ok := r.Pair(a, b); ok && p.RVdW > 0 && p.Dij > 0 && p.GammaW > 0 {
		return VdWParameters{RVdW: p.RVdW, Dij: p.Dij, Alpha: p.Alpha, GammaW: p.GammaW}, true
	}
	ta, tb := r.Type(a), r.Type(b)
	if ta.RVdW <= 0 || tb.RVdW <= 0 || ta.EpsilonVdW <= 0 || tb.EpsilonVdW <= 0 || ta.GammaVdW <= 0 || tb.GammaVdW <= 0 {
		return VdWParameters{}, false
	}
	return VdWParameters{
		RVdW:   2 * math.Sqrt(ta.RVdW*tb.RVdW),
		Dij:    math.Sqrt(ta.EpsilonVdW * tb.EpsilonVdW),
		Alpha:  math.Sqrt(ta.AlphaVdW * tb.AlphaVdW),
		GammaW: math.Sqrt(ta.GammaVdW * tb.GammaVdW),
	}, true
}

// CoulombShielding returns the term added to r^3 in the Coulomb kernel. An
// explicit pair value wins; otherwise it is (gamma_a*gamma_b)^(-3/2) from the
// EEM shielding of the atom types, or 0 when either type lacks one.
func (r *Repository) CoulombShielding(a, b int) float64 {
	if p, ok := r.Pair(a, b); ok && p.GammaCoulomb > 0 {
		return p.GammaCoulomb
	}
	ga, gb := r.Type(a).GammaEEM, r.Type(b).GammaEEM
	if ga <= 0 || gb <= 0 {
		return 0
	}
	return math.Pow(ga*gb, -1.5)
}

// Validate rejects parameter sets that cannot be evaluated.
func (r *Repository) Validate() error {
	if len(r.types) == 0 {
		return fmt.Errorf("%w: no atom types", ErrInvalidParameter)
	}
	g := r.General
	if g.BondOrderCutoff < 0 {
		return fmt.Errorf("%w: bond_order_cutoff must be non-negative, got %g", ErrInvalidParameter, g.BondOrderCutoff)
	}
	if g.TaperRadius <= 0 {
		return fmt.Errorf("%w: taper_radius must be positive, got %g", ErrInvalidParameter, g.TaperRadius)
	}
	if g.PvdW <= 0 {
		return fmt.Errorf("%w: pvdw must be positive, got %g", ErrInvalidParameter, g.PvdW)
	}
	if g.Pboc2 == 0 {
		return fmt.Errorf("%w: pboc2 must be non-zero", ErrInvalidParameter)
	}
	if err := r.validateTypes(); err != nil {
		return err
	}

	for k, p := range r.pairs {
		sigma, pi, pipi := r.BondRadii(k.A, k.B, p)
		if sigma > 0 && p.Pbo2 == 0 || pi > 0 && p.Pbo4 == 0 || pipi > 0 && p.Pbo6 == 0 {
			return fmt.Errorf("%w: pair %s-%s has a bond radius without its exponent",
				ErrInvalidParameter, r.types[k.A].Symbol, r.types[k.B].Symbol)
		}
	}
	return nil
}

func (r *Repository) validateTypes() error {
	seen := make(map[string]bool, len(r.types))
	for i, t := range r.types {
		if t.Symbol == "" {
			return fmt.Errorf("%w: atom type %d has no symbol", ErrInvalidParameter, i)
		}
		if seen[t.Symbol] {
			return fmt.Errorf("%w: duplicate atom type %q", ErrInvalidParameter, t.Symbol)
		}
		seen[t.Symbol] = true
		if t.Mass <= 0 {
			return fmt.Errorf("%w: atom type %q has non-positive mass %g", ErrInvalidParameter, t.Symbol, t.Mass)
		}
		if t.Valency <= 0 {
			return fmt.Errorf("%w: atom type %q has non-positive valency %g", ErrInvalidParameter, t.Symbol, t.Valency)
		}
	}
	return nil
}
