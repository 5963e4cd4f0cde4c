package forcefield

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a force-field parameter set. Pairs and triples
// refer to atom types by symbol.
type File struct {
	Name    string            `yaml:"name"`
	General GeneralParameters `yaml:"general"`
	Atoms   []AtomType        `yaml:"atoms"`
	Pairs   []PairEntry       `yaml:"pairs"`
	Triples []TripleEntry     `yaml:"triples"`
}

type PairEntry struct {
	Types          [2]string `yaml:"types"`
	PairParameters `yaml:",inline"`
}

type TripleEntry struct {
	Types            [3]string `yaml:"types"`
	TripleParameters `yaml:",inline"`
}

func Load(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Repository, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("forcefield: decode: %w", err)
	}
	return f.Build()
}

// Build resolves symbols to type indices and validates the result.
func (f *File) Build() (*Repository, error) {
	r := New(f.Name, f.General, f.Atoms)
	if err := r.validateTypes(); err != nil {
		return nil, err
	}

	for _, p := range f.Pairs {
		a, err := r.TypeIndex(p.Types[0])
		if err != nil {
			return nil, fmt.Errorf("pair %v: %w", p.Types, err)
		}
		b, err := r.TypeIndex(p.Types[1])
		if err != nil {
			return nil, fmt.Errorf("pair %v: %w", p.Types, err)
		}
		r.SetPair(a, b, p.PairParameters)
	}

	for _, t := range f.Triples {
		idx := [3]int{}
		for n, sym := range t.Types {
			ti, err := r.TypeIndex(sym)
			if err != nil {
				return nil, fmt.Errorf("triple %v: %w", t.Types, err)
			}
			idx[n] = ti
		}
		r.SetTriple(idx[0], idx[1], idx[2], t.TripleParameters)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Export converts a repository back to its YAML layout.
func (r *Repository) Export() *File {
	f := &File{
		Name:    r.Name,
		General: r.General,
		Atoms:   make([]AtomType, len(r.types)),
	}
	copy(f.Atoms, r.types)

	for _, k := range r.PairKeys() {
		f.Pairs = append(f.Pairs, PairEntry{
			Types:          [2]string{r.types[k.A].Symbol, r.types[k.B].Symbol},
			PairParameters: r.pairs[k],
		})
	}
	for _, k := range r.TripleKeys() {
		p := r.triples[k]
		f.Triples = append(f.Triples, TripleEntry{
			Types:            [3]string{r.types[k.A].Symbol, r.types[k.Center].Symbol, r.types[k.B].Symbol},
			TripleParameters: p,
		})
	}
	return f
}

func Save(path string, r *Repository) error {
	data, err := yaml.Marshal(r.Export())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
