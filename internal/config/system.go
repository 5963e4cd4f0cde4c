package config

import (
	"fmt"
	"os"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"gopkg.in/yaml.v3"
)

// SystemFile is the YAML form of a snapshot. Atoms name their type by
// symbol so the file does not depend on the order of a force field's table.
type SystemFile struct {
	Name   string      `yaml:"name,omitempty"`
	Charge float64     `yaml:"charge"`
	Atoms  []AtomEntry `yaml:"atoms"`
}

type AtomEntry struct {
	Type     string     `yaml:"type"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
	Charge   float64    `yaml:"charge"`
	// Mass overrides the mass of the type when positive.
	Mass float64 `yaml:"mass,omitempty"`
}

func LoadSystem(path string) (*SystemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSystem(data)
}

func ParseSystem(data []byte) (*SystemFile, error) {
	var f SystemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func SaveSystem(path string, f *SystemFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build resolves symbols against ff and returns a system with IDs in file
// order.
func (f *SystemFile) Build(ff *forcefield.Repository) (*atoms.System, error) {
	list := make([]atoms.Atom, len(f.Atoms))
	for i, e := range f.Atoms {
		t, err := ff.TypeIndex(e.Type)
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", i, err)
		}
		mass := e.Mass
		if mass <= 0 {
			mass = ff.Type(t).Mass
		}
		list[i] = atoms.Atom{
			ID:       i,
			Type:     t,
			Position: e.Position,
			Velocity: e.Velocity,
			Mass:     mass,
			Charge:   e.Charge,
		}
	}
	sys := atoms.New(list)
	sys.Charge = f.Charge
	if !sys.IsValid() {
		return nil, fmt.Errorf("system %q has non-finite coordinates", f.Name)
	}
	return sys, nil
}

// FromSystem is the inverse of Build.
func FromSystem(name string, sys *atoms.System, ff *forcefield.Repository) *SystemFile {
	f := &SystemFile{Name: name, Charge: sys.Charge, Atoms: make([]AtomEntry, len(sys.Atoms))}
	for i, a := range sys.Atoms {
		t := ff.Type(a.Type)
		e := AtomEntry{
			Type:     t.Symbol,
			Position: a.Position,
			Velocity: a.Velocity,
			Charge:   a.Charge,
		}
		if a.Mass != t.Mass {
			e.Mass = a.Mass
		}
		f.Atoms[i] = e
	}
	return f
}
