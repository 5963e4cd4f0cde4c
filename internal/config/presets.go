package config

import "sort"

// Preset pairs a ready-made geometry with the force field it was drawn for.
type Preset struct {
	Description string
	ForceField  string
	System      *SystemFile
}

func at(symbol string, x, y, z float64) AtomEntry {
	return AtomEntry{Type: symbol, Position: [3]float64{x, y, z}}
}

var Presets = map[string]*Preset{
	"water": {
		Description: "H2O at the experimental geometry",
		ForceField:  "cho",
		System: &SystemFile{Name: "water", Atoms: []AtomEntry{
			at("O", 0, 0, 0),
			at("H", 0.7572, 0.5865, 0),
			at("H", -0.7572, 0.5865, 0),
		}},
	},
	"ozone": {
		Description: "bent O3 with unequal arms",
		ForceField:  "cho",
		System: &SystemFile{Name: "ozone", Atoms: []AtomEntry{
			at("O", 0, 0, 0),
			at("O", 1.2, 0, 0),
			at("O", 2.0, 0.8, 0),
		}},
	},
	"h2o2": {
		Description: "hydrogen peroxide, skewed",
		ForceField:  "cho",
		System: &SystemFile{Name: "h2o2", Atoms: []AtomEntry{
			at("O", 0, 0.7375, -0.05),
			at("O", 0, -0.7375, -0.05),
			at("H", 0.8, 0.89, 0.45),
			at("H", -0.8, -0.89, 0.45),
		}},
	},
	"methane": {
		Description: "tetrahedral CH4",
		ForceField:  "cho",
		System: &SystemFile{Name: "methane", Atoms: []AtomEntry{
			at("C", 0, 0, 0),
			at("H", 0.629, 0.629, 0.629),
			at("H", -0.629, -0.629, 0.629),
			at("H", -0.629, 0.629, -0.629),
			at("H", 0.629, -0.629, -0.629),
		}},
	},
	"co2": {
		Description: "linear carbon dioxide",
		ForceField:  "cho",
		System: &SystemFile{Name: "co2", Atoms: []AtomEntry{
			at("O", -1.16, 0, 0),
			at("C", 0, 0, 0),
			at("O", 1.16, 0, 0),
		}},
	},
	"formaldehyde": {
		Description: "planar H2CO",
		ForceField:  "cho",
		System: &SystemFile{Name: "formaldehyde", Atoms: []AtomEntry{
			at("C", 0, 0, 0),
			at("O", 1.21, 0, 0),
			at("H", -0.55, 0.94, 0),
			at("H", -0.55, -0.94, 0),
		}},
	},
	"dimer": {
		Description: "sigma-only dimer at 1.2 angstrom",
		ForceField:  "sigma",
		System: &SystemFile{Name: "dimer", Atoms: []AtomEntry{
			at("X", 0, 0, 0),
			at("X", 1.2, 0, 0),
		}},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
