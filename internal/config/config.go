package config

import (
	"fmt"
	"os"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"github.com/san-kum/reaxsim/internal/md"
	"github.com/san-kum/reaxsim/internal/reaxff"
	"gopkg.in/yaml.v3"
)

const (
	DefaultForceField    = "cho"
	DefaultSystem        = "water"
	DefaultWorkers       = 1
	DefaultBondThreshold = 0.3
	DefaultScanFrom      = 0.8
	DefaultScanTo        = 3.0
	DefaultScanPoints    = 45
	DefaultReplicas      = 1
)

type Config struct {
	// ForceField is a built-in name or a YAML path. Empty takes the force
	// field of the system preset, or DefaultForceField.
	ForceField string `yaml:"forcefield"`
	// System is a preset name or a YAML path.
	System        string     `yaml:"system"`
	Workers       int        `yaml:"workers"`
	Charges       string     `yaml:"charges"`
	BondThreshold float64    `yaml:"bond_threshold"`
	MD            MDConfig   `yaml:"md"`
	Scan          ScanConfig `yaml:"scan"`
}

type MDConfig struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	// Temperature seeds Maxwell-Boltzmann velocities when positive.
	Temperature float64 `yaml:"temperature"`
	Seed        int64   `yaml:"seed"`
	ForceStep   float64 `yaml:"force_step"`
	Replicas    int     `yaml:"replicas"`
}

// ScanConfig moves atom Atoms[1] along the line from Atoms[0] and evaluates
// the energy at Points distances between From and To.
type ScanConfig struct {
	Atoms  [2]int  `yaml:"atoms,flow"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Points int     `yaml:"points"`
}

func DefaultConfig() *Config {
	mdDefaults := md.DefaultConfig()
	return &Config{
		System:        DefaultSystem,
		Workers:       DefaultWorkers,
		Charges:       reaxff.ChargesFixed.String(),
		BondThreshold: DefaultBondThreshold,
		MD: MDConfig{
			Integrator: mdDefaults.Integrator,
			Dt:         mdDefaults.Dt,
			Steps:      mdDefaults.Steps,
			ForceStep:  mdDefaults.ForceStep,
			Replicas:   DefaultReplicas,
		},
		Scan: ScanConfig{
			Atoms:  [2]int{0, 1},
			From:   DefaultScanFrom,
			To:     DefaultScanTo,
			Points: DefaultScanPoints,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MD.Dt <= 0 {
		return fmt.Errorf("md.dt must be positive, got %f", c.MD.Dt)
	}
	if c.MD.Steps <= 0 {
		return fmt.Errorf("md.steps must be positive, got %d", c.MD.Steps)
	}
	if c.MD.Temperature < 0 {
		return fmt.Errorf("md.temperature must not be negative, got %f", c.MD.Temperature)
	}
	if c.Scan.Points < 2 {
		return fmt.Errorf("scan.points must be at least 2, got %d", c.Scan.Points)
	}
	if !(c.Scan.From > 0) || c.Scan.To <= c.Scan.From {
		return fmt.Errorf("scan range must satisfy 0 < from < to, got [%f, %f]", c.Scan.From, c.Scan.To)
	}
	if c.Scan.Atoms[0] == c.Scan.Atoms[1] {
		return fmt.Errorf("scan atoms must differ, got %v", c.Scan.Atoms)
	}
	_, err := reaxff.ParseChargeMode(c.Charges)
	return err
}

func (c *Config) EngineOptions() (reaxff.Options, error) {
	mode, err := reaxff.ParseChargeMode(c.Charges)
	if err != nil {
		return reaxff.Options{}, err
	}
	return reaxff.Options{Workers: c.Workers, Charges: mode}, nil
}

func (c *Config) MDSettings() (md.Config, error) {
	opts, err := c.EngineOptions()
	if err != nil {
		return md.Config{}, err
	}
	return md.Config{
		Dt:         c.MD.Dt,
		Steps:      c.MD.Steps,
		Integrator: c.MD.Integrator,
		ForceStep:  c.MD.ForceStep,
		Engine:     opts,
	}, nil
}

// ForceFieldName resolves which force field the run uses.
func (c *Config) ForceFieldName() string {
	if c.ForceField != "" {
		return c.ForceField
	}
	if p := GetPreset(c.System); p != nil && p.ForceField != "" {
		return p.ForceField
	}
	return DefaultForceField
}

// LoadForceField returns the built-in set of that name, or loads the name as
// a YAML path.
func (c *Config) LoadForceField() (*forcefield.Repository, error) {
	name := c.ForceFieldName()
	for _, b := range forcefield.BuiltinNames() {
		if b == name {
			return forcefield.Builtin(name)
		}
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w: %s is neither built in nor a readable file", forcefield.ErrUnknownForceField, name)
	}
	return forcefield.Load(name)
}

// LoadSystem resolves the system preset or file against ff.
func (c *Config) LoadSystem(ff *forcefield.Repository) (*atoms.System, error) {
	if p := GetPreset(c.System); p != nil {
		return p.System.Build(ff)
	}
	f, err := LoadSystem(c.System)
	if err != nil {
		return nil, err
	}
	return f.Build(ff)
}
