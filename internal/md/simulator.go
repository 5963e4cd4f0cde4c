package md

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/dynamo"
	"github.com/san-kum/reaxsim/internal/forcefield"
	"github.com/san-kum/reaxsim/internal/integrators"
	"github.com/san-kum/reaxsim/internal/metrics"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

// Frame is the energy bookkeeping of one recorded step.
type Frame struct {
	Step        int     `json:"step"`
	Time        float64 `json:"time_fs"`
	Kinetic     float64 `json:"kinetic"`
	Potential   float64 `json:"potential"`
	Total       float64 `json:"total"`
	Temperature float64 `json:"temperature"`
}

type Result struct {
	Frames      []Frame
	Final       dynamo.State
	StepsTaken  int
	EnergyDrift float64
	Metrics     map[string]float64
}

// Series extracts one column of the recorded frames.
func (r *Result) Series(field func(Frame) float64) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = field(f)
	}
	return out
}

type Simulator struct {
	sys        *System
	integrator dynamo.Integrator
	metrics    []metrics.Metric
	observers  []dynamo.Observer
}

func NewSimulator(sys *System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]metrics.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric)    { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) frame(step int, t float64, x dynamo.State) (Frame, error) {
	pe, err := s.sys.Potential(x)
	if err != nil {
		return Frame{}, err
	}
	ke := s.sys.Kinetic(x)
	return Frame{
		Step:        step,
		Time:        t,
		Kinetic:     ke,
		Potential:   pe,
		Total:       ke + pe,
		Temperature: s.sys.Temperature(x),
	}, nil
}

// Run advances x0 by cfg.Steps steps of cfg.Dt femtoseconds, recording a
// frame before the first step and after every step. On failure the partial
// result is returned with a *dynamo.SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system needs %d",
			dynamo.ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	f0, err := s.frame(0, t, x)
	if err != nil {
		return nil, err
	}
	result.Frames = append(result.Frames, f0)
	result.Final = x

	fail := func(step int, err error) (*Result, error) {
		return result, &dynamo.SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: err}
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, nil, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		newX := s.integrator.Step(s.sys, x, nil, t, cfg.Dt)
		if err := s.sys.Err(); err != nil {
			return fail(i, err)
		}
		if cfg.ValidateState && !newX.IsValid() {
			return fail(i, dynamo.ErrInvalidState)
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++
		result.Final = x

		f, err := s.frame(i+1, t, x)
		if err != nil {
			return fail(i, err)
		}
		result.Frames = append(result.Frames, f)
	}

	last := result.Frames[len(result.Frames)-1]
	if f0.Total != 0 {
		result.EnergyDrift = math.Abs(last.Total-f0.Total) / math.Abs(f0.Total)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Config is everything Run needs besides the snapshot and its parameters.
type Config struct {
	// Dt is the time step in femtoseconds.
	Dt         float64
	Steps      int
	Integrator string
	// ForceStep is the finite-difference displacement in angstrom.
	ForceStep float64
	Engine    reaxff.Options
}

func DefaultConfig() Config {
	return Config{
		Dt:         0.25,
		Steps:      200,
		Integrator: "verlet",
		ForceStep:  reaxff.DefaultForceStep,
		Engine:     reaxff.DefaultOptions(),
	}
}

// stabilityLimit flags atoms moving faster than 1 angstrom/fs.
const stabilityLimit = 1.0

// Run integrates sys from its stored positions and velocities. sys is not
// modified; the returned System turns Result.Final back into a snapshot.
func Run(ctx context.Context, sys *atoms.System, ff *forcefield.Repository, cfg Config) (*Result, *System, error) {
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}
	msys, err := NewSystem(sys, ff, cfg.Engine, cfg.ForceStep)
	if err != nil {
		return nil, nil, err
	}

	s := NewSimulator(msys, integ)
	s.AddMetric(metrics.NewEnergyDrift(msys))
	s.AddMetric(metrics.NewTemperature(msys))
	s.AddMetric(metrics.NewStability(stabilityLimit))

	res, err := s.Run(ctx, msys.State(), dynamo.Config{Dt: cfg.Dt, Steps: cfg.Steps, ValidateState: true})
	return res, msys, err
}
