package dynamo

import (
	"fmt"
	"math"
)

// State is a flat phase-space vector. Molecular states are laid out as
// [positions(3N) | velocities(3N)].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Half splits a [positions | velocities] state without copying.
func (s State) Half() (pos, vel State) {
	h := len(s) / 2
	return s[:h], s[h:]
}

type Control []float64

// System is dX/dt = f(X, u, t). For second-order systems the derivative of a
// [positions | velocities] state is [velocities | accelerations].
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrParameterBounds, c.Steps)
	}
	return nil
}
