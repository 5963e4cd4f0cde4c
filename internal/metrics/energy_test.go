package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/reaxsim/internal/dynamo"
)

// spring is a unit oscillator in [x | v] layout with unit mass, reporting
// v^2 as its temperature.
type spring struct{}

func (spring) Energy(x dynamo.State) float64      { return 0.5*x[0]*x[0] + 0.5*x[1]*x[1] }
func (spring) Temperature(x dynamo.State) float64 { return x[1] * x[1] }

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(spring{})

	m.Observe(dynamo.State{1, 0}, nil, 0)
	m.Observe(dynamo.State{0, 1.1}, nil, 1)
	m.Observe(dynamo.State{1, 0}, nil, 2)

	want := math.Abs(0.5*1.21-0.5) / 0.5
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("Value() = %v, want %v", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("Value() after Reset = %v, want 0", m.Value())
	}
}

func TestTemperature(t *testing.T) {
	m := NewTemperature(spring{})
	if m.Value() != 0 {
		t.Errorf("Value() with no samples = %v, want 0", m.Value())
	}

	m.Observe(dynamo.State{0, 1}, nil, 0)
	m.Observe(dynamo.State{0, 3}, nil, 1)
	if m.Value() != 5 {
		t.Errorf("Value() = %v, want 5", m.Value())
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		name   string
		states []dynamo.State
		want   float64
	}{
		{"none", nil, 1},
		{"calm", []dynamo.State{{0, 0.1}, {0, -0.2}}, 1},
		{"one fast", []dynamo.State{{0, 0.1}, {0, 5}}, 0.5},
		{"nan", []dynamo.State{{0, math.NaN()}}, 0},
		{"positions ignored", []dynamo.State{{100, 0.1}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStability(1)
			for _, x := range tt.states {
				m.Observe(x, nil, 0)
			}
			if got := m.Value(); got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}
