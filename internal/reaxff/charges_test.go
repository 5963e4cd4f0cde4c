package reaxff

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/reaxsim/internal/atoms"
)

func TestEEMChargesConserveTotal(t *testing.T) {
	ff := mustBuiltin("cho")
	tests := []struct {
		name   string
		sys    *atoms.System
		charge float64
	}{
		{"water", water(), 0},
		{"ozone", ozone(), 0},
		{"cation", water(), 1},
		{"cluster", hydrocarbonCluster(12), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.sys.Charge = tt.charge
			q, err := EEMCharges(tt.sys, ff)
			if err != nil {
				t.Fatalf("EEMCharges() error: %v", err)
			}
			sum := 0.0
			for _, v := range q {
				sum += v
			}
			if math.Abs(sum-tt.charge) > 1e-9 {
				t.Errorf("sum(q) = %v, want %v", sum, tt.charge)
			}
		})
	}
}

func TestEEMChargesPolarity(t *testing.T) {
	q, err := EEMCharges(water(), mustBuiltin("cho"))
	if err != nil {
		t.Fatalf("EEMCharges() error: %v", err)
	}
	if q[0] >= 0 {
		t.Errorf("q(O) = %v, want negative", q[0])
	}
	if q[1] <= 0 || q[2] <= 0 {
		t.Errorf("q(H) = %v, %v, want positive", q[1], q[2])
	}
	if math.Abs(q[1]-q[2]) > 1e-9 {
		t.Errorf("symmetric hydrogens got %v and %v", q[1], q[2])
	}
}

func TestEEMChargesHomonuclear(t *testing.T) {
	q, err := EEMCharges(dimer(typeO, 1.3), mustBuiltin("cho"))
	if err != nil {
		t.Fatalf("EEMCharges() error: %v", err)
	}
	for i, v := range q {
		if math.Abs(v) > 1e-12 {
			t.Errorf("q[%d] = %v, want 0", i, v)
		}
	}
}

func TestEEMChargesEmpty(t *testing.T) {
	if _, err := EEMCharges(atoms.New(nil), mustBuiltin("cho")); !errors.Is(err, ErrEmptySystem) {
		t.Errorf("EEMCharges(empty) error = %v, want %v", err, ErrEmptySystem)
	}
}

func TestEvaluationUsesEEMCharges(t *testing.T) {
	sys := water()
	c, err := NewEvaluation(sys, mustBuiltin("cho"), Options{Workers: 1, Charges: ChargesEEM})
	if err != nil {
		t.Fatalf("NewEvaluation() error: %v", err)
	}
	if c.Charges[0] >= 0 {
		t.Errorf("q(O) = %v, want negative", c.Charges[0])
	}
	for i, a := range sys.Atoms {
		if a.Charge != 0 {
			t.Errorf("atom %d charge mutated to %v", i, a.Charge)
		}
	}
}

func TestParseChargeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ChargeMode
		wantErr bool
	}{
		{"", ChargesFixed, false},
		{"fixed", ChargesFixed, false},
		{"eem", ChargesEEM, false},
		{"qeq", ChargesFixed, true},
	}
	for _, tt := range tests {
		got, err := ParseChargeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChargeMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChargeMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && tt.in != "" && got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
