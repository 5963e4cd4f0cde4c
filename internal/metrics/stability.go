package metrics

import (
	"math"

	"github.com/san-kum/reaxsim/internal/dynamo"
)

// Stability is the fraction of observed states whose velocities all stay
// below threshold. An exploding trajectory drives it towards zero.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, u dynamo.Control, t float64) {
	s.samples++
	_, vel := x.Half()
	for _, v := range vel {
		if math.IsNaN(v) || math.Abs(v) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
