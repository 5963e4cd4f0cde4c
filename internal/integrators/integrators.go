package integrators

import (
	"fmt"

	"github.com/san-kum/reaxsim/internal/dynamo"
)

// Names lists the integrators accepted by New.
func Names() []string {
	return []string{"verlet", "leapfrog"}
}

func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "verlet":
		return NewVerlet(), nil
	case "leapfrog":
		return NewLeapfrog(), nil
	}
	return nil, fmt.Errorf("%w: unknown integrator %q (available: %v)", dynamo.ErrParameterBounds, name, Names())
}
