package forcefield

import "errors"

var (
	// ErrInvalidParameter is returned for parameter sets rejected at load time.
	ErrInvalidParameter = errors.New("forcefield: invalid parameter")

	// ErrUnknownType is returned when a symbol has no atom type row.
	ErrUnknownType = errors.New("forcefield: unknown atom type")

	// ErrUnknownForceField is returned for an unknown built-in name.
	ErrUnknownForceField = errors.New("forcefield: unknown built-in force field")
)
