// Package md integrates a ReaxFF snapshot in time.
//
// System adapts the energy engine to dynamo.System over the state
// [positions(3N) | velocities(3N)], with forces taken by finite differences
// of the total energy. Units are angstrom, femtosecond, amu and kcal/mol.
package md
