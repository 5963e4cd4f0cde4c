// Package dynamo provides the state and integrator primitives shared by the
// molecular dynamics driver.
//
//   - [State]: flat [positions | velocities] vector
//   - [System]: dX/dt = f(X, u, t)
//   - [Integrator]: advances a State by one step
//   - [ParallelFor]: chunked fan-out with a barrier
//
// # Thread Safety
//
// States are plain slices; callers own them. [ParallelFor] gives each chunk a
// disjoint index range and returns only after every chunk finishes.
package dynamo
