// Package stoch provides the shared primitives of the L-spline simulator.
//
// A generalized Lévy process s is defined by L s = w, where L is a linear
// differential operator and w is an impulsive white noise. The packages of
// this module build the pieces of that equation:
//
//   - [Impulse] and [Realization]: one draw of the impulse train w
//   - [Series]: plain (times, values) data handed to plotting and export
//   - [DomainError], [StateError], [Warning]: the error kinds shared by
//     the law, impulse, operator and spline packages
//
// # Example
//
//	op, _ := operator.New([]float64{1, 1}, nil)
//	jumps, _ := law.NewGaussian(0, 1)
//	proc := spline.New(op, jumps, rng)
//	_ = proc.SetRate(2)
//	_ = proc.Sample(10)
//	path, _ := proc.GridPath(10, 0.01)
//
// # Thread Safety
//
// Operators and discrete operators are immutable and may be shared.
// Laws and spline processes hold mutable state and are NOT thread-safe.
package stoch
