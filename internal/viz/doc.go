// Package viz draws spline process paths in the terminal.
//
//   - [Canvas]: Braille pixel canvas, 2x4 dots per cell
//   - [Plot]: path and impulse stems scaled onto a canvas
//   - [Model]: interactive Bubble Tea viewer
//
// # Key Bindings
//
//	R / Space - draw a new realization
//	Up/Down   - raise or lower the Poisson rate by 25%
//	C         - toggle the continuous-time overlay
//	T         - cycle color themes
//	?         - show help
//	Q         - quit
package viz
