// Package analysis summarizes sampled paths of a spline process.
//
//   - [Summarize]: count, mean, variance and range of a series
//   - [PowerSpectrum]: one-sided power spectrum of a uniformly sampled series
//   - [DominantFrequency]: the non-zero frequency carrying the most power
//   - [Compare]: largest gap between two paths sampled on the same grid
//
// # Example
//
//	path, _ := proc.GridPath(10, 0.01)
//	sum := analysis.Summarize(path)
//	f, _ := analysis.DominantFrequency(path)
package analysis
