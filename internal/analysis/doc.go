// Package analysis characterises a recorded run from its per-frame counters.
//
//   - [Deltas]: per-frame rates from cumulative counters
//   - [PowerSpectrum]: mean-removed power spectrum of a rate series
//   - [DominantPeriod]: strongest periodicity in frames
//   - [Summarize]: the numbers printed by `bounce analyze`
//
// A box with few spheres tends to show a clear period in its wall hits
// (the crossing time of the viewport); a crowded one looks like noise.
package analysis
