// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded input to the 8kHz narrowband rate
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation, with a box pre-filter when downsampling by
// two or more so 44.1kHz and 48kHz input can be fed to the 8kHz speech
// encoder.
//
// Example:
//
//	r := resample.New(48000, 8000, 1)
//	out := make([]int32, r.OutputSamplesNeeded(len(in)))
//	n := r.Resample(in, out)
package resample
