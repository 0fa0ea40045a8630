// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample conversion functions
// Package audio provides the audio types shared by the codec packages.
//
// Samples travel between packages as int32 values in 24-bit range, whatever
// the source bit depth. AMR-NB works on 8kHz mono 16-bit audio; Narrowband
// builds that format and Downmix folds multi-channel input down to it.
//
// Example:
//
//	format := audio.Narrowband(audio.CodecAMRNB)
//
//	// Convert 16-bit sample to 24-bit range
//	sample24 := audio.SampleFromInt16(sample16)
package audio
