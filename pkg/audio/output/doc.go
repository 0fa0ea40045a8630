// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and oto implementation
// Package output plays decoded speech through the system audio device.
//
// The oto backend takes int32 samples in 24-bit range, applies software
// volume and writes 16-bit little-endian PCM.
//
// Example:
//
//	out := output.NewOto(80)
//	err := out.Open(8000, 1)
//	err = out.Write(samples)
//	out.Drain()
package output
