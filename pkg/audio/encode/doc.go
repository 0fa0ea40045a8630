// ABOUTME: Audio encoder package for raw PCM and AMR-NB output
// ABOUTME: Provides Encoder interface and implementations for PCM, AMR-NB
// Package encode provides audio encoders.
//
// Supports: PCM (8, 16 and 24-bit little-endian), AMR-NB through a bound
// codec library.
//
// All encoders accept int32 samples in 24-bit range. The AMR-NB encoder
// expects 8kHz mono input and emits storage-format frames whose first
// byte is the frame header.
//
// Example:
//
//	b, err := amrnb.Open(amrnb.DefaultLibrary)
//	enc, err := encode.NewAMR(b, audio.Narrowband(audio.CodecAMRNB), amrnb.MR122, false)
//	frames, err := enc.EncodeFrames(samples)
package encode
