// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for AMR-NB, PCM, FLAC, MP3
// Package decode provides audio decoders for various codecs.
//
// Supports: AMR-NB (through a bound platform codec), PCM (16-bit and 24-bit),
// FLAC, MP3
//
// All decoders implement the Decoder interface and output int32 samples
// in 24-bit range. FLAC and MP3 decode a whole file per call and report the
// stream's real layout through FormatReporter.
//
// Example:
//
//	decoder, err := decode.NewAMR(binding, audio.Narrowband(audio.CodecAMRNB))
//	samples, err := decoder.Decode(frames)
package decode
