// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats, sample conversions and channel downmixing
package audio

import "fmt"

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	// NarrowbandRate is the AMR-NB sample rate
	NarrowbandRate = 8000
)

// Codec names used in Format
const (
	CodecPCM   = "pcm"
	CodecAMRNB = "amr-nb"
	CodecMP3   = "mp3"
	CodecFLAC  = "flac"
)

// Format describes audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Narrowband returns the 8kHz mono 16-bit format AMR-NB operates on
func Narrowband(codec string) Format {
	return Format{
		Codec:      codec,
		SampleRate: NarrowbandRate,
		Channels:   1,
		BitDepth:   16,
	}
}

// IsNarrowband reports whether f matches the AMR-NB sample layout
func (f Format) IsNarrowband() bool {
	return f.SampleRate == NarrowbandRate && f.Channels == 1
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch %dbit", f.Codec, f.SampleRate, f.Channels, f.BitDepth)
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}

// SampleFromBits scales a sample of the given bit depth into 24-bit range
func SampleFromBits(sample int32, bitDepth int) int32 {
	switch {
	case bitDepth < 24:
		return sample << (24 - bitDepth)
	case bitDepth > 24:
		return sample >> (bitDepth - 24)
	}
	return sample
}

// Downmix averages interleaved multi-channel samples into mono
func Downmix(samples []int32, channels int) []int32 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	mono := make([]int32, frames)
	for i := 0; i < frames; i++ {
		var sum int64
		for ch := 0; ch < channels; ch++ {
			sum += int64(samples[i*channels+ch])
		}
		mono[i] = int32(sum / int64(channels))
	}
	return mono
}
