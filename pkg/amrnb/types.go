// ABOUTME: AMR-NB codec constants and enumerations
// ABOUTME: Defines modes, frame types, bitstream formats and frame sizes
package amrnb

import (
	"fmt"
	"strings"
)

const (
	// SampleRate is the AMR-NB sampling rate in Hz
	SampleRate = 8000

	// FrameSamples is the number of 16-bit samples in one 20ms frame
	FrameSamples = 160

	// MaxFrameBytes is the largest encoded frame including its header byte
	MaxFrameBytes = 32
)

// Status is the raw return value of a native codec call
type Status int32

// StatusClosed is returned by the init calls of a closed Binding without
// reaching the library
const StatusClosed Status = -1

// Mode selects the encoder bit rate
type Mode int32

const (
	MR475 Mode = iota
	MR515
	MR59
	MR67
	MR74
	MR795
	MR102
	MR122
	MRDTX
)

var modeNames = [...]string{"MR475", "MR515", "MR59", "MR67", "MR74", "MR795", "MR102", "MR122", "MRDTX"}

var modeBitrates = [...]int{4750, 5150, 5900, 6700, 7400, 7950, 10200, 12200}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int32(m))
	}
	return modeNames[m]
}

// Bitrate returns the speech bit rate of the mode in bits per second, or 0 for MRDTX
func (m Mode) Bitrate() int {
	if m < 0 || int(m) >= len(modeBitrates) {
		return 0
	}
	return modeBitrates[m]
}

// ParseMode accepts either a mode name ("MR122") or its rate in kbit/s ("12.2")
func ParseMode(s string) (Mode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range modeNames[:MRDTX] {
		if s == name {
			return Mode(i), nil
		}
		if s == fmt.Sprintf("%g", float64(modeBitrates[i])/1000) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown AMR-NB mode: %q", s)
}

// FrameType is the 4-bit frame descriptor the encoder reports for each frame
type FrameType uint8

const (
	FrameMR475 FrameType = iota
	FrameMR515
	FrameMR59
	FrameMR67
	FrameMR74
	FrameMR795
	FrameMR102
	FrameMR122
	FrameSID
	FrameNoData FrameType = 15
)

// payloadSizes holds the octet-aligned payload length per frame type,
// excluding the header byte. Types 9-14 carry nothing AMR-NB can decode.
var payloadSizes = [16]int{12, 13, 15, 17, 19, 20, 26, 31, 5, -1, -1, -1, -1, -1, -1, 0}

// PayloadSize returns the number of speech bytes following the header byte
func (f FrameType) PayloadSize() (int, bool) {
	if f > 15 {
		return 0, false
	}
	n := payloadSizes[f]
	return n, n >= 0
}

// Valid reports whether frames of this type can be stored or decoded
func (f FrameType) Valid() bool {
	_, ok := f.PayloadSize()
	return ok
}

func (f FrameType) String() string {
	switch {
	case f <= FrameMR122:
		return Mode(f).String()
	case f == FrameSID:
		return "SID"
	case f == FrameNoData:
		return "NO_DATA"
	}
	return fmt.Sprintf("FrameType(%d)", uint8(f))
}

// OutputFormat is the bitstream layout requested from the native encoder
type OutputFormat int32

const (
	OutputWMF OutputFormat = iota
	OutputIF2
	OutputETS
	OutputIETF
)

// InputFormat is the bitstream layout handed to the native decoder
type InputFormat int32

const (
	InputMIMEIETF InputFormat = iota
	InputIF2
	InputETS
)

// NativeOutputFormat is the only output format ever passed to the native
// encoder. Older platform builds do not implement IETF output, so Encode
// requests WMF and repacks the header byte itself.
const NativeOutputFormat = OutputWMF

// QualityBit is the Q flag of an IETF header byte; clear marks a damaged frame
const QualityBit = 0x04

// PackHeader returns the IETF header byte for a frame type, Q bit clear
func PackHeader(f FrameType) byte {
	return byte(f&0x0F) << 3
}

// UnpackHeader extracts the frame type from an IETF header byte
func UnpackHeader(b byte) FrameType {
	return FrameType(b>>3) & 0x0F
}
