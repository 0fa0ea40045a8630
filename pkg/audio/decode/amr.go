// ABOUTME: AMR-NB audio decoder
// ABOUTME: Splits IETF-framed AMR-NB data and decodes each frame to int32 samples
package decode

import (
	"fmt"

	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio"
)

// decoderID tags the native decoder state
const decoderID = "Decoder"

// AMRDecoder decodes IETF-framed AMR-NB audio
type AMRDecoder struct {
	binding *amrnb.Binding
	state   amrnb.DecoderState
	pcm     []int16
	frames  int
	closed  bool
}

// NewAMR creates an AMR-NB decoder on top of a bound codec
func NewAMR(binding *amrnb.Binding, format audio.Format) (*AMRDecoder, error) {
	if format.Codec != audio.CodecAMRNB {
		return nil, fmt.Errorf("invalid codec for AMR-NB decoder: %s", format.Codec)
	}
	if !format.IsNarrowband() {
		return nil, fmt.Errorf("unsupported format: %dHz %dch (AMR-NB needs 8000Hz mono)", format.SampleRate, format.Channels)
	}
	if binding == nil {
		return nil, fmt.Errorf("AMR-NB codec not bound")
	}

	d := &AMRDecoder{
		binding: binding,
		pcm:     make([]int16, amrnb.FrameSamples),
	}
	if status := binding.DecodeInit(&d.state, decoderID); status != 0 {
		return nil, fmt.Errorf("AMR-NB decoder init failed: status %d", status)
	}
	return d, nil
}

// Decode converts one or more concatenated frames to int32 samples
func (d *AMRDecoder) Decode(data []byte) ([]int32, error) {
	if d.closed {
		return nil, fmt.Errorf("decoder closed")
	}

	var samples []int32
	for off := 0; off < len(data); {
		ft := amrnb.UnpackHeader(data[off])
		n, ok := ft.PayloadSize()
		if !ok {
			return nil, fmt.Errorf("invalid AMR-NB frame type %d at offset %d", ft, off)
		}
		if off+1+n > len(data) {
			return nil, fmt.Errorf("truncated %s frame at offset %d: have %d bytes, need %d", ft, off, len(data)-off-1, n)
		}

		status, err := d.binding.Decode(&d.state, ft, data[off+1:off+1+n], d.pcm, amrnb.InputMIMEIETF)
		if err != nil {
			return nil, err
		}
		if status < 0 {
			return nil, fmt.Errorf("AMR-NB decode failed at offset %d: status %d", off, status)
		}

		for _, s := range d.pcm {
			samples = append(samples, audio.SampleFromInt16(s))
		}
		d.frames++
		off += 1 + n
	}
	return samples, nil
}

// Frames returns the number of frames decoded so far
func (d *AMRDecoder) Frames() int {
	return d.frames
}

// Close releases the native decoder state
func (d *AMRDecoder) Close() error {
	if d.closed {
		return nil
	}
	d.binding.DecodeExit(&d.state)
	d.closed = true
	return nil
}
