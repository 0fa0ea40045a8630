// ABOUTME: AMR-NB audio encoder
// ABOUTME: Buffers int32 samples into 20ms frames and encodes them through the platform codec
package encode

import (
	"fmt"

	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio"
)

// AMREncoder encodes 8kHz mono audio to IETF-framed AMR-NB
type AMREncoder struct {
	binding *amrnb.Binding
	state   amrnb.EncoderState
	mode    amrnb.Mode
	pending []int16
	out     []byte
	frames  int
	closed  bool
}

// NewAMR creates an AMR-NB encoder on top of a bound codec
func NewAMR(binding *amrnb.Binding, format audio.Format, mode amrnb.Mode, dtx bool) (*AMREncoder, error) {
	if format.Codec != audio.CodecAMRNB {
		return nil, fmt.Errorf("invalid codec for AMR-NB encoder: %s", format.Codec)
	}
	if !format.IsNarrowband() {
		return nil, fmt.Errorf("unsupported format: %dHz %dch (AMR-NB needs 8000Hz mono)", format.SampleRate, format.Channels)
	}
	if mode < amrnb.MR475 || mode > amrnb.MR122 {
		return nil, fmt.Errorf("unsupported encoder mode: %s", mode)
	}
	if binding == nil {
		return nil, fmt.Errorf("AMR-NB codec not bound")
	}

	e := &AMREncoder{
		binding: binding,
		mode:    mode,
		pending: make([]int16, 0, amrnb.FrameSamples),
		out:     make([]byte, amrnb.MaxFrameBytes),
	}
	if status := binding.EncodeInit(&e.state, dtx); status != 0 {
		return nil, fmt.Errorf("AMR-NB encoder init failed: status %d", status)
	}
	return e, nil
}

// Encode converts int32 samples to concatenated AMR-NB frames.
// Samples that do not fill a whole frame are held until the next call.
// On error the bytes of the frames encoded before the failure are returned.
func (e *AMREncoder) Encode(samples []int32) ([]byte, error) {
	frames, err := e.EncodeFrames(samples)
	var data []byte
	for _, f := range frames {
		data = append(data, f...)
	}
	return data, err
}

// EncodeFrames is Encode with each frame returned separately.
// On error the frames encoded before the failure are returned with it, and
// the failed frame's samples are dropped rather than retried.
func (e *AMREncoder) EncodeFrames(samples []int32) ([][]byte, error) {
	if e.closed {
		return nil, fmt.Errorf("encoder closed")
	}

	for _, s := range samples {
		e.pending = append(e.pending, audio.SampleToInt16(s))
	}

	var frames [][]byte
	var err error
	consumed := 0
	for len(e.pending)-consumed >= amrnb.FrameSamples {
		var frame []byte
		frame, err = e.encodeFrame(e.pending[consumed : consumed+amrnb.FrameSamples])
		// The native state has seen the frame either way
		consumed += amrnb.FrameSamples
		if err != nil {
			break
		}
		frames = append(frames, frame)
	}
	n := copy(e.pending, e.pending[consumed:])
	e.pending = e.pending[:n]

	return frames, err
}

// Flush zero-pads any held samples to a full frame and encodes it
func (e *AMREncoder) Flush() ([]byte, error) {
	if e.closed {
		return nil, fmt.Errorf("encoder closed")
	}
	if len(e.pending) == 0 {
		return nil, nil
	}
	for len(e.pending) < amrnb.FrameSamples {
		e.pending = append(e.pending, 0)
	}
	frame, err := e.encodeFrame(e.pending)
	e.pending = e.pending[:0]
	return frame, err
}

// Frames returns the number of frames encoded so far
func (e *AMREncoder) Frames() int {
	return e.frames
}

func (e *AMREncoder) encodeFrame(pcm []int16) ([]byte, error) {
	status, ft, err := e.binding.Encode(&e.state, e.mode, pcm, e.out, amrnb.OutputIETF)
	if err != nil {
		return nil, err
	}
	if status < 0 {
		return nil, fmt.Errorf("AMR-NB encode failed: status %d", status)
	}

	n, ok := ft.PayloadSize()
	if !ok {
		return nil, fmt.Errorf("AMR-NB encoder produced invalid frame type %d", ft)
	}

	frame := make([]byte, 1+n)
	copy(frame, e.out)
	e.frames++
	return frame, nil
}

// Close releases the native encoder state
func (e *AMREncoder) Close() error {
	if e.closed {
		return nil
	}
	e.binding.EncodeExit(&e.state)
	e.closed = true
	return nil
}
