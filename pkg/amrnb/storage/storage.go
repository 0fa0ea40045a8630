// ABOUTME: Reader and Writer for AMR-NB storage files
// ABOUTME: Frames are sized from the frame type in each header byte
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
)

// Magic opens every single-channel AMR-NB file
const Magic = "#!AMR\n"

var (
	// ErrBadMagic is returned when a stream does not start with Magic
	ErrBadMagic = errors.New("storage: not an AMR-NB file")

	// ErrInvalidFrameType is returned for frame types with no defined size
	ErrInvalidFrameType = errors.New("storage: invalid frame type")
)

// Writer writes AMR-NB frames to an underlying stream
type Writer struct {
	w      io.Writer
	frames int
}

// NewWriter writes the file magic and returns a Writer for the frames
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, Magic); err != nil {
		return nil, fmt.Errorf("failed to write magic: %w", err)
	}
	return &Writer{w: w}, nil
}

// WriteFrame writes one IETF-framed frame, header byte included.
// The stored header always has the quality bit set; frame is not modified.
func (w *Writer) WriteFrame(frame []byte) error {
	if len(frame) == 0 {
		return fmt.Errorf("storage: empty frame")
	}
	ft := amrnb.UnpackHeader(frame[0])
	if !ft.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFrameType, ft)
	}
	n, _ := ft.PayloadSize()
	if len(frame) < 1+n {
		return fmt.Errorf("storage: %s frame has %d bytes, need %d", ft, len(frame), 1+n)
	}

	out := make([]byte, 1+n)
	copy(out, frame)
	out[0] |= amrnb.QualityBit
	if _, err := w.w.Write(out); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written
func (w *Writer) Frames() int {
	return w.frames
}

// Reader reads AMR-NB frames from an underlying stream
type Reader struct {
	r      *bufio.Reader
	frames int
}

// NewReader checks the file magic and returns a Reader positioned at the first frame
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, ErrBadMagic
	}
	return &Reader{r: br}, nil
}

// ReadFrame returns the next frame including its header byte, or io.EOF
func (r *Reader) ReadFrame() ([]byte, error) {
	header, err := r.r.ReadByte()
	if err != nil {
		return nil, err
	}

	ft := amrnb.UnpackHeader(header)
	if !ft.Valid() {
		return nil, fmt.Errorf("%w: %d in frame %d", ErrInvalidFrameType, ft, r.frames)
	}
	n, _ := ft.PayloadSize()

	frame := make([]byte, 1+n)
	frame[0] = header
	if _, err := io.ReadFull(r.r, frame[1:]); err != nil {
		return nil, fmt.Errorf("truncated %s frame %d: %w", ft, r.frames, io.ErrUnexpectedEOF)
	}
	r.frames++
	return frame, nil
}

// Frames returns the number of frames read so far
func (r *Reader) Frames() int {
	return r.frames
}
