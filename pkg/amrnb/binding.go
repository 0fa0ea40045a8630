// ABOUTME: Symbol table resolution and call forwarding for the AMR-NB codec
// ABOUTME: Bind resolves six entry points in order and returns a usable Binding
package amrnb

import (
	"fmt"
	"log"
	"unsafe"
)

// DefaultLibrary is the platform library exporting the AMR-NB entry points
const DefaultLibrary = "libstagefright.so"

// Exported symbol names, in the order Bind resolves them
const (
	SymbolDecode     = "AMRDecode"
	SymbolDecodeExit = "Speech_Decode_Frame_exit"
	SymbolDecodeInit = "GSMInitDecode"
	SymbolEncodeInit = "AMREncodeInit"
	SymbolEncodeExit = "AMREncodeExit"
	SymbolEncode     = "AMREncode"
)

// Library is a loaded codec provider
type Library interface {
	// Resolve looks up symbol and binds it into fptr, a pointer to a func
	// variable with the symbol's signature
	Resolve(symbol string, fptr any) error

	// Close releases the library handle
	Close() error
}

// Loader opens a library by name
type Loader func(name string) (Library, error)

// table holds the native entry points. Pointer arguments are Go memory the
// callee only uses for the duration of the call; codec state is C memory kept
// as uintptr.
type table struct {
	decode     func(state uintptr, frameType int32, bits, pcm unsafe.Pointer, format int32) int32
	decodeExit func(state unsafe.Pointer)
	decodeInit func(state unsafe.Pointer, id string) int32
	encodeInit func(enc, sid unsafe.Pointer, dtx int32) int32
	encodeExit func(enc, sid unsafe.Pointer)
	encode     func(enc, sid uintptr, mode int32, pcm, out, frameType unsafe.Pointer, format int32) int32
}

type symbol struct {
	name string
	fptr any
}

func (t *table) symbols() []symbol {
	return []symbol{
		{SymbolDecode, &t.decode},
		{SymbolDecodeExit, &t.decodeExit},
		{SymbolDecodeInit, &t.decodeInit},
		{SymbolEncodeInit, &t.encodeInit},
		{SymbolEncodeExit, &t.encodeExit},
		{SymbolEncode, &t.encode},
	}
}

// Binding is a fully resolved codec symbol table
type Binding struct {
	name   string
	lib    Library
	fn     table
	closed bool
}

// EncoderState holds the native encoder and SID sync handles
type EncoderState struct {
	enc uintptr
	sid uintptr
}

// DecoderState holds the native decoder handle
type DecoderState struct {
	state uintptr
}

// Open loads the named library and binds the codec entry points
func Open(name string) (*Binding, error) {
	return OpenWith(OpenLibrary, name)
}

// OpenWith is Open with a caller-supplied loader
func OpenWith(load Loader, name string) (*Binding, error) {
	lib, err := load(name)
	if err != nil {
		log.Printf("AMR-NB library %s not available: %v", name, err)
		return nil, &BindError{Kind: MissingLibrary, Name: name, Err: err}
	}

	b, err := Bind(lib)
	if err != nil {
		log.Printf("AMR-NB library %s unusable: %v", name, err)
		_ = lib.Close()
		return nil, err
	}
	b.name = name

	log.Printf("AMR-NB codec bound from %s", name)
	return b, nil
}

// Bind resolves every codec symbol from lib, stopping at the first one missing
func Bind(lib Library) (*Binding, error) {
	b := &Binding{lib: lib}
	for _, s := range b.fn.symbols() {
		if err := lib.Resolve(s.name, s.fptr); err != nil {
			return nil, &BindError{Kind: MissingSymbol, Name: s.name, Err: err}
		}
	}
	return b, nil
}

// Name returns the library name the binding was opened from
func (b *Binding) Name() string {
	return b.name
}

// Close releases the underlying library. The entry points go with it:
// afterwards Encode and Decode return ErrClosed, the init calls return
// StatusClosed and the exit calls do nothing. Close is not safe to call
// concurrently with codec calls.
func (b *Binding) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.fn = table{}
	return b.lib.Close()
}

// EncodeInit allocates native encoder state
func (b *Binding) EncodeInit(st *EncoderState, dtx bool) Status {
	if b.closed {
		return StatusClosed
	}
	var flag int32
	if dtx {
		flag = 1
	}
	return Status(b.fn.encodeInit(unsafe.Pointer(&st.enc), unsafe.Pointer(&st.sid), flag))
}

// EncodeExit frees native encoder state
func (b *Binding) EncodeExit(st *EncoderState) {
	if b.closed {
		return
	}
	b.fn.encodeExit(unsafe.Pointer(&st.enc), unsafe.Pointer(&st.sid))
}

// Encode compresses one 160-sample frame into out.
//
// The requested format is ignored: the native encoder is always asked for
// NativeOutputFormat and out[0] is then overwritten with PackHeader of the
// reported frame type, so the result is IETF framed. The status is the native
// return value, normally the number of bytes written.
func (b *Binding) Encode(st *EncoderState, mode Mode, pcm []int16, out []byte, requested OutputFormat) (Status, FrameType, error) {
	if b.closed {
		return 0, 0, ErrClosed
	}
	if len(pcm) < FrameSamples {
		return 0, 0, fmt.Errorf("%w: %d samples, need %d", ErrShortBuffer, len(pcm), FrameSamples)
	}
	if len(out) < MaxFrameBytes {
		return 0, 0, fmt.Errorf("%w: %d output bytes, need %d", ErrShortBuffer, len(out), MaxFrameBytes)
	}

	var ft int32
	status := b.fn.encode(st.enc, st.sid, int32(mode),
		unsafe.Pointer(&pcm[0]), unsafe.Pointer(&out[0]), unsafe.Pointer(&ft),
		int32(NativeOutputFormat))

	frameType := FrameType(ft) & 0x0F
	out[0] = PackHeader(frameType)
	return Status(status), frameType, nil
}

// Decode expands the speech bits of one frame into 160 samples
func (b *Binding) Decode(st *DecoderState, frameType FrameType, bits []byte, pcm []int16, format InputFormat) (Status, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if len(pcm) < FrameSamples {
		return 0, fmt.Errorf("%w: %d samples, need %d", ErrShortBuffer, len(pcm), FrameSamples)
	}
	if n, ok := frameType.PayloadSize(); ok && len(bits) < n {
		return 0, fmt.Errorf("%w: %d bytes for %s frame, need %d", ErrShortBuffer, len(bits), frameType, n)
	}

	// NO_DATA frames carry no bits but the decoder still expects a pointer
	var empty [MaxFrameBytes]byte
	in := unsafe.Pointer(&empty[0])
	if len(bits) > 0 {
		in = unsafe.Pointer(&bits[0])
	}

	status := b.fn.decode(st.state, int32(frameType), in, unsafe.Pointer(&pcm[0]), int32(format))
	return Status(status), nil
}

// DecodeInit allocates native decoder state tagged with id
func (b *Binding) DecodeInit(st *DecoderState, id string) Status {
	if b.closed {
		return StatusClosed
	}
	return Status(b.fn.decodeInit(unsafe.Pointer(&st.state), id))
}

// DecodeExit frees native decoder state
func (b *Binding) DecodeExit(st *DecoderState) {
	if b.closed {
		return
	}
	b.fn.decodeExit(unsafe.Pointer(&st.state))
}
