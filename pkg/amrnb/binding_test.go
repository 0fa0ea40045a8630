// ABOUTME: Tests for symbol resolution and call forwarding
// ABOUTME: Uses an in-memory fake library in place of the platform codec
package amrnb

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

var errNoSymbol = errors.New("undefined symbol")

// fakeLibrary resolves symbols from a map of Go funcs and records lookups
type fakeLibrary struct {
	funcs    map[string]any
	resolved []string
	closed   bool
	closes   int
}

func (l *fakeLibrary) Resolve(symbol string, fptr any) error {
	l.resolved = append(l.resolved, symbol)
	fn, ok := l.funcs[symbol]
	if !ok {
		return errNoSymbol
	}
	reflect.ValueOf(fptr).Elem().Set(reflect.ValueOf(fn))
	return nil
}

func (l *fakeLibrary) Close() error {
	l.closed = true
	l.closes++
	return nil
}

// fakeCodec records the arguments of the last native calls
type fakeCodec struct {
	frameType     int32
	encodeStatus  int32
	decodeStatus  int32
	initStatus    int32
	gotFormat     int32
	gotMode       int32
	gotDTX        int32
	gotID         string
	gotDecodeFT   int32
	decodeExits   int
	encodeExits   int
	payloadMarker byte
}

func (c *fakeCodec) library() *fakeLibrary {
	return &fakeLibrary{funcs: map[string]any{
		SymbolDecode: func(state uintptr, frameType int32, bits, pcm unsafe.Pointer, format int32) int32 {
			c.gotDecodeFT = frameType
			c.gotFormat = format
			return c.decodeStatus
		},
		SymbolDecodeExit: func(state unsafe.Pointer) {
			c.decodeExits++
			*(*uintptr)(state) = 0
		},
		SymbolDecodeInit: func(state unsafe.Pointer, id string) int32 {
			c.gotID = id
			*(*uintptr)(state) = 0xd0
			return c.initStatus
		},
		SymbolEncodeInit: func(enc, sid unsafe.Pointer, dtx int32) int32 {
			c.gotDTX = dtx
			*(*uintptr)(enc) = 0xe0
			*(*uintptr)(sid) = 0xe1
			return c.initStatus
		},
		SymbolEncodeExit: func(enc, sid unsafe.Pointer) {
			c.encodeExits++
			*(*uintptr)(enc) = 0
			*(*uintptr)(sid) = 0
		},
		SymbolEncode: func(enc, sid uintptr, mode int32, pcm, out, frameType unsafe.Pointer, format int32) int32 {
			c.gotMode = mode
			c.gotFormat = format
			buf := unsafe.Slice((*byte)(out), MaxFrameBytes)
			buf[0] = 0xFF
			for i := 1; i < len(buf); i++ {
				buf[i] = c.payloadMarker + byte(i)
			}
			*(*int32)(frameType) = c.frameType
			return c.encodeStatus
		},
	}}
}

var declaredOrder = []string{
	SymbolDecode, SymbolDecodeExit, SymbolDecodeInit,
	SymbolEncodeInit, SymbolEncodeExit, SymbolEncode,
}

func TestBind_AllSymbolsPresent(t *testing.T) {
	codec := &fakeCodec{}
	lib := codec.library()

	b, err := Bind(lib)
	if err != nil {
		t.Fatalf("Bind() unexpected error = %v", err)
	}
	if b == nil {
		t.Fatal("Bind() returned nil binding")
	}
	if diff := cmp.Diff(declaredOrder, lib.resolved); diff != "" {
		t.Errorf("resolution order mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_FirstMissingSymbolReported(t *testing.T) {
	for i, missing := range declaredOrder {
		t.Run(missing, func(t *testing.T) {
			lib := (&fakeCodec{}).library()
			// Remove the symbol and every later one; only the first may be reported
			for _, name := range declaredOrder[i:] {
				delete(lib.funcs, name)
			}

			b, err := Bind(lib)
			if err == nil {
				t.Fatal("Bind() expected error, got nil")
			}
			if b != nil {
				t.Error("Bind() returned binding alongside error")
			}

			var be *BindError
			if !errors.As(err, &be) {
				t.Fatalf("error %T is not *BindError", err)
			}
			if be.Kind != MissingSymbol {
				t.Errorf("Kind = %v, want %v", be.Kind, MissingSymbol)
			}
			if be.Name != missing {
				t.Errorf("Name = %q, want %q", be.Name, missing)
			}
			if !errors.Is(err, errNoSymbol) {
				t.Errorf("error does not wrap resolver failure: %v", err)
			}
			if diff := cmp.Diff(declaredOrder[:i+1], lib.resolved); diff != "" {
				t.Errorf("resolution did not stop at first failure (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBind_DecodeMissingWinsOverLaterGaps(t *testing.T) {
	lib := (&fakeCodec{}).library()
	delete(lib.funcs, SymbolDecode)
	delete(lib.funcs, SymbolEncode)

	_, err := Bind(lib)
	name, ok := MissingName(err)
	if !ok {
		t.Fatalf("MissingName(%v) not found", err)
	}
	if name != SymbolDecode {
		t.Errorf("missing name = %q, want %q", name, SymbolDecode)
	}
}

func TestOpenWith_LibraryMissing(t *testing.T) {
	loadErr := errors.New("cannot open shared object file")
	load := func(name string) (Library, error) {
		return nil, loadErr
	}

	b, err := OpenWith(load, DefaultLibrary)
	if b != nil {
		t.Error("OpenWith() returned binding for missing library")
	}

	var be *BindError
	if !errors.As(err, &be) {
		t.Fatalf("error %T is not *BindError", err)
	}
	if be.Kind != MissingLibrary {
		t.Errorf("Kind = %v, want MissingLibrary", be.Kind)
	}
	if be.Name != DefaultLibrary {
		t.Errorf("Name = %q, want %q", be.Name, DefaultLibrary)
	}
	if !errors.Is(err, loadErr) {
		t.Errorf("error %v does not wrap the load error", err)
	}
}

func TestOpenWith_SymbolMissingClosesLibrary(t *testing.T) {
	lib := (&fakeCodec{}).library()
	delete(lib.funcs, SymbolEncodeExit)

	_, err := OpenWith(func(string) (Library, error) { return lib, nil }, "libfake.so")
	if name, _ := MissingName(err); name != SymbolEncodeExit {
		t.Errorf("missing name = %q, want %q", name, SymbolEncodeExit)
	}
	if !lib.closed {
		t.Error("library left open after failed bind")
	}
}

func TestOpenWith_Success(t *testing.T) {
	lib := (&fakeCodec{}).library()

	b, err := OpenWith(func(string) (Library, error) { return lib, nil }, "libfake.so")
	if err != nil {
		t.Fatalf("OpenWith() unexpected error = %v", err)
	}
	if b.Name() != "libfake.so" {
		t.Errorf("Name() = %q, want libfake.so", b.Name())
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() unexpected error = %v", err)
	}
	if !lib.closed {
		t.Error("Close() did not close library")
	}
}

func TestEncode_RewritesHeaderForEveryFrameType(t *testing.T) {
	requested := []OutputFormat{OutputWMF, OutputIF2, OutputETS, OutputIETF}

	for f := int32(0); f <= 15; f++ {
		for _, req := range requested {
			t.Run(fmt.Sprintf("ft%d/format%d", f, req), func(t *testing.T) {
				codec := &fakeCodec{frameType: f, encodeStatus: 32, payloadMarker: 0x40}
				b, err := Bind(codec.library())
				if err != nil {
					t.Fatalf("Bind() failed: %v", err)
				}

				var st EncoderState
				pcm := make([]int16, FrameSamples)
				out := make([]byte, MaxFrameBytes)

				status, ft, err := b.Encode(&st, MR122, pcm, out, req)
				if err != nil {
					t.Fatalf("Encode() unexpected error = %v", err)
				}
				if status != 32 {
					t.Errorf("status = %d, want 32", status)
				}
				if ft != FrameType(f) {
					t.Errorf("frame type = %d, want %d", ft, f)
				}
				if out[0] != byte(f<<3) {
					t.Errorf("out[0] = %#x, want %#x", out[0], byte(f<<3))
				}
				if codec.gotFormat != int32(OutputWMF) {
					t.Errorf("native format = %d, want WMF", codec.gotFormat)
				}
				for i := 1; i < len(out); i++ {
					if out[i] != 0x40+byte(i) {
						t.Fatalf("out[%d] = %#x, payload modified", i, out[i])
					}
				}
			})
		}
	}
}

func TestEncode_FrameType7Gives56(t *testing.T) {
	codec := &fakeCodec{frameType: 7, encodeStatus: 32}
	b, err := Bind(codec.library())
	if err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}

	var st EncoderState
	out := make([]byte, MaxFrameBytes)
	if _, _, err := b.Encode(&st, MR122, make([]int16, FrameSamples), out, OutputIETF); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if out[0] != 56 {
		t.Errorf("out[0] = %d, want 56", out[0])
	}
	if codec.gotMode != int32(MR122) {
		t.Errorf("native mode = %d, want %d", codec.gotMode, MR122)
	}
}

func TestEncode_ReturnsNegativeStatusUnchanged(t *testing.T) {
	codec := &fakeCodec{frameType: 15, encodeStatus: -1}
	b, _ := Bind(codec.library())

	var st EncoderState
	out := make([]byte, MaxFrameBytes)
	status, _, err := b.Encode(&st, MR475, make([]int16, FrameSamples), out, OutputWMF)
	if err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}
	if status != -1 {
		t.Errorf("status = %d, want -1", status)
	}
	if out[0] != 15<<3 {
		t.Errorf("out[0] = %#x, want %#x", out[0], 15<<3)
	}
}

func TestEncode_ShortBuffers(t *testing.T) {
	b, _ := Bind((&fakeCodec{}).library())
	var st EncoderState

	tests := []struct {
		name string
		pcm  []int16
		out  []byte
	}{
		{"short pcm", make([]int16, FrameSamples-1), make([]byte, MaxFrameBytes)},
		{"short output", make([]int16, FrameSamples), make([]byte, MaxFrameBytes-1)},
		{"nil output", make([]int16, FrameSamples), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := b.Encode(&st, MR122, tt.pcm, tt.out, OutputIETF)
			if !errors.Is(err, ErrShortBuffer) {
				t.Errorf("Encode() error = %v, want ErrShortBuffer", err)
			}
		})
	}
}

func TestEncodeInitExit_Forwarding(t *testing.T) {
	codec := &fakeCodec{initStatus: 0}
	b, _ := Bind(codec.library())

	var st EncoderState
	if status := b.EncodeInit(&st, true); status != 0 {
		t.Errorf("EncodeInit() = %d, want 0", status)
	}
	if codec.gotDTX != 1 {
		t.Errorf("dtx flag = %d, want 1", codec.gotDTX)
	}
	if st.enc != 0xe0 || st.sid != 0xe1 {
		t.Errorf("state = %+v, native handles not stored", st)
	}

	b.EncodeExit(&st)
	if codec.encodeExits != 1 {
		t.Errorf("encode exit calls = %d, want 1", codec.encodeExits)
	}
	if st.enc != 0 || st.sid != 0 {
		t.Errorf("state = %+v after exit", st)
	}

	codec.initStatus = -1
	if status := b.EncodeInit(&st, false); status != -1 {
		t.Errorf("EncodeInit() = %d, want -1", status)
	}
	if codec.gotDTX != 0 {
		t.Errorf("dtx flag = %d, want 0", codec.gotDTX)
	}
}

func TestDecode_ForwardsWithoutTouchingBuffers(t *testing.T) {
	codec := &fakeCodec{decodeStatus: 7}
	b, _ := Bind(codec.library())

	var st DecoderState
	if status := b.DecodeInit(&st, "Decoder"); status != 0 {
		t.Errorf("DecodeInit() = %d, want 0", status)
	}
	if codec.gotID != "Decoder" {
		t.Errorf("decoder id = %q, want Decoder", codec.gotID)
	}
	if st.state != 0xd0 {
		t.Errorf("decoder state = %#x, native handle not stored", st.state)
	}

	bits := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31}
	before := append([]byte(nil), bits...)
	pcm := make([]int16, FrameSamples)

	status, err := b.Decode(&st, FrameMR122, bits, pcm, InputMIMEIETF)
	if err != nil {
		t.Fatalf("Decode() unexpected error = %v", err)
	}
	if status != 7 {
		t.Errorf("Decode() = %d, want 7", status)
	}
	if diff := cmp.Diff(before, bits); diff != "" {
		t.Errorf("input bits modified (-want +got):\n%s", diff)
	}
	if codec.gotDecodeFT != int32(FrameMR122) || codec.gotFormat != int32(InputMIMEIETF) {
		t.Errorf("native args ft=%d format=%d", codec.gotDecodeFT, codec.gotFormat)
	}

	b.DecodeExit(&st)
	if codec.decodeExits != 1 || st.state != 0 {
		t.Errorf("DecodeExit() not forwarded: exits=%d state=%#x", codec.decodeExits, st.state)
	}
}

func TestDecode_NoDataFrameNeedsNoBits(t *testing.T) {
	codec := &fakeCodec{decodeStatus: 0}
	b, _ := Bind(codec.library())

	var st DecoderState
	status, err := b.Decode(&st, FrameNoData, nil, make([]int16, FrameSamples), InputMIMEIETF)
	if err != nil {
		t.Fatalf("Decode() unexpected error = %v", err)
	}
	if status != 0 {
		t.Errorf("Decode() = %d, want 0", status)
	}
}

func TestDecode_ShortBuffers(t *testing.T) {
	b, _ := Bind((&fakeCodec{}).library())
	var st DecoderState

	if _, err := b.Decode(&st, FrameMR122, make([]byte, 30), make([]int16, FrameSamples), InputMIMEIETF); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short bits: error = %v, want ErrShortBuffer", err)
	}
	if _, err := b.Decode(&st, FrameMR475, make([]byte, 12), make([]int16, 10), InputMIMEIETF); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short pcm: error = %v, want ErrShortBuffer", err)
	}
}

func TestClose_EndsBinding(t *testing.T) {
	codec := &fakeCodec{frameType: int32(FrameMR122)}
	lib := codec.library()
	b, err := Bind(lib)
	if err != nil {
		t.Fatalf("Bind() failed: %v", err)
	}

	var enc EncoderState
	var dec DecoderState
	b.EncodeInit(&enc, false)
	b.DecodeInit(&dec, "Decoder")

	if err := b.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
	if lib.closes != 1 {
		t.Errorf("library closed %d times, want 1", lib.closes)
	}

	pcm := make([]int16, FrameSamples)
	out := make([]byte, MaxFrameBytes)
	if _, _, err := b.Encode(&enc, MR122, pcm, out, OutputIETF); !errors.Is(err, ErrClosed) {
		t.Errorf("Encode() after Close error = %v, want ErrClosed", err)
	}
	if _, err := b.Decode(&dec, FrameNoData, nil, pcm, InputMIMEIETF); !errors.Is(err, ErrClosed) {
		t.Errorf("Decode() after Close error = %v, want ErrClosed", err)
	}
	if status := b.EncodeInit(&enc, false); status != StatusClosed {
		t.Errorf("EncodeInit() after Close = %d, want StatusClosed", status)
	}
	if status := b.DecodeInit(&dec, "Decoder"); status != StatusClosed {
		t.Errorf("DecodeInit() after Close = %d, want StatusClosed", status)
	}

	b.EncodeExit(&enc)
	b.DecodeExit(&dec)
	if codec.encodeExits != 0 || codec.decodeExits != 0 {
		t.Errorf("exit calls reached the library after Close: encode %d, decode %d", codec.encodeExits, codec.decodeExits)
	}
	if out[0] != 0 {
		t.Errorf("output buffer touched after Close: %#x", out[0])
	}
}
