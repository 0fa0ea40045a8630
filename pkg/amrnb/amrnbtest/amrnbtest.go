// ABOUTME: In-memory stand-in for the platform AMR-NB library
// ABOUTME: Lets packages above amrnb test against a Binding without native code
// Package amrnbtest provides a fake codec library for tests.
//
// The fake does no speech coding. Encoding reports the requested mode as the
// frame type and stores the high byte of each sample as payload; decoding
// repeats the payload bytes back into samples. That is enough for callers to
// check framing, buffering and lifecycle without the platform library.
package amrnbtest

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"unsafe"

	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
)

// ErrUndefined is returned by Resolve for symbols listed in Missing
var ErrUndefined = errors.New("amrnbtest: undefined symbol")

// Codec is a fake codec library implementing amrnb.Library
type Codec struct {
	mu sync.Mutex

	// Missing symbols fail to resolve
	Missing map[string]bool

	// EncodeStatus and DecodeStatus, when non-zero, replace the native return values
	EncodeStatus int32
	DecodeStatus int32

	// InitStatus is returned by both init entry points
	InitStatus int32

	// FailEncodeAt, when non-zero, makes that native encode call (counting
	// from 1) return -1
	FailEncodeAt int

	encodeInits int
	encodeExits int
	decodeInits int
	decodeExits int
	encodes     int
	decodes     int
	dtx         bool
	lastOutput  int32
	lastInput   int32
	closed      bool
}

// New returns a fake library exporting every codec symbol
func New() *Codec {
	return &Codec{Missing: map[string]bool{}}
}

// Binding binds the fake and fails the test on error
func (c *Codec) Binding(tb testing.TB) *amrnb.Binding {
	tb.Helper()
	b, err := amrnb.Bind(c)
	if err != nil {
		tb.Fatalf("amrnb.Bind() failed: %v", err)
	}
	return b
}

// Resolve implements amrnb.Library
func (c *Codec) Resolve(symbol string, fptr any) error {
	if c.Missing[symbol] {
		return ErrUndefined
	}
	fn, ok := c.funcs()[symbol]
	if !ok {
		return ErrUndefined
	}
	reflect.ValueOf(fptr).Elem().Set(reflect.ValueOf(fn))
	return nil
}

// Close implements amrnb.Library
func (c *Codec) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Stats is a snapshot of the calls the fake has seen
type Stats struct {
	EncodeInits  int
	EncodeExits  int
	DecodeInits  int
	DecodeExits  int
	Encodes      int
	Decodes      int
	DTX          bool
	OutputFormat int32
	InputFormat  int32
	Closed       bool
}

// Stats returns the current call counters
func (c *Codec) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		EncodeInits:  c.encodeInits,
		EncodeExits:  c.encodeExits,
		DecodeInits:  c.decodeInits,
		DecodeExits:  c.decodeExits,
		Encodes:      c.encodes,
		Decodes:      c.decodes,
		DTX:          c.dtx,
		OutputFormat: c.lastOutput,
		InputFormat:  c.lastInput,
		Closed:       c.closed,
	}
}

func (c *Codec) funcs() map[string]any {
	return map[string]any{
		amrnb.SymbolDecode:     c.decode,
		amrnb.SymbolDecodeExit: c.decodeExit,
		amrnb.SymbolDecodeInit: c.decodeInit,
		amrnb.SymbolEncodeInit: c.encodeInit,
		amrnb.SymbolEncodeExit: c.encodeExit,
		amrnb.SymbolEncode:     c.encode,
	}
}

func (c *Codec) encodeInit(enc, sid unsafe.Pointer, dtx int32) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encodeInits++
	c.dtx = dtx != 0
	*(*uintptr)(enc) = 1
	*(*uintptr)(sid) = 1
	return c.InitStatus
}

func (c *Codec) encodeExit(enc, sid unsafe.Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encodeExits++
	*(*uintptr)(enc) = 0
	*(*uintptr)(sid) = 0
}

func (c *Codec) encode(enc, sid uintptr, mode int32, pcm, out, frameType unsafe.Pointer, format int32) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encodes++
	c.lastOutput = format

	in := unsafe.Slice((*int16)(pcm), amrnb.FrameSamples)
	buf := unsafe.Slice((*byte)(out), amrnb.MaxFrameBytes)

	ft := amrnb.FrameType(mode)
	if mode < 0 || amrnb.Mode(mode) > amrnb.MR122 {
		ft = amrnb.FrameNoData
	}
	if c.dtx && silent(in) {
		ft = amrnb.FrameSID
	}
	n, _ := ft.PayloadSize()

	// WMF puts the bare frame type in the first byte
	buf[0] = byte(ft)
	for i := 0; i < n; i++ {
		buf[1+i] = byte(in[i] >> 8)
	}
	*(*int32)(frameType) = int32(ft)

	if c.FailEncodeAt != 0 && c.encodes == c.FailEncodeAt {
		return -1
	}
	if c.EncodeStatus != 0 {
		return c.EncodeStatus
	}
	return int32(1 + n)
}

func (c *Codec) decodeInit(state unsafe.Pointer, id string) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decodeInits++
	*(*uintptr)(state) = 1
	return c.InitStatus
}

func (c *Codec) decodeExit(state unsafe.Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decodeExits++
	*(*uintptr)(state) = 0
}

func (c *Codec) decode(state uintptr, frameType int32, bits, pcm unsafe.Pointer, format int32) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decodes++
	c.lastInput = format

	out := unsafe.Slice((*int16)(pcm), amrnb.FrameSamples)
	n, _ := amrnb.FrameType(frameType).PayloadSize()
	in := unsafe.Slice((*byte)(bits), max(n, 1))
	for i := range out {
		if n == 0 {
			out[i] = 0
			continue
		}
		out[i] = int16(int8(in[i%n])) << 8
	}
	return c.DecodeStatus
}

func silent(pcm []int16) bool {
	for _, s := range pcm {
		if s != 0 {
			return false
		}
	}
	return true
}
