// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams 16-bit PCM through a pipe into one oto player with software gain
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// deviceBuffer keeps latency low enough that volume keys feel immediate
const deviceBuffer = 60 * time.Millisecond

var _ Output = (*Oto)(nil)

// Oto plays audio through the oto library.
// Volume and mute may be changed from any goroutine.
type Oto struct {
	ctx    *oto.Context
	player *oto.Player
	pr     *io.PipeReader
	pw     *io.PipeWriter

	sampleRate int
	channels   int

	mu     sync.Mutex
	volume int
	muted  bool
}

// NewOto creates a new Oto output at the given volume (0-100)
func NewOto(volume int) *Oto {
	o := &Oto{}
	o.SetVolume(volume)
	return o
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	// oto allows one context per process
	if o.ctx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			return fmt.Errorf("output already open at %dHz %dch", o.sampleRate, o.channels)
		}
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   deviceBuffer,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	o.ctx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.pr, o.pw = io.Pipe()
	o.player = ctx.NewPlayer(o.pr)
	o.player.Play()

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)
	return nil
}

// Write queues samples for playback
func (o *Oto) Write(samples []int32) error {
	if o.pw == nil {
		return fmt.Errorf("output not initialized")
	}

	if _, err := o.pw.Write(render(samples, o.gain())); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Drain waits for the player to finish what has been written.
// The output accepts no further writes afterwards.
func (o *Oto) Drain() {
	if o.pw == nil {
		return
	}
	// EOF on the pipe lets the player stop once its buffer empties
	o.pw.Close()
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pw != nil {
		o.pw.Close()
		o.pw = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pr != nil {
		o.pr.Close()
		o.pr = nil
	}
	if o.ctx != nil {
		if err := o.ctx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	o.volume = min(max(volume, 0), 100)
	o.mu.Unlock()
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	o.muted = muted
	o.mu.Unlock()
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

func (o *Oto) gain() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return volumeGain(o.volume, o.muted)
}

// volumeGain maps the 0-100 volume onto a square-law curve so equal
// steps sound roughly equally loud
func volumeGain(volume int, muted bool) float64 {
	if muted {
		return 0
	}
	v := float64(volume) / 100
	return v * v
}

// render scales 24-bit samples by gain and packs them as clipped 16-bit little-endian
func render(samples []int32, gain float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		scaled := math.Round(float64(s) * gain / 256)
		scaled = math.Max(math.MinInt16, math.Min(math.MaxInt16, scaled))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(scaled)))
	}
	return out
}
