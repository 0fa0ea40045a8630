// ABOUTME: Audio output interface definition
// ABOUTME: Playback device with software volume for decoded speech
package output

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write queues samples, blocking while the device buffer is full
	Write(samples []int32) error

	// Drain blocks until everything written has been played
	Drain()

	// SetVolume sets the software volume (0-100)
	SetVolume(volume int)

	// SetMuted silences output without losing the volume setting
	SetMuted(muted bool)

	// Close releases output resources
	Close() error
}
