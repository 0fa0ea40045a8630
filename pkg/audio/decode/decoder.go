// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all audio decoders
package decode

import "github.com/Resonate-Protocol/amrnb-go/pkg/audio"

// Decoder decodes audio in various formats to PCM int32 samples
type Decoder interface {
	// Decode converts encoded audio data to PCM samples
	Decode(data []byte) ([]int32, error)

	// Close releases decoder resources
	Close() error
}

// FormatReporter is implemented by decoders that learn the PCM layout
// from the stream itself rather than from the Format they were built with
type FormatReporter interface {
	// OutputFormat describes the samples returned by the last Decode
	OutputFormat() audio.Format
}
