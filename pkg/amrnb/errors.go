// ABOUTME: Error types for codec binding and forwarding
// ABOUTME: BindError names the first missing library or symbol
package amrnb

import (
	"errors"
	"fmt"
)

var (
	// ErrShortBuffer is returned when a PCM or bitstream buffer cannot hold a frame
	ErrShortBuffer = errors.New("amrnb: buffer too short")

	// ErrClosed is returned by codec calls on a closed Binding
	ErrClosed = errors.New("amrnb: binding closed")
)

// MissingKind tells whether a bind failure came from the library or a symbol
type MissingKind int

const (
	MissingLibrary MissingKind = iota
	MissingSymbol
)

func (k MissingKind) String() string {
	if k == MissingLibrary {
		return "library"
	}
	return "symbol"
}

// BindError reports the first dependency that could not be resolved
type BindError struct {
	Kind MissingKind
	Name string
	Err  error
}

func (e *BindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("amrnb: missing %s %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("amrnb: missing %s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// MissingName returns the library or symbol name carried by a *BindError
func MissingName(err error) (string, bool) {
	var be *BindError
	if errors.As(err, &be) {
		return be.Name, true
	}
	return "", false
}
