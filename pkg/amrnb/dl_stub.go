//go:build !darwin && !freebsd && !linux

// ABOUTME: Loader stub for platforms without dlopen support in purego
// ABOUTME: Every open fails so Open reports the library as missing
package amrnb

import (
	"fmt"
	"runtime"
)

// OpenLibrary always fails on this platform
func OpenLibrary(name string) (Library, error) {
	return nil, fmt.Errorf("runtime library loading not supported on %s", runtime.GOOS)
}
