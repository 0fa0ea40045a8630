//go:build darwin || freebsd || linux

// ABOUTME: Shared library loader backed by purego
// ABOUTME: Opens libraries with RTLD_NOW|RTLD_GLOBAL and binds symbols without cgo
package amrnb

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type dynamicLibrary struct {
	name   string
	handle uintptr
}

// OpenLibrary loads a shared library with global symbol visibility
func OpenLibrary(name string) (Library, error) {
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", name, err)
	}
	return &dynamicLibrary{name: name, handle: handle}, nil
}

func (l *dynamicLibrary) Resolve(symbol string, fptr any) error {
	addr, err := purego.Dlsym(l.handle, symbol)
	if err != nil {
		return fmt.Errorf("dlsym %s: %w", symbol, err)
	}
	if addr == 0 {
		return fmt.Errorf("dlsym %s: nil address", symbol)
	}
	purego.RegisterFunc(fptr, addr)
	return nil
}

func (l *dynamicLibrary) Close() error {
	return purego.Dlclose(l.handle)
}
