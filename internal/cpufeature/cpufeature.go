// ABOUTME: Platform SIMD capability query
// ABOUTME: Reports whether the CPU exposes the vector extension native codecs are built for
package cpufeature

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Feature describes the SIMD extension probed on this architecture
type Feature struct {
	Arch      string
	Extension string
	Present   bool
}

// Probe returns the SIMD capability of the running CPU: NEON on 32-bit ARM,
// ASIMD (NEON) on arm64 and SSE2 on x86. Other architectures report none.
func Probe() Feature {
	return probe(runtime.GOARCH)
}

func probe(arch string) Feature {
	f := Feature{Arch: arch}
	switch arch {
	case "arm":
		f.Extension = "neon"
		f.Present = cpu.ARM.HasNEON
	case "arm64":
		f.Extension = "asimd"
		f.Present = cpu.ARM64.HasASIMD
	case "amd64", "386":
		f.Extension = "sse2"
		f.Present = cpu.X86.HasSSE2
	}
	return f
}

// HasSIMD reports whether the CPU exposes its architecture's SIMD extension
func HasSIMD() bool {
	return Probe().Present
}
