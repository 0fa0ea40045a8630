// ABOUTME: CPU capability package for the amrnb tools
// ABOUTME: Reports the SIMD extension codec builds are optimised for
// Package cpufeature answers whether the CPU has the SIMD extension that
// platform codec builds are optimised for.
package cpufeature
