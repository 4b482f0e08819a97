//go:build !linux

// Package ioadvise issues best-effort sequential-access hints to the OS,
// mirroring the posix_fadvise(POSIX_FADV_SEQUENTIAL) calls in the external
// sort's original C++ implementation. The hint is never fatal: it is an
// optimization, not a correctness requirement.
package ioadvise

import "os"

// Sequential is a no-op on platforms without a sequential-access advisory.
func Sequential(f *os.File) {}
