//go:build linux

// Package ioadvise issues best-effort sequential-access hints to the OS,
// mirroring the posix_fadvise(POSIX_FADV_SEQUENTIAL) calls in the external
// sort's original C++ implementation. The hint is never fatal: it is an
// optimization, not a correctness requirement.
package ioadvise

import (
	"os"

	"golang.org/x/sys/unix"
)

// Sequential hints the OS that f will be read sequentially from start to
// end. Errors are ignored; callers proceed regardless.
func Sequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
