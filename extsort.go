// Package extsort sorts a file of fixed-width records that does not fit
// in main memory, using a two-phase external merge sort: run production
// followed by an iterated k-way merge. It is the entry point tying the
// internal run producer, k-way merger, and merge scheduler together.
package extsort

import (
	"os"

	"github.com/shirdrn/go-extsort/internal/record"
	"github.com/shirdrn/go-extsort/internal/runfile"
	"github.com/shirdrn/go-extsort/internal/runproducer"
	"github.com/shirdrn/go-extsort/internal/scheduler"
	"github.com/shirdrn/go-extsort/internal/sorterr"
)

// Codec and Less are re-exported so callers never need to import the
// internal/record package directly.
type Codec[T any] = record.Codec[T]
type Less[T any] = record.Less[T]

// Sort sorts the records in path under the total preorder less, using at
// most budget bytes of resident buffer space per phase, and returns the
// path of a newly created file holding the same multiset of records in
// non-decreasing order. It does not modify or delete path. Intermediate
// run files are created and deleted as deterministic siblings of path
// (see internal/runfile); on a fatal error they may be left behind. When
// the producer emits a single run, that epoch-1 run is returned as the
// result without a merge.
//
// Callers must not call Sort twice concurrently against the same path:
// the deterministic run naming would collide.
func Sort[T any](path string, codec Codec[T], less Less[T], budget int) (string, error) {
	runCount, err := runproducer.Produce(path, codec, less, budget)
	if err != nil {
		return "", err
	}

	if runCount == 0 {
		return writeEmptyResult(path)
	}
	if runCount == 1 {
		// The single epoch-1 run is already sorted and complete: it is
		// the result, and no merge epoch runs.
		return runfile.Name(path, 1, 1), nil
	}

	epoch1 := make([]string, runCount)
	for i := 0; i < runCount; i++ {
		epoch1[i] = runfile.Name(path, 1, i+1)
	}

	return scheduler.Run(path, epoch1, codec, less, budget)
}

// writeEmptyResult handles the degenerate case of an empty source file:
// the producer created no runs, so there is nothing to merge. A
// zero-length result is created directly.
func writeEmptyResult(path string) (string, error) {
	resultPath := runfile.Name(path, 1, 1)
	f, err := os.OpenFile(resultPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", sorterr.Open("extsort.Sort", resultPath, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", sorterr.Sync("extsort.Sort", resultPath, err)
	}
	if err := f.Close(); err != nil {
		return "", sorterr.Close("extsort.Sort", resultPath, err)
	}
	return resultPath, nil
}
