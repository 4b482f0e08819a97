// Package runproducer turns a source file into an ordered set of
// epoch-1 run files, each small enough to sort in memory under a budget.
package runproducer

import (
	"io"
	"os"
	"sort"

	"github.com/shirdrn/go-extsort/internal/ioadvise"
	"github.com/shirdrn/go-extsort/internal/record"
	"github.com/shirdrn/go-extsort/internal/runfile"
	"github.com/shirdrn/go-extsort/internal/sorterr"
)

const newFilePerm = 0o644

// Produce reads path in budget-sized chunks, sorts each chunk in memory
// with less, and writes it as an epoch-1 run file named by runfile.Name.
// It returns the number of runs produced.
func Produce[T any](path string, codec record.Codec[T], less record.Less[T], budget int) (int, error) {
	size := codec.Size()
	if size >= budget {
		return 0, sorterr.BudgetTooSmallErr("runproducer.Produce", nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, sorterr.Open("runproducer.Produce", path, err)
	}
	defer f.Close()
	ioadvise.Sequential(f)

	scratch := make([]byte, budget)
	runCount := 0

	for {
		readBytes, err := readChunk(f, scratch)
		if err != nil {
			return runCount, err
		}
		if readBytes == 0 {
			break
		}
		if readBytes%size != 0 {
			return runCount, sorterr.BadSizeErr("runproducer.Produce", path, nil)
		}

		k := readBytes / size
		records := make([]T, k)
		for i := 0; i < k; i++ {
			records[i] = codec.Read(scratch[i*size : (i+1)*size])
		}
		sort.Slice(records, func(i, j int) bool { return less(records[i], records[j]) })

		runCount++
		runPath := runfile.Name(path, 1, runCount)
		if err := writeRun(runPath, codec, records, readBytes); err != nil {
			return runCount, err
		}
	}

	return runCount, nil
}

// readChunk fills buf until it is full or the source is exhausted,
// retrying short reads, and returns the number of bytes actually read.
func readChunk(f *os.File, buf []byte) (int, error) {
	var total int
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, sorterr.Read("runproducer.readChunk", f.Name(), err)
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func writeRun[T any](path string, codec record.Codec[T], records []T, byteLen int) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, newFilePerm)
	if err != nil {
		return sorterr.Open("runproducer.writeRun", path, err)
	}

	buf := make([]byte, byteLen)
	size := codec.Size()
	for i, rec := range records {
		codec.Write(rec, buf[i*size:(i+1)*size])
	}

	if err := writeAll(out, buf); err != nil {
		out.Close()
		return sorterr.Write("runproducer.writeRun", path, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return sorterr.Sync("runproducer.writeRun", path, err)
	}
	if err := out.Close(); err != nil {
		return sorterr.Close("runproducer.writeRun", path, err)
	}
	return nil
}

// writeAll retries short writes until buf is fully written.
func writeAll(f *os.File, buf []byte) error {
	var total int
	for total < len(buf) {
		n, err := f.Write(buf[total:])
		if err != nil {
			return err
		}
		total += n
	}
	return nil
}
