// Package runreader implements a forward-only cursor over one sorted run
// file with a bounded, refillable read-ahead buffer.
package runreader

import (
	"io"
	"os"

	"github.com/shirdrn/go-extsort/internal/ioadvise"
	"github.com/shirdrn/go-extsort/internal/record"
	"github.com/shirdrn/go-extsort/internal/sorterr"
)

// Reader streams records from one run file, keeping at most cap records
// resident at a time. It owns its file handle and buffer exclusively for
// its lifetime; it is not safe to copy or share across goroutines.
type Reader[T any] struct {
	path  string
	f     *os.File
	codec record.Codec[T]

	size int // S: bytes per record
	cap  int // B: buffer capacity, in records

	buf      []byte
	buffered int // records currently valid in buf, set by the last refill
	needFill bool

	total  int64 // L/S
	popped int64
}

// Open opens path for sequential reading and sizes the reader's buffer to
// hold floor(budget/size) records. budget must be at least size.
func Open[T any](path string, codec record.Codec[T], budget int) (*Reader[T], error) {
	size := codec.Size()
	if budget < size {
		return nil, sorterr.BudgetTooSmallErr("runreader.Open", nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, sorterr.Open("runreader.Open", path, err)
	}
	ioadvise.Sequential(f)

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, sorterr.Open("runreader.Open.Stat", path, err)
	}
	length := st.Size()
	if length%int64(size) != 0 {
		f.Close()
		return nil, sorterr.BadSizeErr("runreader.Open", path, nil)
	}

	capRecords := budget / size
	return &Reader[T]{
		path:     path,
		f:        f,
		codec:    codec,
		size:     size,
		cap:      capRecords,
		buf:      make([]byte, capRecords*size),
		needFill: true,
		total:    length / int64(size),
	}, nil
}

// Total returns the number of records in the run.
func (r *Reader[T]) Total() int64 { return r.total }

// Popped returns how many records have been popped so far.
func (r *Reader[T]) Popped() int64 { return r.popped }

// HasMore reports whether fewer than Total records have been popped.
func (r *Reader[T]) HasMore() bool { return r.popped < r.total }

// Peek returns the next record without advancing the cursor.
func (r *Reader[T]) Peek() (T, error) {
	var zero T
	if r.needFill {
		if err := r.refill(); err != nil {
			return zero, err
		}
	}
	idx := int(r.popped % int64(r.cap))
	return r.codec.Read(r.buf[idx*r.size : (idx+1)*r.size]), nil
}

// Pop returns the next record and advances the cursor, refilling the
// buffer immediately if the buffer boundary was just crossed and more
// records remain on disk.
func (r *Reader[T]) Pop() (T, error) {
	v, err := r.Peek()
	if err != nil {
		var zero T
		return zero, err
	}
	r.popped++
	if r.popped%int64(r.cap) == 0 && r.HasMore() {
		if err := r.refill(); err != nil {
			var zero T
			return zero, err
		}
	}
	return v, nil
}

// Close releases the reader's file handle. It is safe, and required, to
// call on every exit path including after an earlier error.
func (r *Reader[T]) Close() error {
	if err := r.f.Close(); err != nil {
		return sorterr.Close("runreader.Close", r.path, err)
	}
	return nil
}

// refill reads exactly cap*size bytes, or as many as remain in the file,
// retrying short reads. A read returning zero bytes while records remain
// on disk is a fatal IoShortRead.
func (r *Reader[T]) refill() error {
	remainingRecords := r.total - r.popped
	want := int64(r.cap) * int64(r.size)
	if remainingRecords*int64(r.size) < want {
		want = remainingRecords * int64(r.size)
	}

	var total int64
	for total < want {
		n, err := r.f.Read(r.buf[total:want])
		if n == 0 {
			if err == io.EOF || err == nil {
				return sorterr.ShortRead("runreader.refill", r.path, err)
			}
			return sorterr.Read("runreader.refill", r.path, err)
		}
		total += int64(n)
		if err != nil && err != io.EOF {
			return sorterr.Read("runreader.refill", r.path, err)
		}
	}

	r.buffered = int(total / int64(r.size))
	r.needFill = false
	return nil
}
