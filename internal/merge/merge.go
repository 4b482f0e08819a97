// Package merge implements the k-way merge of sorted run files into one
// sorted output file, driven by a min-heap over the current head record of
// each input run.
package merge

import (
	"container/heap"
	"os"

	"github.com/shirdrn/go-extsort/internal/ioadvise"
	"github.com/shirdrn/go-extsort/internal/record"
	"github.com/shirdrn/go-extsort/internal/runreader"
	"github.com/shirdrn/go-extsort/internal/sorterr"
)

const newFilePerm = 0o644

// defaultWritePages is the write-buffer reservation used by the original
// external sort (256 pages), kept as the default here and clamped down
// when the budget or fan-in can't support it.
const defaultWritePages = 256

// Merge consolidates the sorted runs in paths into one sorted file at out,
// respecting a total memory budget of budget bytes across all reader
// buffers plus one write buffer.
func Merge[T any](paths []string, out string, codec record.Codec[T], less record.Less[T], budget int) error {
	size := codec.Size()
	pageSize := os.Getpagesize()
	if pageSize < size {
		return sorterr.BudgetTooSmallErr("merge.Merge", nil)
	}

	k := len(paths)
	if k == 0 {
		return sorterr.PreconditionErr("merge.Merge", nil)
	}
	totalPages := budget / pageSize

	writePages := defaultWritePages
	if writePages > totalPages-k {
		writePages = totalPages - k
	}
	if writePages < 1 {
		writePages = 1
	}

	pagesPerReader := (totalPages - writePages) / k
	if pagesPerReader < 1 {
		return sorterr.BudgetTooSmallErr("merge.Merge", nil)
	}
	readerBudget := pagesPerReader * pageSize

	readers := make([]*runreader.Reader[T], 0, k)
	closeReaders := func() {
		for _, rd := range readers {
			_ = rd.Close()
		}
	}

	h := &recordHeap[T]{less: less}
	for id, path := range paths {
		rd, err := runreader.Open(path, codec, readerBudget)
		if err != nil {
			closeReaders()
			return err
		}
		readers = append(readers, rd)

		if rd.HasMore() {
			v, err := rd.Pop()
			if err != nil {
				closeReaders()
				return err
			}
			heap.Push(h, entry[T]{readerID: id, value: v})
		}
	}
	defer closeReaders()

	writeBufRecords := (writePages * pageSize) / size
	writeBuf := make([]byte, writeBufRecords*size)
	writeCount := 0

	outFile, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, newFilePerm)
	if err != nil {
		return sorterr.Open("merge.Merge", out, err)
	}
	ioadvise.Sequential(outFile)

	flush := func() error {
		if writeCount == 0 {
			return nil
		}
		if err := writeAll(outFile, writeBuf[:writeCount*size]); err != nil {
			return sorterr.Write("merge.Merge", out, err)
		}
		writeCount = 0
		return nil
	}

	for h.Len() > 0 {
		if writeCount == writeBufRecords {
			if err := flush(); err != nil {
				outFile.Close()
				return err
			}
		}

		top := heap.Pop(h).(entry[T])
		codec.Write(top.value, writeBuf[writeCount*size:(writeCount+1)*size])
		writeCount++

		rd := readers[top.readerID]
		if rd.HasMore() {
			v, err := rd.Pop()
			if err != nil {
				outFile.Close()
				return err
			}
			heap.Push(h, entry[T]{readerID: top.readerID, value: v})
		}
	}

	if err := flush(); err != nil {
		outFile.Close()
		return err
	}
	if err := outFile.Sync(); err != nil {
		outFile.Close()
		return sorterr.Sync("merge.Merge", out, err)
	}
	if err := outFile.Close(); err != nil {
		return sorterr.Close("merge.Merge", out, err)
	}
	return nil
}

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

// entry is a heap entry: the id of the reader (an index into the merge's
// reader arena) and the smallest unconsumed record from that reader. Using
// a stable integer id instead of a pointer lets a reader be dropped from
// the heap on exhaustion by simply never re-inserting it — no arena
// bookkeeping beyond the readers slice itself is required.
type entry[T any] struct {
	readerID int
	value    T
}

// recordHeap implements container/heap.Interface as a min-heap over
// entry.value under less, with reader id as a secondary tiebreak. less is
// only a preorder, so two entries can be mutually "less or equal"; without
// the tiebreak both Less(i,j) and Less(j,i) would hold for such a pair,
// which is not a valid strict weak order and leaves container/heap free to
// starve one side's tied head behind the other's.
type recordHeap[T any] struct {
	items []entry[T]
	less  record.Less[T]
}

func (h *recordHeap[T]) Len() int { return len(h.items) }

func (h *recordHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	aLeB, bLeA := h.less(a.value, b.value), h.less(b.value, a.value)
	if aLeB && bLeA {
		return a.readerID < b.readerID
	}
	return aLeB
}

func (h *recordHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *recordHeap[T]) Push(x any) { h.items = append(h.items, x.(entry[T])) }

func (h *recordHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
