// Package scheduler drives repeated merge epochs over a set of sorted
// runs until a single run remains.
package scheduler

import (
	"os"

	"github.com/shirdrn/go-extsort/internal/merge"
	"github.com/shirdrn/go-extsort/internal/record"
	"github.com/shirdrn/go-extsort/internal/runfile"
	"github.com/shirdrn/go-extsort/internal/sorterr"
)

// Run consumes epoch1, the initial set of epoch-1 run paths produced for
// source, merging batches of them under budget until one run remains, and
// returns that run's path. Every input run, including every intermediate
// merge output, is deleted once it has been fully consumed by a later
// merge; the final run is left for the caller.
func Run[T any](source string, epoch1 []string, codec record.Codec[T], less record.Less[T], budget int) (string, error) {
	pageSize := os.Getpagesize()
	minPerRun := 2 * pageSize
	if 2*minPerRun >= budget {
		return "", sorterr.BudgetTooSmallErr("scheduler.Run", nil)
	}

	old := append([]string(nil), epoch1...)
	var newEpoch []string
	epoch := 1
	resultIndex := 1

	for len(old) > 0 {
		var batch []string
		curMemory := 0
		for len(old) > 0 {
			if len(batch) > 0 && curMemory+minPerRun > budget {
				break
			}
			// selection is LIFO: all runs are equally valid inputs, so
			// the order within an epoch doesn't affect correctness.
			last := len(old) - 1
			batch = append(batch, old[last])
			old = old[:last]
			curMemory += minPerRun
		}

		resultPath := runfile.Name(source, epoch+1, resultIndex)
		resultIndex++

		if err := merge.Merge(batch, resultPath, codec, less, budget); err != nil {
			return "", err
		}
		for _, p := range batch {
			if err := os.Remove(p); err != nil {
				return "", sorterr.Unlink("scheduler.Run", p, err)
			}
		}
		newEpoch = append(newEpoch, resultPath)

		if len(old) == 0 {
			if len(newEpoch) == 1 {
				return newEpoch[0], nil
			}
			old, newEpoch = newEpoch, nil
			resultIndex = 1
			epoch++
		}
	}

	// Unreachable when epoch1 is non-empty: the loop above always returns
	// from inside the len(old) == 0 branch once newEpoch converges to 1.
	return "", sorterr.PreconditionErr("scheduler.Run", nil)
}
