// Package runfile names the intermediate run files the producer, merger,
// and scheduler create and delete. Names are deterministic so a host can
// find and clean up leftovers after a fatal abort.
package runfile

import "fmt"

// Name returns the deterministic path of a run belonging to epoch e and
// within-epoch index i, derived from the source path: the scheduler's
// invariant is that (e, i) is never reused while runs from that pair are
// still in flight.
func Name(source string, epoch, index int) string {
	return fmt.Sprintf("%s_run_%d_%d", source, epoch, index)
}

// Pattern returns a glob pattern matching every run file ever produced for
// source, for host-side cleanup after a fatal abort.
func Pattern(source string) string {
	return fmt.Sprintf("%s_run_*_*", source)
}
