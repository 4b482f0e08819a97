// Command extsort generates a file of random fixed-width test records and
// sorts it with the external-sort core, exiting non-zero on any fatal
// error. It is a driver for exercising the core, not part of it.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	extsort "github.com/shirdrn/go-extsort"
	"github.com/shirdrn/go-extsort/internal/demo"
)

// defaultBudget is the resident-memory budget used by the driver, 256
// pages worth of 16-byte records, matching the 256-page write-buffer
// default used by the merger itself.
const defaultBudget = 256 * 4096

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: extsort <tag> <record-count>")
		os.Exit(1)
	}
	tag := os.Args[1]
	count, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("invalid record count %q: %v", os.Args[2], err)
	}

	path := fmt.Sprintf("./%s_test.data", tag)
	if err := demo.GenerateRandom(path, count, defaultBudget); err != nil {
		log.Fatalf("generating test data: %v", err)
	}

	resultPath, err := extsort.Sort[demo.Record](path, demo.Int64Codec{}, demo.Less, defaultBudget)
	if err != nil {
		log.Fatalf("sorting %s: %v", path, err)
	}

	fmt.Println(resultPath)
}
