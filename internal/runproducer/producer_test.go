package runproducer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shirdrn/go-extsort/internal/inttest"
	"github.com/shirdrn/go-extsort/internal/runfile"
	"github.com/shirdrn/go-extsort/internal/runreader"
)

func writeSource(t *testing.T, values []int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source")
	require.NoError(t, os.WriteFile(path, inttest.Encode(values), 0o640))
	return path
}

func readRun(t *testing.T, path string) []int64 {
	t.Helper()
	r, err := runreader.Open[int64](path, inttest.Codec{}, 4096)
	require.NoError(t, err)
	defer r.Close()
	var out []int64
	for r.HasMore() {
		v, err := r.Pop()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestProduceSingleRun(t *testing.T) {
	path := writeSource(t, []int64{5, 3, 4, 1, 2})
	n, err := Produce[int64](path, inttest.Codec{}, inttest.Less, 4096)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got := readRun(t, runfile.Name(path, 1, 1))
	require.Equal(t, []int64{1, 2, 3, 4, 5}, got)
}

func TestProduceMultipleRuns(t *testing.T) {
	values := []int64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	path := writeSource(t, values)

	// budget for 2 records per chunk -> 5 runs
	n, err := Produce[int64](path, inttest.Codec{}, inttest.Less, 16)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	expected := [][]int64{{8, 9}, {6, 7}, {4, 5}, {2, 3}, {0, 1}}
	for i, want := range expected {
		got := readRun(t, runfile.Name(path, 1, i+1))
		require.Equal(t, want, got)
	}
}

func TestProduceEmptySource(t *testing.T) {
	path := writeSource(t, nil)
	n, err := Produce[int64](path, inttest.Codec{}, inttest.Less, 4096)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestProduceBudgetTooSmall(t *testing.T) {
	path := writeSource(t, []int64{1})
	_, err := Produce[int64](path, inttest.Codec{}, inttest.Less, 8)
	require.Error(t, err)
}

func TestProduceBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o640))
	_, err := Produce[int64](path, inttest.Codec{}, inttest.Less, 4096)
	require.Error(t, err)
}
