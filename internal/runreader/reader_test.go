package runreader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shirdrn/go-extsort/internal/inttest"
)

func writeRunFile(t *testing.T, values []int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run")
	require.NoError(t, os.WriteFile(path, inttest.Encode(values), 0o640))
	return path
}

func TestReaderPopInOrder(t *testing.T) {
	values := []int64{1, 2, 3, 4, 5}
	path := writeRunFile(t, values)

	r, err := Open[int64](path, inttest.Codec{}, 8*2) // buffer holds 2 records
	require.NoError(t, err)
	defer r.Close()

	require.EqualValues(t, 5, r.Total())

	var got []int64
	for r.HasMore() {
		v, err := r.Pop()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, values, got)
	require.EqualValues(t, 5, r.Popped())
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	path := writeRunFile(t, []int64{10, 20})
	r, err := Open[int64](path, inttest.Codec{}, 8)
	require.NoError(t, err)
	defer r.Close()

	v1, err := r.Peek()
	require.NoError(t, err)
	require.EqualValues(t, 10, v1)

	v2, err := r.Peek()
	require.NoError(t, err)
	require.EqualValues(t, 10, v2)
	require.EqualValues(t, 0, r.Popped())
}

func TestReaderBudgetTooSmall(t *testing.T) {
	path := writeRunFile(t, []int64{1})
	_, err := Open[int64](path, inttest.Codec{}, 4)
	require.Error(t, err)
}

func TestReaderBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o640))
	_, err := Open[int64](path, inttest.Codec{}, 8)
	require.Error(t, err)
}

func TestReaderEmptyRun(t *testing.T) {
	path := writeRunFile(t, nil)
	r, err := Open[int64](path, inttest.Codec{}, 8)
	require.NoError(t, err)
	defer r.Close()

	require.False(t, r.HasMore())
	require.EqualValues(t, 0, r.Total())
}

func TestReaderOpenMissingFile(t *testing.T) {
	_, err := Open[int64](filepath.Join(t.TempDir(), "missing"), inttest.Codec{}, 8)
	require.Error(t, err)
}
