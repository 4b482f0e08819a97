// Package demo provides a concrete fixed-width record type used by the
// CLI: the core itself is generic over any record.Codec and
// never imports this package. It mirrors the SimpleStruct{userId,
// moneyCount} record sorted by the original C++ implementation.
package demo

import (
	"encoding/binary"
	"math/rand"
	"os"
)

// Record is a 16-byte, little-endian encoded record: a user id and an
// associated money count.
type Record struct {
	UserID     int64
	MoneyCount int64
}

// Int64Codec encodes Record as two little-endian int64s.
type Int64Codec struct{}

func (Int64Codec) Size() int { return 16 }

func (Int64Codec) Read(buf []byte) Record {
	return Record{
		UserID:     int64(binary.LittleEndian.Uint64(buf[0:8])),
		MoneyCount: int64(binary.LittleEndian.Uint64(buf[8:16])),
	}
}

func (Int64Codec) Write(v Record, buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(v.UserID))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(v.MoneyCount))
}

// Less orders records by UserID, then by MoneyCount, a total preorder
// matching the original C++ implementation's simpleStructLessOrEq.
func Less(a, b Record) bool {
	if a.UserID != b.UserID {
		return a.UserID < b.UserID
	}
	return a.MoneyCount <= b.MoneyCount
}

// GenerateRandom writes count random records to path, in budget-sized
// batches, mirroring the original C++ implementation's GenerateTest.
func GenerateRandom(path string, count int, budget int) error {
	f, err := createExclusive(path)
	if err != nil {
		return err
	}
	defer f.Close()

	size := Int64Codec{}.Size()
	perBatch := budget / size
	if perBatch < 1 {
		perBatch = 1
	}

	remaining := count
	for remaining > 0 {
		n := remaining
		if n > perBatch {
			n = perBatch
		}
		buf := make([]byte, n*size)
		for i := 0; i < n; i++ {
			rec := Record{
				UserID:     int64(rand.Intn(10000)),
				MoneyCount: int64(rand.Intn(40)),
			}
			Int64Codec{}.Write(rec, buf[i*size:(i+1)*size])
		}
		if _, err := f.Write(buf); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

func createExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}
