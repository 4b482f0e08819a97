// Package inttest provides a minimal 8-byte int64 record codec shared by
// the core packages' tests, matching the 64-bit integer records used in
// spec's end-to-end scenarios.
package inttest

import "encoding/binary"

// Codec encodes a single little-endian int64 per record.
type Codec struct{}

func (Codec) Size() int { return 8 }

func (Codec) Read(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf))
}

func (Codec) Write(v int64, buf []byte) {
	binary.LittleEndian.PutUint64(buf, uint64(v))
}

// Less is the signed <= total order over int64.
func Less(a, b int64) bool { return a <= b }

// Encode is a convenience helper for building raw run files in tests.
func Encode(values []int64) []byte {
	buf := make([]byte, len(values)*8)
	c := Codec{}
	for i, v := range values {
		c.Write(v, buf[i*8:(i+1)*8])
	}
	return buf
}
