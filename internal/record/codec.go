// Package record defines the capability set the external-sort core needs
// from a caller's record type: a fixed byte width, a byte-image codec, and
// a total preorder. It deliberately knows nothing about any concrete
// record layout.
package record

// Codec is the capability set a type T must provide to be sorted by the
// core: a fixed encoded size, and a byte-image read/write pair. A trivial
// byte-copy implementation is sufficient for POD-like T.
type Codec[T any] interface {
	// Size is the fixed width S of the encoded record, in bytes.
	Size() int
	// Read decodes one record from buf, which is exactly Size() bytes.
	Read(buf []byte) T
	// Write encodes v into buf, which is exactly Size() bytes.
	Write(v T, buf []byte)
}

// Less is a total preorder over T: Less(a, b) reports whether a <= b.
// Equal-keyed elements may compare Less in either direction consistently;
// the merger does not rely on strict ordering to break ties.
type Less[T any] func(a, b T) bool
