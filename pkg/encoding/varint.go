package encoding

import (
	"encoding/binary"
)

const (
	// MaxVarintLen is the maximum number of bytes a 64-bit varint occupies.
	MaxVarintLen = binary.MaxVarintLen64
)

// PutUvarint encodes v into dst using 7 bits per byte with the high bit marking continuation.
// It returns the number of bytes written. dst must be large enough (see UvarintSize).
func PutUvarint(dst []byte, v uint64) int {
	return binary.PutUvarint(dst, v)
}

// AppendUvarint appends the varint encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// Uvarint decodes a varint from src and returns the value and the number of bytes read.
// A non-positive byte count means src is truncated or the value overflows 64 bits.
func Uvarint(src []byte) (uint64, int) {
	return binary.Uvarint(src)
}

// UvarintSize returns the number of bytes the varint encoding of v occupies.
func UvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// PutVarint zigzag-encodes v (sign rotated into the low bit) and writes it as a varint.
func PutVarint(dst []byte, v int64) int {
	return binary.PutVarint(dst, v)
}

// Varint decodes a zigzag varint from src.
func Varint(src []byte) (int64, int) {
	return binary.Varint(src)
}

// VarintSize returns the encoded size of the zigzag varint of v.
func VarintSize(v int64) int {
	return UvarintSize(zigzag(v))
}

func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}
