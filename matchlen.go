package backref

import (
	"encoding/binary"
	"math/bits"
)

// matchLength returns the length of the common prefix of a and b, at most
// limit bytes. It compares 8 bytes at a time while it can.
func matchLength(a, b []byte, limit int) int {
	if limit > len(a) {
		limit = len(a)
	}
	if limit > len(b) {
		limit = len(b)
	}
	i := 0
	for i+8 <= limit {
		aBytes := binary.LittleEndian.Uint64(a[i:])
		bBytes := binary.LittleEndian.Uint64(b[i:])
		if aBytes != bBytes {
			// XOR the two 8-byte values and find the first byte that
			// differs; the architecture is little-endian, and the shift
			// by 3 converts a bit index to a byte index.
			return i + bits.TrailingZeros64(aBytes^bBytes)>>3
		}
		i += 8
	}
	for i < limit && a[i] == b[i] {
		i++
	}
	return i
}
