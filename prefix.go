package backref

// Base values and extra-bit counts for the insert-length and copy-length
// prefix codes. Section 5. of the format spec.

var kInsBase = [24]int{
	0, 1, 2, 3, 4, 5, 6, 8,
	10, 14, 18, 26, 34, 50, 66, 98,
	130, 194, 322, 578, 1090, 2114, 6210, 22594,
}

var kInsExtra = [24]int{
	0, 0, 0, 0, 0, 0, 1, 1,
	2, 2, 3, 3, 4, 4, 5, 5,
	6, 7, 8, 9, 10, 12, 14, 24,
}

var kCopyBase = [24]int{
	2, 3, 4, 5, 6, 7, 8, 9,
	10, 12, 14, 18, 22, 30, 38, 54,
	70, 102, 134, 198, 326, 582, 1094, 2118,
}

var kCopyExtra = [24]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 2, 2, 3, 3, 4, 4,
	5, 5, 6, 7, 8, 9, 10, 24,
}

func insertLengthCode(insertlen int) uint16 {
	if insertlen < 6 {
		return uint16(insertlen)
	} else if insertlen < 130 {
		nbits := log2FloorNonZero(uint(insertlen-2)) - 1
		return uint16((nbits << 1) + uint32((insertlen-2)>>nbits) + 2)
	} else if insertlen < 2114 {
		return uint16(log2FloorNonZero(uint(insertlen-66)) + 10)
	} else if insertlen < 6210 {
		return 21
	} else if insertlen < 22594 {
		return 22
	} else {
		return 23
	}
}

func copyLengthCode(copylen int) uint16 {
	if copylen < 10 {
		return uint16(copylen - 2)
	} else if copylen < 134 {
		nbits := log2FloorNonZero(uint(copylen-6)) - 1
		return uint16((nbits << 1) + uint32((copylen-6)>>nbits) + 4)
	} else if copylen < 2118 {
		return uint16(log2FloorNonZero(uint(copylen-70)) + 12)
	} else {
		return 23
	}
}

func insertExtra(inscode uint16) int {
	return kInsExtra[inscode]
}

func copyExtra(copycode uint16) int {
	return kCopyExtra[copycode]
}

func combineLengthCodes(inscode, copycode uint16, useLastDistance bool) uint16 {
	bits64 := copycode&0x7 | (inscode&0x7)<<3
	if useLastDistance && inscode < 8 && copycode < 16 {
		if copycode < 8 {
			return bits64
		}
		return bits64 | 64
	}
	/* Specification: 5 Encoding of ... (last table) */
	/* offset = 2 * index, where index is in range [0..8] */
	offset := 2 * ((uint32(copycode) >> 3) + 3*(uint32(inscode)>>3))

	/* All values in specification are K * 64,
	   where   K = [2, 3, 6, 4, 5, 8, 7, 9, 10],
	       i + 1 = [1, 2, 3, 4, 5, 6, 7, 8,  9],
	   K - i - 1 = [1, 1, 3, 0, 0, 2, 0, 1,  2] = D.
	   All values in D require only 2 bits to encode.
	   Magic constant is shifted 6 bits left, to avoid final multiplication. */
	offset = (offset << 5) + 0x40 + ((0x520D40 >> offset) & 0xC0)

	return uint16(offset | uint32(bits64))
}

// prefixEncodeCopyDistance maps an intermediate distance code (a short code
// below numDistanceShortCodes, or the distance plus numDistanceShortCodes-1)
// to its distance symbol and extra bits. The number of extra bits is packed
// into the top byte of extra, the extra-bit value into the low 24 bits.
func prefixEncodeCopyDistance(distanceCode int) (code uint16, extra uint32) {
	if distanceCode < numDistanceShortCodes {
		return uint16(distanceCode), 0
	}
	dist := distanceCode - numDistanceShortCodes + 4
	bucket := log2FloorNonZero(uint(dist)) - 1
	prefix := (dist >> bucket) & 1
	offset := (2 + prefix) << bucket
	nbits := bucket
	code = uint16(numDistanceShortCodes + 2*(int(nbits)-1) + prefix)
	extra = nbits<<24 | uint32(dist-offset)
	return code, extra
}
