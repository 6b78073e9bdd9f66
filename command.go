package backref

// A Command is the basic unit of the chosen parse: emit InsertLen literal
// bytes, then copy CopyLen bytes from Distance() bytes back. A command with
// CopyLen == 0 can only appear as the implicit trailer of a block (the
// residual literals are carried in lastInsertLen instead).
type Command struct {
	// InsertLen is the number of literal bytes preceding the copy.
	InsertLen int

	// CopyLen is the number of bytes to copy.
	CopyLen int

	// LenCode is the copy length used to form the length prefix code. It
	// equals CopyLen except for static dictionary references, which carry
	// a synthetic code for their transform.
	LenCode int

	// DistCode is the intermediate distance code: values below
	// numDistanceShortCodes select a recent distance, larger values encode
	// the distance itself plus numDistanceShortCodes-1.
	DistCode int

	// CmdPrefix and DistPrefix are the command and distance symbols the
	// entropy coder will see; DistExtra packs the distance extra bits.
	CmdPrefix  uint16
	DistPrefix uint16
	DistExtra  uint32
}

func makeCommand(insertLen, copyLen, lenCode, distCode int) Command {
	c := Command{
		InsertLen: insertLen,
		CopyLen:   copyLen,
		LenCode:   lenCode,
		DistCode:  distCode,
	}
	c.DistPrefix, c.DistExtra = prefixEncodeCopyDistance(distCode)
	c.CmdPrefix = combineLengthCodes(
		insertLengthCode(insertLen), copyLengthCode(lenCode), c.DistPrefix == 0)
	return c
}

// Distance returns the backward distance a raw-coded command copies from,
// or 0 if the command reuses a cached distance (DistCode < 16).
func (c *Command) Distance() int {
	if c.DistCode < numDistanceShortCodes {
		return 0
	}
	return c.DistCode - numDistanceShortCodes + 1
}

// computeDistanceCode finds the shortest encoding for distance given the
// last four distances used. Codes 0-3 reference the cache directly, codes
// 4-15 small offsets from its two most recent entries; anything else is
// coded as the distance itself plus 15. When noReuse is set, the cache is
// ignored and the raw code is always produced.
func computeDistanceCode(distance, maxDistance int, distCache []int, noReuse bool) int {
	if !noReuse && distance <= maxDistance {
		if distance == distCache[0] {
			return 0
		} else if distance == distCache[1] {
			return 1
		} else if distance == distCache[2] {
			return 2
		} else if distance == distCache[3] {
			return 3
		} else if distance >= 6 {
			for k := 4; k < numDistanceShortCodes; k++ {
				candidate := distCache[distanceCacheIndex[k]] + distanceCacheOffset[k]
				if distance == candidate && distance >= shortCodeLimit[k] {
					return k
				}
			}
		}
	}
	return distance + numDistanceShortCodes - 1
}
