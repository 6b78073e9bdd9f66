package backref

/* Specification: 3.3. Alphabet sizes: insert-and-copy length */
const numLiteralSymbols = 256

const numCommandSymbols = 704

/* Specification: 4. Encoding of distances */
const numDistanceShortCodes = 16

const numDistanceSymbols = 520

// Quality levels at and above zopflificationQuality use the shortest-path
// optimizer instead of the greedy scan.
const (
	zopflificationQuality   = 10
	hqZopflificationQuality = 11
)

// The maximum copy length for which the optimizer tries distinct lengths.
// Longer matches are taken whole.
const (
	maxZopfliLenQuality10 = 150
	maxZopfliLenQuality11 = 325
)

func maxZopfliLen(p *Params) int {
	if p.Quality <= 10 {
		return maxZopfliLenQuality10
	}
	return maxZopfliLenQuality11
}

// maxZopfliCandidates is the number of start positions to expand the search
// from at each stream position.
func maxZopfliCandidates(p *Params) int {
	if p.Quality <= 10 {
		return 1
	}
	return 5
}

// maxBackwardLimit bounds the backward distance of a regular copy; anything
// farther is a static dictionary reference. Section 9.1. of the format spec.
func maxBackwardLimit(windowBits int) int {
	return (1 << windowBits) - windowGap
}

const windowGap = 16

// distanceCacheIndex and distanceCacheOffset derive the 16 candidate
// distances of the last-distance short codes from the 4-entry distance
// cache: candidate j is cache[distanceCacheIndex[j]] + distanceCacheOffset[j].
// Section 4. of the format spec; frozen data.
var distanceCacheIndex = [numDistanceShortCodes]int{
	0, 1, 2, 3, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1,
}

var distanceCacheOffset = [numDistanceShortCodes]int{
	0, 0, 0, 0, -1, 1, -2, 2, -3, 3, -1, 1, -2, 2, -3, 3,
}

// shortCodeLimit[j] is the smallest distance that short code j may encode;
// below it the raw distance code is shorter anyway.
var shortCodeLimit = [numDistanceShortCodes]int{
	0, 0, 0, 0,
	6, 6, 11, 11,
	11, 11, 11, 11,
	12, 12, 12, 12,
}
