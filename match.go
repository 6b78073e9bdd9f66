package backref

// A Match is one candidate backward reference at a position.
type Match struct {
	// Distance is how far back the matching bytes are. A distance greater
	// than the current maximum backward limit marks a static dictionary
	// reference.
	Distance int

	// Length is the number of matching bytes.
	Length int

	// LenCode is the length used for prefix coding. Matchers set it equal
	// to Length for regular matches; dictionary references carry the
	// synthetic code of their transform.
	LenCode int
}

// A Matcher is the source of candidate matches for the optimizer. It is
// queried once per stream position and reports everything it can find, not
// just the longest match.
type Matcher interface {
	// Init allocates or clears the Matcher's internal storage. It must be
	// called before the first FindAllMatches or Store of a stream.
	Init()

	// FindAllMatches appends to dst the matches found at pos, sorted by
	// ascending length; within a run of equal-cost length codes, distances
	// must be non-decreasing. Matches with Distance > maxDistance are
	// dictionary references. The position is also added to the index.
	// The caller guarantees len(ring) >= (pos & mask) + maxLength.
	FindAllMatches(dst []Match, ring []byte, mask, pos, maxLength, maxDistance int) []Match

	// Store adds the position to the index without searching.
	Store(ring []byte, mask, pos int)

	// StoreRange indexes every position in [start, end).
	StoreRange(ring []byte, mask, start, end int)

	// HashTypeLength is the number of bytes hashed per position; positions
	// closer than this to the end of the block are not searched.
	HashTypeLength() int

	// StoreLookahead is how far past a stored position the Matcher may
	// read; callers clamp StoreRange with it near the end of the block.
	StoreLookahead() int
}
