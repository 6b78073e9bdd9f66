package backref

// A Hasher maintains a hash table for the greedy path's candidate lookups.
// It is a simpler capability than Matcher: one bucket of recent positions
// per hash, no exhaustive search.
type Hasher interface {
	// Init allocates the Hasher's internal storage, or clears it if it is
	// already allocated. Init must be called before any of the other
	// methods.
	Init()

	// Store puts an entry in the hash table for the data at index.
	Store(data []byte, index int)

	// Candidates hashes the data at index, fetches a list of possible
	// matches from the hash table, and appends the list to dst.
	Candidates(dst []int, data []byte, index int) []int
}

const (
	kHashMul64     uint64 = 0x1E35A7BD1E35A7BD
	kHashMul64Long uint64 = 0x1FE35A7BD3579BD3
)

// hasherForQuality mirrors the reference implementation's choice of hash
// table per compression level.
func hasherForQuality(quality int) Hasher {
	switch {
	case quality <= 2:
		return &SweepHasher{TableBits: 16, Sweep: 1}
	case quality == 3:
		return &SweepHasher{TableBits: 16, Sweep: 2}
	case quality == 4:
		return &SweepHasher{TableBits: 17, Sweep: 4}
	case quality <= 7:
		return &BucketHasher{BlockBits: quality - 1, BucketBits: 15, HashLen: 5}
	default:
		return &BucketHasher{BlockBits: quality - 1, BucketBits: 15, HashLen: 7}
	}
}
