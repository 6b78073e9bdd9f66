package backref

import "encoding/binary"

// A SweepHasher stores one position per hash in a flat table, spreading
// consecutive entries over Sweep adjacent slots. With Sweep == 1 it is the
// table the reference implementation uses for compression level 2; Sweep 2
// and 4 correspond to levels 3 and 4.
type SweepHasher struct {
	// TableBits is the base-2 logarithm of the table size.
	TableBits int

	// Sweep is the number of adjacent slots an entry may land in.
	Sweep int

	table []uint32
}

const sweepHashLen = 5

func (h *SweepHasher) Init() {
	tableLen := 1<<h.TableBits + h.Sweep
	if len(h.table) < tableLen {
		h.table = make([]uint32, tableLen)
	} else {
		for i := range h.table {
			h.table[i] = 0
		}
	}
}

func (h *SweepHasher) hash(data []byte) uint64 {
	hash := (binary.LittleEndian.Uint64(data) << (64 - 8*sweepHashLen)) * kHashMul64
	return hash >> (64 - h.TableBits)
}

func (h *SweepHasher) slot(index int) int {
	if h.Sweep == 1 {
		return 0
	}
	return index >> 3 % h.Sweep
}

func (h *SweepHasher) Store(data []byte, index int) {
	hash := h.hash(data[index:])
	h.table[int(hash)+h.slot(index)] = uint32(index)
}

func (h *SweepHasher) Candidates(dst []int, data []byte, index int) []int {
	hash := h.hash(data[index:])
	for _, c := range h.table[hash : int(hash)+h.Sweep] {
		if c != 0 {
			dst = append(dst, int(c))
		}
	}

	h.table[int(hash)+h.slot(index)] = uint32(index)

	return dst
}
