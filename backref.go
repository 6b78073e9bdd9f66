package backref

// Params configures the backward-reference search.
type Params struct {
	// Quality selects the search strategy: 10 runs the shortest-path
	// optimizer once, 11 runs it twice (the second pass under a cost model
	// built from the first pass's output), lower levels use the greedy
	// scan. The default is 11.
	Quality int

	// WindowBits is the base-2 logarithm of the sliding window size.
	// Copies may reach back at most 1<<WindowBits - 16 bytes; anything
	// farther is treated as a static dictionary reference. The default
	// is 22.
	WindowBits int

	// NoDistanceReuse disables the last-distance short codes when the
	// greedy path encodes distances, so every copy carries its raw
	// distance code.
	NoDistanceReuse bool
}

func (p *Params) withDefaults() Params {
	q := *p
	if q.Quality == 0 {
		q.Quality = hqZopflificationQuality
	}
	if q.WindowBits == 0 {
		q.WindowBits = 22
	}
	return q
}

// CreateBackwardReferences chooses the commands for one block of numBytes
// bytes starting at position, and appends them to dst.
//
// ring holds the window bytes, addressed as (position + i) & mask; the
// block itself must be in bounds, i.e. len(ring) >= (position & mask) +
// numBytes. Below quality 10 the block is read unmasked, as
// ring[position+i], so there it must not wrap: len(ring) >= position +
// numBytes. distCache carries the last four distances across blocks and is
// updated in place (len >= 4). lastInsertLen carries the pending literal
// run across blocks: it is folded into the first command emitted, and the
// literals after the last copy of this block are accumulated back into it.
// numLiterals is increased by the number of literal bytes the appended
// commands cover.
//
// m is the match source for qualities 10 and 11, h the hash table for the
// greedy levels; whichever the quality needs may be nil, in which case a
// fresh one is built from params and initialized. A caller-provided m or h
// must already be initialized, and stays owned by the caller.
//
// The search is deterministic: identical inputs and matcher state produce
// an identical command stream.
func CreateBackwardReferences(dst []Command, ring []byte, mask, numBytes, position int,
	params *Params, m Matcher, h Hasher, distCache []int,
	lastInsertLen, numLiterals *int) []Command {
	p := params.withDefaults()
	if p.Quality >= zopflificationQuality {
		if m == nil {
			m = NewTreeMatcher(&p)
			m.Init()
		}
		if p.Quality == zopflificationQuality {
			nodes := make([]Node, numBytes+1)
			ComputeShortestPath(nodes, ring, mask, numBytes, position, &p, distCache, m)
			return CreateCommands(dst, nodes, numBytes, position,
				maxBackwardLimit(p.WindowBits), distCache, lastInsertLen, numLiterals)
		}
		return createHqZopfliBackwardReferences(dst, ring, mask, numBytes, position,
			&p, m, distCache, lastInsertLen, numLiterals)
	}
	if h == nil {
		h = hasherForQuality(p.Quality)
		h.Init()
	}
	return createGreedyBackwardReferences(dst, ring, mask, numBytes, position,
		&p, h, distCache, lastInsertLen, numLiterals)
}
