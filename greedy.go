package backref

import "encoding/binary"

// The greedy path used below quality 10: scan forward, take the best-scoring
// match at each position, with a short lazy-matching window to catch a much
// better match starting a few bytes later.

const literalByteScore = 135

const distanceBitPenalty = 30

/* Score must be positive after applying maximal penalty. */
const scoreBase = distanceBitPenalty * 8 * 8

const minScore = scoreBase + 100

// backwardReferenceScore weighs a match by the literals it absorbs against
// an approximation of the bits its distance costs (log2 of the distance).
// A distance expressible as the previous distance is assumed to cost almost
// nothing.
func backwardReferenceScore(copyLength, backwardReferenceOffset int) int {
	return scoreBase + literalByteScore*copyLength -
		distanceBitPenalty*int(log2FloorNonZero(uint(backwardReferenceOffset)))
}

func backwardReferenceScoreUsingLastDistance(copyLength int) int {
	return literalByteScore*copyLength + scoreBase + 15
}

// greedyCheckMatch checks whether candidate starts a usable match for pos,
// returning the match position and length (0, 0 if not).
func greedyCheckMatch(ring []byte, pos, candidate, maxDistance, posEnd int) (matchPos, matchLen int) {
	if candidate <= 0 || candidate >= pos || pos-candidate > maxDistance {
		return 0, 0
	}
	if binary.LittleEndian.Uint32(ring[pos:]) != binary.LittleEndian.Uint32(ring[candidate:]) {
		return 0, 0
	}
	return candidate, 4 + matchLength(ring[candidate+4:], ring[pos+4:], posEnd-pos-4)
}

// createGreedyBackwardReferences emits commands for one block with the
// greedy strategy. The block must be laid out linearly in ring (positions
// [position, position+numBytes) unmasked); the greedy levels never run with
// a wrapped window.
func createGreedyBackwardReferences(dst []Command, ring []byte, mask, numBytes, position int,
	params *Params, h Hasher, distCache []int, lastInsertLen, numLiterals *int) []Command {
	maxBackward := maxBackwardLimit(params.WindowBits)
	posEnd := position + numBytes

	// sLimit is when to stop looking for matches: the margin gives room
	// for the 8-byte loads the hashers use.
	sLimit := posEnd - 8

	nextEmit := position
	// A match cannot start at position 0: there is nothing to copy from.
	s := max(position, 1)
	prevDistance := distCache[0]
	firstCommand := true
	var candidates []int

	if s > sLimit {
		goto emitRemainder
	}

	for {
		// Heuristic match skipping, as in the snappy-derived scanners: the
		// longer the scan goes without a match, the more bytes are skipped
		// between hash lookups.
		skip := 32

		nextS := s
		var match, matchLen, bestScore int
		for {
			s = nextS
			bytesBetweenHashLookups := skip >> 5
			nextS = s + bytesBetweenHashLookups
			skip += bytesBetweenHashLookups
			if nextS > sLimit {
				goto emitRemainder
			}
			match, matchLen, bestScore = 0, 0, 0
			maxDistance := min(s, maxBackward)
			if prevDistance > 0 {
				// Often there is a match at the same distance back as the
				// previous one. Check for that first.
				m, ml := greedyCheckMatch(ring, s, s-prevDistance, maxDistance, posEnd)
				if ml >= 4 {
					score := backwardReferenceScoreUsingLastDistance(ml)
					if score > bestScore {
						match, matchLen, bestScore = m, ml, score
					}
				}
			}
			candidates = h.Candidates(candidates[:0], ring, s)
			for _, c := range candidates {
				m, ml := greedyCheckMatch(ring, s, c, maxDistance, posEnd)
				if ml < 4 {
					continue
				}
				score := backwardReferenceScore(ml, s-m)
				if score > bestScore {
					match, matchLen, bestScore = m, ml, score
				}
			}
			if bestScore > minScore {
				break
			}
		}

		// We have found a match of at least 4 bytes at s.
		base := s
		origBase := base

		// Look for a sufficiently better match starting up to 4 bytes
		// later before committing to this one.
		found := true
		for i := origBase + 1; i < origBase+5 && i < sLimit && found; i++ {
			found = false
			lazyThreshold := bestScore + 175
			candidates = h.Candidates(candidates[:0], ring, i)
			for _, c := range candidates {
				m, ml := greedyCheckMatch(ring, i, c, min(i, maxBackward), posEnd)
				if ml < 4 {
					continue
				}
				score := backwardReferenceScore(ml, i-m)
				if score > lazyThreshold {
					base = i
					match, matchLen, bestScore = m, ml, score
					found = true
				}
			}
		}

		// Extend the match backward if possible.
		for base > nextEmit && match > 0 && ring[match-1] == ring[base-1] {
			match--
			base--
			matchLen++
		}

		s = base + matchLen

		distance := base - match
		insertLen := base - nextEmit
		if firstCommand {
			insertLen += *lastInsertLen
			*lastInsertLen = 0
			firstCommand = false
		}
		distCode := computeDistanceCode(distance, min(base, maxBackward),
			distCache, params.NoDistanceReuse)
		dst = append(dst, makeCommand(insertLen, matchLen, matchLen, distCode))
		if distCode > 0 {
			distCache[3] = distCache[2]
			distCache[2] = distCache[1]
			distCache[1] = distCache[0]
			distCache[0] = distance
		}
		*numLiterals += insertLen
		prevDistance = distance
		nextEmit = s
		if s >= sLimit {
			goto emitRemainder
		}

		// We could immediately start working at s now, but to improve
		// compression we first update the hash table.
		for i := origBase + 1; i < s && i+8 <= posEnd; i++ {
			h.Store(ring, i)
		}
	}

emitRemainder:
	*lastInsertLen += posEnd - nextEmit
	return dst
}
