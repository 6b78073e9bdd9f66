package backref

// This file implements the shortest-path search over block positions that
// quality levels 10 and 11 use. Each node of the search is a stream
// position; each edge is a command (a literal run plus a copy), weighed by
// the cost model's estimate of its encoded size in bits.

// computeDistanceCache fills distCache[0..3] with the last four distances
// that would be in effect at pos if the shortest path of commands computed
// so far were used, walking the node array backward. The last four
// distances at the start of the block are in startingDistCache.
//
// REQUIRES: nodes[pos].cost < infinity
// REQUIRES: nodes[0..pos] satisfies the node-array invariant.
func computeDistanceCache(blockStart, pos, maxBackward int, startingDistCache []int, nodes []Node, distCache []int) {
	idx := 0
	p := pos
	/* Because every command covers at least two positions, this does at
	   most (pos + 1) / 2 iterations. */
	for idx < 4 && p > 0 {
		clen := nodes[p].copyLen
		ilen := nodes[p].insertLen
		dist := nodes[p].distance
		/* Since blockStart + p is the end position of the command, the
		   copy part starts from blockStart + p - clen. Distances greater
		   than that, or greater than maxBackward, are static dictionary
		   references and do not update the last distances. Neither does
		   distance code 0 (last distance). */
		if dist+clen <= blockStart+p && dist <= maxBackward &&
			nodes[p].DistanceCode() > 0 {
			distCache[idx] = dist
			idx++
		}
		p -= clen + ilen
	}
	for ; idx < 4; idx++ {
		distCache[idx] = startingDistCache[0]
		startingDistCache = startingDistCache[1:]
	}
}

// computeMinimumCopyLength returns the smallest copy length that could
// still improve the cost of some future position. Copies shorter than this
// are provably unhelpful at pos.
func computeMinimumCopyLength(queue *startPosQueue, nodes []Node, model *costModel, numBytes, pos int) int {
	/* Compute the minimum possible cost of reaching any future position. */
	start0 := queue.at(0).pos
	minCost := nodes[start0].cost +
		model.literalCost(start0, pos) +
		model.minCostCmd
	length := 2
	nextLenBucket := 4
	nextLenOffset := 10
	for pos+length <= numBytes && nodes[pos+length].cost <= minCost {
		/* (pos + length) was already reached with no more cost than the
		   minimum possible cost of reaching anything from this pos, so
		   there is no point in looking for lengths <= length. */
		length++
		if length == nextLenOffset {
			/* The next copy length code bucket starts here, which adds
			   one more extra bit to the minimum cost. */
			minCost += 1.0
			nextLenOffset += nextLenBucket
			nextLenBucket *= 2
		}
	}
	return length
}

// updateNodes relaxes the outgoing edges at pos: every usable last-distance
// short code, then every fresh match from the matcher, from up to maxIters
// of the cheapest known start positions.
func updateNodes(nodes []Node, ring []byte, mask, numBytes, blockStart, pos, maxBackward int,
	startingDistCache []int, matches []Match, model *costModel, queue *startPosQueue,
	maxZopfliLen, maxIters int) {
	curIx := blockStart + pos
	curIxMasked := curIx & mask
	maxDistance := min(curIx, maxBackward)
	maxLen := numBytes - pos

	if nodes[pos].cost <= model.literalCost(0, pos) {
		posdata := posData{
			pos:      pos,
			costdiff: nodes[pos].cost - model.literalCost(0, pos),
		}
		computeDistanceCache(blockStart, pos, maxBackward,
			startingDistCache, nodes, posdata.distanceCache[:])
		queue.push(&posdata)
	}

	minLen := computeMinimumCopyLength(queue, nodes, model, numBytes, pos)

	/* Go over the command starting positions in order of increasing cost
	   difference. */
	for k := 0; k < maxIters && k < queue.size(); k++ {
		posdata := queue.at(k)
		start := posdata.pos
		inscode := insertLengthCode(pos - start)
		baseCost := posdata.costdiff + float32(insertExtra(inscode)) +
			model.literalCost(0, pos)

		/* Look for last distance matches using the distance cache from
		   this starting position. */
		bestLen := minLen - 1
		for j := 0; j < numDistanceShortCodes && bestLen < maxLen; j++ {
			backward := posdata.distanceCache[distanceCacheIndex[j]] +
				distanceCacheOffset[j]
			if backward <= 0 || backward > maxDistance {
				continue
			}
			prevIx := (curIx - backward) & mask

			if curIxMasked+bestLen >= len(ring) ||
				prevIx+bestLen >= len(ring) ||
				ring[curIxMasked+bestLen] != ring[prevIx+bestLen] {
				continue
			}
			length := matchLength(ring[prevIx:], ring[curIxMasked:], maxLen)
			distCost := baseCost + model.distanceCost(j)
			for l := bestLen + 1; l <= length; l++ {
				copycode := copyLengthCode(l)
				cmdcode := combineLengthCodes(inscode, copycode, j == 0)
				cost := baseCost
				if cmdcode >= 128 {
					cost = distCost
				}
				cost += float32(copyExtra(copycode)) + model.commandCost(cmdcode)
				if cost < nodes[pos+l].cost {
					updateNode(nodes, pos, start, l, l, backward, j+1, cost)
				}
				bestLen = l
			}
		}

		/* At higher iterations look only for new last distance matches,
		   since looking only for new command start positions with the same
		   distances does not help much. */
		if k >= 2 {
			continue
		}

		/* Loop through all possible copy lengths at this position. */
		length := minLen
		for i := range matches {
			match := &matches[i]
			dist := match.Distance
			isDictionaryMatch := dist > maxDistance
			/* All possible last distance matches were tried above, so the
			   raw distance code can be used here. */
			distCode := dist + numDistanceShortCodes - 1
			distSymbol, distExtra := prefixEncodeCopyDistance(distCode)
			distNumExtra := distExtra >> 24
			distCost := baseCost + float32(distNumExtra) +
				model.distanceCost(int(distSymbol))

			/* Try all copy lengths up to the maximum for this distance. If
			   the distance refers to the static dictionary, or the maximum
			   length is long enough, try only the maximum length. */
			maxMatchLen := match.Length
			if length < maxMatchLen &&
				(isDictionaryMatch || maxMatchLen > maxZopfliLen) {
				length = maxMatchLen
			}
			for ; length <= maxMatchLen; length++ {
				lenCode := length
				if isDictionaryMatch {
					lenCode = match.LenCode
				}
				copycode := copyLengthCode(lenCode)
				cmdcode := combineLengthCodes(inscode, copycode, false)
				cost := distCost + float32(copyExtra(copycode)) +
					model.commandCost(cmdcode)
				if cost < nodes[pos+length].cost {
					updateNode(nodes, pos, start, length, lenCode, dist, 0, cost)
				}
			}
		}
	}
}

// computeShortestPathFromNodes turns the finished node array into a forward
// singly-linked list of chosen commands rooted at node 0, writing each
// chosen node's next field, and returns the number of commands. It runs
// exactly once per pass; the cost fields are dead afterwards.
func computeShortestPathFromNodes(numBytes int, nodes []Node) int {
	index := numBytes
	numCommands := 0
	for nodes[index].cost == infinity {
		index--
	}
	nodes[index].next = endOfPath
	for index != 0 {
		length := nodes[index].CommandLength()
		index -= length
		nodes[index].next = length
		numCommands++
	}
	return numCommands
}

// CreateCommands walks the forward-linked path in nodes and appends the
// chosen commands to dst. The caller's pending literal run is folded into
// the first command via lastInsertLen, and the residual literals after the
// last copy are accumulated back into it. Real backward distances (not
// dictionary references, not cache reuses) are shifted into distCache,
// most recent first. numLiterals is increased by the number of literal
// bytes covered.
//
// REQUIRES: len(nodes) >= numBytes + 1, path reconstruction has run.
func CreateCommands(dst []Command, nodes []Node, numBytes, blockStart, maxBackward int,
	distCache []int, lastInsertLen, numLiterals *int) []Command {
	pos := 0
	offset := nodes[0].next
	for i := 0; offset != endOfPath; i++ {
		next := &nodes[pos+offset]
		copyLength := next.copyLen
		insertLength := next.insertLen
		pos += insertLength
		offset = next.next
		if i == 0 {
			insertLength += *lastInsertLen
			*lastInsertLen = 0
		}

		distance := next.distance
		lenCode := next.lenCode
		maxDistance := min(blockStart+pos, maxBackward)
		isDictionary := distance > maxDistance
		distCode := next.DistanceCode()

		dst = append(dst, makeCommand(insertLength, copyLength, lenCode, distCode))

		if !isDictionary && distCode > 0 {
			distCache[3] = distCache[2]
			distCache[2] = distCache[1]
			distCache[1] = distCache[0]
			distCache[0] = distance
		}

		*numLiterals += insertLength
		pos += copyLength
	}
	*lastInsertLen += numBytes - pos
	return dst
}

// ComputeShortestPath runs one optimization pass over the block with a
// literal-cost model, querying the matcher position by position. On return
// nodes[0..numBytes] holds the forward-linked shortest path (see
// CreateCommands) and the result is the number of commands on it.
//
// The node-array invariant holds for the finished table: for each position
// p in [1, numBytes] with finite cost, nodes[p].CommandLength() <= p and
// the node at p - CommandLength() also has finite cost.
//
// REQUIRES: len(nodes) >= numBytes + 1.
func ComputeShortestPath(nodes []Node, ring []byte, mask, numBytes, position int,
	params *Params, distCache []int, m Matcher) int {
	maxBackward := maxBackwardLimit(params.WindowBits)
	mzl := maxZopfliLen(params)
	maxIters := maxZopfliCandidates(params)
	storeEnd := position
	if numBytes >= m.StoreLookahead() {
		storeEnd = position + numBytes - m.StoreLookahead() + 1
	}

	initNodes(nodes[:numBytes+1])
	nodes[0].cost = 0
	model := newCostModel(numBytes)
	model.setFromLiteralCosts(ring, mask, position)
	var queue startPosQueue
	matches := make([]Match, 0, maxNumMatches)

	htl := m.HashTypeLength()
	for i := 0; i+htl-1 < numBytes; i++ {
		pos := position + i
		maxDistance := min(pos, maxBackward)
		matches = m.FindAllMatches(matches[:0], ring, mask, pos, numBytes-i, maxDistance)
		if n := len(matches); n > 0 && matches[n-1].Length > mzl {
			matches[0] = matches[n-1]
			matches = matches[:1]
		}
		updateNodes(nodes, ring, mask, numBytes, position, i, maxBackward,
			distCache, matches, model, &queue, mzl, maxIters)
		if len(matches) == 1 && matches[0].Length > mzl {
			/* Add the tail of the copy to the matcher's index, and skip
			   ahead; searching inside a very long copy costs much time and
			   little ratio. */
			m.StoreRange(ring, mask, pos+1, min(pos+matches[0].Length, storeEnd))
			i += matches[0].Length - 1
			queue.reset()
		}
	}

	return computeShortestPathFromNodes(numBytes, nodes)
}

// zopfliIterate is one optimization pass at quality 11, over matches found
// in advance for the whole block.
func zopfliIterate(nodes []Node, ring []byte, mask, numBytes, position int,
	params *Params, distCache []int, model *costModel, numMatches []int, matches []Match) int {
	maxBackward := maxBackwardLimit(params.WindowBits)
	mzl := maxZopfliLen(params)
	maxIters := maxZopfliCandidates(params)
	var queue startPosQueue
	curMatchPos := 0
	nodes[0].cost = 0
	for i := 0; i+3 < numBytes; i++ {
		cur := matches[curMatchPos : curMatchPos+numMatches[i]]
		updateNodes(nodes, ring, mask, numBytes, position, i, maxBackward,
			distCache, cur, model, &queue, mzl, maxIters)
		curMatchPos += numMatches[i]
		if numMatches[i] == 1 && matches[curMatchPos-1].Length > mzl {
			i += matches[curMatchPos-1].Length - 1
			queue.reset()
		}
	}
	return computeShortestPathFromNodes(numBytes, nodes)
}

// createHqZopfliBackwardReferences is the quality-11 driver: it runs the
// matcher over the whole block up front, then optimizes the block twice,
// first under the literal-cost model and then under a histogram model
// built from the first pass's own commands.
func createHqZopfliBackwardReferences(dst []Command, ring []byte, mask, numBytes, position int,
	params *Params, m Matcher, distCache []int, lastInsertLen, numLiterals *int) []Command {
	maxBackward := maxBackwardLimit(params.WindowBits)
	numMatches := make([]int, numBytes)
	matches := make([]Match, 0, 4*numBytes)
	storeEnd := position
	if numBytes >= m.StoreLookahead() {
		storeEnd = position + numBytes - m.StoreLookahead() + 1
	}

	htl := m.HashTypeLength()
	for i := 0; i+htl-1 < numBytes; i++ {
		pos := position + i
		maxDistance := min(pos, maxBackward)
		maxLength := numBytes - i
		start := len(matches)
		matches = m.FindAllMatches(matches, ring, mask, pos, maxLength, maxDistance)
		numMatches[i] = len(matches) - start
		if numMatches[i] > 0 {
			matchLen := matches[len(matches)-1].Length
			if matchLen > maxZopfliLenQuality11 {
				/* Collapse the position to this one match, and skip the
				   positions it covers; numMatches stays zero for them. */
				matches[start] = matches[len(matches)-1]
				matches = matches[:start+1]
				numMatches[i] = 1
				/* Add the tail of the copy to the matcher's index. */
				m.StoreRange(ring, mask, pos+1, min(pos+matchLen, storeEnd))
				i += matchLen - 1
			}
		}
	}

	origNumLiterals := *numLiterals
	origLastInsertLen := *lastInsertLen
	var origDistCache [4]int
	copy(origDistCache[:], distCache[:4])
	base := len(dst)

	nodes := make([]Node, numBytes+1)
	model := newCostModel(numBytes)
	for pass := 0; pass < 2; pass++ {
		initNodes(nodes)
		if pass == 0 {
			model.setFromLiteralCosts(ring, mask, position)
		} else {
			model.setFromCommands(ring, mask, position, dst[base:], origLastInsertLen)
		}
		dst = dst[:base]
		*numLiterals = origNumLiterals
		*lastInsertLen = origLastInsertLen
		copy(distCache, origDistCache[:])
		zopfliIterate(nodes, ring, mask, numBytes, position,
			params, distCache, model, numMatches, matches)
		dst = CreateCommands(dst, nodes, numBytes, position, maxBackward,
			distCache, lastInsertLen, numLiterals)
	}
	return dst
}
