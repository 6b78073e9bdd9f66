package backref

// A costModel prices the symbols the entropy coder would emit: one cost per
// command symbol, one per distance symbol, and a cumulative per-position
// literal cost, all in fractional bits.
type costModel struct {
	cmdCost  [numCommandSymbols]float32
	distCost [numDistanceSymbols]float32

	// literalCosts[j] - literalCosts[i] is the cost of coding the bytes in
	// [i, j) as literals.
	literalCosts []float32

	minCostCmd float32
	numBytes   int
}

func newCostModel(numBytes int) *costModel {
	return &costModel{
		literalCosts: make([]float32, numBytes+2),
		numBytes:     numBytes,
	}
}

// setCost converts a symbol histogram to bit costs with the Shannon
// formula. Unseen symbols price above any observed one; no symbol prices
// below one bit.
func setCost(histogram []uint32, cost []float32) {
	sum := 0
	for _, h := range histogram {
		sum += int(h)
	}
	log2sum := float32(fastLog2(sum))
	for i, h := range histogram {
		if h == 0 {
			cost[i] = log2sum + 2
			continue
		}

		/* Shannon bits for this symbol. */
		cost[i] = log2sum - float32(fastLog2(int(h)))

		/* Cannot be coded with less than 1 bit */
		if cost[i] < 1 {
			cost[i] = 1
		}
	}
}

// setFromLiteralCosts initializes the model for a first pass: measured
// literal costs, and a pessimistic logarithmic shape for the command and
// distance alphabets (a symbol costs no less than coding its index).
func (cm *costModel) setFromLiteralCosts(ring []byte, mask, position int) {
	literalCosts := cm.literalCosts
	estimateLiteralCosts(literalCosts[1:], ring, mask, position, cm.numBytes)
	literalCosts[0] = 0.0
	for i := 0; i < cm.numBytes; i++ {
		literalCosts[i+1] += literalCosts[i]
	}
	for i := range cm.cmdCost {
		cm.cmdCost[i] = float32(fastLog2(11 + i))
	}
	for i := range cm.distCost {
		cm.distCost[i] = float32(fastLog2(20 + i))
	}
	cm.minCostCmd = float32(fastLog2(11))
}

// setFromCommands rebuilds the model from the histograms of a previously
// emitted command stream. lastInsertLen is the residual literal run the
// stream started with, so the literal histogram covers the same bytes the
// commands do.
func (cm *costModel) setFromCommands(ring []byte, mask, position int, commands []Command, lastInsertLen int) {
	var histogramLiteral [numLiteralSymbols]uint32
	var histogramCmd [numCommandSymbols]uint32
	var histogramDist [numDistanceSymbols]uint32
	var costLiteral [numLiteralSymbols]float32

	pos := position - lastInsertLen
	for i := range commands {
		c := &commands[i]
		histogramCmd[c.CmdPrefix]++
		if c.CmdPrefix >= 128 {
			histogramDist[c.DistPrefix]++
		}
		for j := 0; j < c.InsertLen; j++ {
			histogramLiteral[ring[(pos+j)&mask]]++
		}
		pos += c.InsertLen + c.CopyLen
	}

	setCost(histogramLiteral[:], costLiteral[:])
	setCost(histogramCmd[:], cm.cmdCost[:])
	setCost(histogramDist[:], cm.distCost[:])

	minCostCmd := infinity
	for _, c := range cm.cmdCost {
		minCostCmd = min(minCostCmd, c)
	}
	cm.minCostCmd = minCostCmd

	literalCosts := cm.literalCosts
	literalCosts[0] = 0.0
	for i := 0; i < cm.numBytes; i++ {
		literalCosts[i+1] = literalCosts[i] +
			costLiteral[ring[(position+i)&mask]]
	}
}

func (cm *costModel) commandCost(cmdcode uint16) float32 {
	return cm.cmdCost[cmdcode]
}

func (cm *costModel) distanceCost(distcode int) float32 {
	return cm.distCost[distcode]
}

func (cm *costModel) literalCost(from, to int) float32 {
	return cm.literalCosts[to] - cm.literalCosts[from]
}
