package backref

import (
	"math"
	"math/bits"
)

func log2FloorNonZero(n uint) uint32 {
	return uint32(bits.Len(n) - 1)
}

// fastLog2 is log2(v) with fastLog2(0) == 0, the convention the cost
// formulas rely on for empty histograms.
func fastLog2(v int) float64 {
	if v == 0 {
		return 0
	}
	return math.Log2(float64(v))
}
