package backref

import (
	"math"
	"testing"
)

func TestSetCost(t *testing.T) {
	histogram := []uint32{8, 4, 0, 4}
	cost := make([]float32, 4)
	setCost(histogram, cost)

	// 16 symbols total: 8 occurrences cost 1 bit, 4 cost 2 bits, unseen
	// symbols cost log2(16) + 2.
	want := []float32{1, 2, 6, 2}
	for i := range want {
		if math.Abs(float64(cost[i]-want[i])) > 1e-5 {
			t.Errorf("cost[%d] = %v, want %v", i, cost[i], want[i])
		}
	}
}

func TestSetCostFloor(t *testing.T) {
	// A symbol covering nearly the whole histogram would cost less than
	// one bit by the Shannon formula; the floor keeps it at 1.
	histogram := []uint32{1000, 1}
	cost := make([]float32, 2)
	setCost(histogram, cost)
	if cost[0] != 1 {
		t.Errorf("cost[0] = %v, want the 1-bit floor", cost[0])
	}
	if cost[1] <= cost[0] {
		t.Errorf("rare symbol cost %v not above common symbol cost %v", cost[1], cost[0])
	}
}

func TestSetFromLiteralCosts(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, and again the fox")
	ring, mask := testRing(data)
	cm := newCostModel(len(data))
	cm.setFromLiteralCosts(ring, mask, 0)

	if cm.literalCosts[0] != 0 {
		t.Errorf("literalCosts[0] = %v, want 0", cm.literalCosts[0])
	}
	for i := 1; i <= len(data); i++ {
		if cm.literalCosts[i] < cm.literalCosts[i-1] {
			t.Fatalf("literalCosts not non-decreasing at %d", i)
		}
	}
	if got, want := cm.minCostCmd, float32(math.Log2(11)); got != want {
		t.Errorf("minCostCmd = %v, want %v", got, want)
	}
	if cm.cmdCost[0] != cm.minCostCmd {
		t.Errorf("cmdCost[0] = %v, want %v", cm.cmdCost[0], cm.minCostCmd)
	}
	for i := 1; i < numCommandSymbols; i++ {
		if cm.cmdCost[i] < cm.cmdCost[i-1] {
			t.Fatalf("cmdCost not non-decreasing at %d", i)
		}
	}
}

func TestSetFromCommands(t *testing.T) {
	data := []byte("abcabcabcabcabcabc")
	ring, mask := testRing(data)
	commands := []Command{
		makeCommand(3, 3, 3, 3+15),
		makeCommand(0, 6, 6, 0),
		makeCommand(2, 4, 4, 0),
	}
	cm := newCostModel(len(data))
	cm.setFromCommands(ring, mask, 0, commands, 0)

	// Only the first command has an explicit distance (CmdPrefix >= 128);
	// its distance symbol must be the single nonzero histogram entry, so
	// every other distance symbol prices as unseen.
	sym := commands[0].DistPrefix
	if commands[0].CmdPrefix < 128 {
		t.Fatalf("raw-distance command has CmdPrefix %d < 128", commands[0].CmdPrefix)
	}
	if commands[1].CmdPrefix >= 128 || commands[2].CmdPrefix >= 128 {
		t.Fatalf("last-distance commands should have CmdPrefix < 128")
	}
	for i := 0; i < numDistanceSymbols; i++ {
		if i == int(sym) {
			if cm.distCost[i] >= cm.distCost[(i+1)%numDistanceSymbols] {
				t.Errorf("observed distance symbol %d not cheaper than unseen ones", i)
			}
		}
	}

	minCost := infinity
	for _, c := range cm.cmdCost {
		minCost = min(minCost, c)
	}
	if cm.minCostCmd != minCost {
		t.Errorf("minCostCmd = %v, want %v", cm.minCostCmd, minCost)
	}

	// The literal histogram covers exactly the insert runs: 3 + 0 + 2
	// bytes here, so the prefix sums must grow strictly over positions
	// whose bytes were observed.
	if cm.literalCosts[len(data)] <= 0 {
		t.Errorf("cumulative literal cost = %v, want > 0", cm.literalCosts[len(data)])
	}
}

func TestEstimateLiteralCosts(t *testing.T) {
	uniform := make([]byte, 4096)
	for i := range uniform {
		uniform[i] = 'x'
	}
	ring, mask := testRing(uniform)
	cost := make([]float32, len(uniform))
	estimateLiteralCosts(cost, ring, mask, 0, len(uniform))
	for i, c := range cost {
		if c < 0.5 || c > 2 {
			t.Fatalf("uniform data: cost[%d] = %v, want cheap literals", i, c)
		}
	}

	varied := make([]byte, 4096)
	for i := range varied {
		varied[i] = byte(i * 211)
	}
	ring, mask = testRing(varied)
	estimateLiteralCosts(cost, ring, mask, 0, len(varied))
	sum := float32(0)
	for _, c := range cost {
		sum += c
	}
	if avg := sum / float32(len(varied)); avg < 5 {
		t.Errorf("varied data: average literal cost %v, want near 8 bits", avg)
	}
}
