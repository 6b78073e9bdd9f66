package backref

import "math"

var infinity = float32(math.Inf(1))

// endOfPath terminates the forward-linked command list that path
// reconstruction writes into the next fields.
const endOfPath = -1

// A Node is one entry of the shortest-path table, describing the best known
// command ending at its position.
//
// The table keeps this invariant: for every position p with a finite cost,
// cost equals the cost of the predecessor node at p - insertLen - copyLen
// plus the full price of the command that connects them (insert code, copy
// code, distance symbol, extra bits, and the literal run in between), and
// node 0 has cost 0.
type Node struct {
	// copyLen is the length of the copy that ends at this position; 0 for
	// the start node.
	copyLen int

	// lenCode is the copy length used for prefix coding; it differs from
	// copyLen only for dictionary references.
	lenCode int

	// distance is the absolute backward distance of the incoming copy.
	distance int

	// shortCode is 0 when the distance is coded raw (distance + 15), or
	// k+1 when last-distance short code k was used.
	shortCode int

	// insertLen is the length of the literal run preceding the copy.
	insertLen int

	// cost is the best known total cost, in fractional bits, of reaching
	// this position from the start of the block; infinity if unreached.
	// It is dead once path reconstruction has run.
	cost float32

	// next is written by path reconstruction: the command length to jump
	// forward by from this node, or endOfPath on the last chosen node.
	next int
}

// CopyLength returns the length of the copy ending at this node.
func (n *Node) CopyLength() int { return n.copyLen }

// LengthCode returns the copy length to use for prefix coding.
func (n *Node) LengthCode() int { return n.lenCode }

// Distance returns the absolute backward distance of the incoming copy.
func (n *Node) Distance() int { return n.distance }

// DistanceCode returns the intermediate distance code: the short code used,
// or the distance plus numDistanceShortCodes-1 if none was.
func (n *Node) DistanceCode() int {
	if n.shortCode == 0 {
		return n.distance + numDistanceShortCodes - 1
	}
	return n.shortCode - 1
}

// InsertLength returns the literal run length preceding the copy.
func (n *Node) InsertLength() int { return n.insertLen }

// CommandLength returns the number of positions the incoming command spans.
func (n *Node) CommandLength() int { return n.copyLen + n.insertLen }

func initNodes(nodes []Node) {
	stub := Node{cost: infinity}
	for i := range nodes {
		nodes[i] = stub
	}
}

/* REQUIRES: len >= 2, start <= pos */
/* REQUIRES: cost < infinity, nodes[start].cost < infinity */
/* Maintains the node-array invariant. */
func updateNode(nodes []Node, pos, start, length, lenCode, dist, shortCode int, cost float32) {
	next := &nodes[pos+length]
	next.copyLen = length
	next.lenCode = lenCode
	next.distance = dist
	next.shortCode = shortCode
	next.insertLen = pos - start
	next.cost = cost
}
