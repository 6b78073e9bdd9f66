// The backref package chooses the backward references for a Brotli-style
// compressor.
//
// A compressor of this family has three main parts:
//   - Something that finds candidate matches (repeated sequences of bytes)
//   - Something that decides which of those matches to actually use
//   - An entropy coder for the chosen commands
//
// This package is the middle part. Given a block of input and a source of
// candidate matches, it produces a sequence of commands, each one an insert
// run of literal bytes followed by a copy from earlier in the stream. At the
// highest quality levels it runs a shortest-path search over all positions
// in the block, weighing each possible command by an estimate of how many
// bits it would cost to encode, and iterating the search with a cost model
// rebuilt from its own output. At lower quality levels it uses a greedy
// scan with heuristic match scoring.
//
// The package does not produce a bit stream; the emitted Command values are
// the intermediate representation that an entropy coding stage consumes.
package backref
