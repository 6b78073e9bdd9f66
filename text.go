package backref

import "fmt"

// AppendText appends a human-readable rendering of a command stream to dst.
// Literal runs appear as themselves and copies as <Length,Distance> symbols
// (<Length,#code> for cache-relative distances). It is meant for debugging
// and for readable test expectations, not for decoding.
func AppendText(dst []byte, src []byte, commands []Command, pos int) []byte {
	for i := range commands {
		c := &commands[i]
		if c.InsertLen > 0 {
			dst = append(dst, src[pos:pos+c.InsertLen]...)
			pos += c.InsertLen
		}
		if c.CopyLen > 0 {
			if d := c.Distance(); d > 0 {
				dst = append(dst, fmt.Sprintf("<%d,%d>", c.CopyLen, d)...)
			} else {
				dst = append(dst, fmt.Sprintf("<%d,#%d>", c.CopyLen, c.DistCode)...)
			}
			pos += c.CopyLen
		}
	}
	return dst
}
