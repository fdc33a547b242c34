package token

import "bytes"

// Cursor is an append-only scan position over input bytes with eager
// line/column tracking. Scanners never move it backwards.
type Cursor struct {
	d    []byte
	off  int
	line int
	col  int
}

func NewCursor(d []byte) *Cursor {
	return &Cursor{d: d, line: 1, col: 1}
}

func (c *Cursor) EOF() bool {
	return c.off >= len(c.d)
}

// Cur returns the current byte, or 0 at end of input.
func (c *Cursor) Cur() byte {
	if c.off >= len(c.d) {
		return 0
	}
	return c.d[c.off]
}

// Peek returns the byte n positions away, or 0 outside the input.
func (c *Cursor) Peek(n int) byte {
	i := c.off + n
	if i < 0 || i >= len(c.d) {
		return 0
	}
	return c.d[i]
}

func (c *Cursor) Next() {
	if c.off >= len(c.d) {
		return
	}
	if c.d[c.off] == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	c.off++
}

func (c *Cursor) NextN(n int) {
	for range n {
		c.Next()
	}
}

// Consume advances past b if it is the current byte.
func (c *Cursor) Consume(b byte) bool {
	if c.Cur() != b {
		return false
	}
	c.Next()
	return true
}

func (c *Cursor) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.d[c.off:], []byte(s))
}

func (c *Cursor) Pos() Pos {
	return Pos{Off: c.off, Line: c.line, Col: c.col}
}

func (c *Cursor) Off() int {
	return c.off
}

func (c *Cursor) SliceFrom(start int) []byte {
	return c.d[start:c.off]
}
