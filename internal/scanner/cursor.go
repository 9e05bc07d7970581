package scanner

import (
	"atlint/internal/source"
)

// Cursor walks a byte buffer while tracking the absolute 1-indexed position
// of the current byte. The anchor seats the buffer at an arbitrary place in
// the original file, which is what lets nested argument re-scans report
// file-absolute coordinates.
type Cursor struct {
	src []byte
	off int
	pos source.Pos
}

// NewCursor creates a cursor over src whose first byte sits at anchor.
func NewCursor(src []byte, anchor source.Pos) Cursor {
	return Cursor{
		src: src,
		off: 0,
		pos: anchor,
	}
}

// EOF reports whether the whole buffer has been consumed.
func (c *Cursor) EOF() bool {
	return c.off >= len(c.src)
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// PeekAt reads the byte n positions ahead of the current one, or 0 past EOF.
func (c *Cursor) PeekAt(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

// Pos returns the absolute position of the current byte.
func (c *Cursor) Pos() source.Pos {
	return c.pos
}

// Bump consumes the current byte and returns it. Newlines advance the line
// counter; columns reset to 1 because embedded line breaks are real file
// lines even inside a re-scanned argument buffer.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.pos.Line++
		c.pos.Col = 1
	} else {
		c.pos.Col++
	}
	return b
}
