package source

import "fmt"

// Pos is a 1-indexed human-readable position in a scanned buffer.
// The zero value means "no position" and marks a global diagnostic.
type Pos struct {
	Line uint32
	Col  uint32
}

// IsZero reports whether the position carries no location.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// Before orders positions by line, then column.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
