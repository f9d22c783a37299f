package buffer

import "fmt"

// Position is a (line, char) location in the buffer.
// Both fields are 0-indexed; Char counts codepoints within the line.
type Position struct {
	Line int
	Char int
}

// Pos is shorthand for Position{Line: line, Char: char}.
func Pos(line, char int) Position {
	return Position{Line: line, Char: char}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Char)
}

// Compare orders positions by line, then by char.
// It returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Char < other.Char {
		return -1
	}
	if p.Char > other.Char {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}
