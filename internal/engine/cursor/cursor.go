package cursor

import (
	"fmt"

	"github.com/dshills/quillpad/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Cursor is an insertion point plus the sticky column used by vertical
// movement. Cursor is an immutable value type; every move returns a new
// cursor. Nothing here knows line lengths, so callers clamp against the
// buffer before moving.
type Cursor struct {
	line    int
	char    int
	maxChar int
}

// New creates a cursor at (line, char) with its sticky column at char.
func New(line, char int) Cursor {
	line, char = max(line, 0), max(char, 0)
	return Cursor{line: line, char: char, maxChar: char}
}

// Line returns the cursor's line.
func (c Cursor) Line() int {
	return c.line
}

// Char returns the cursor's codepoint index within its line.
func (c Cursor) Char() int {
	return c.char
}

// MaxChar returns the largest char reached during the current run of
// vertical moves.
func (c Cursor) MaxChar() int {
	return c.maxChar
}

// Position returns the cursor location.
func (c Cursor) Position() Position {
	return Position{Line: c.line, Char: c.char}
}

// SetPosition returns a cursor at (line, char). When updateMax is set the
// sticky column follows the new char; otherwise it is preserved.
func (c Cursor) SetPosition(line, char int, updateMax bool) Cursor {
	n := Cursor{line: max(line, 0), char: max(char, 0), maxChar: c.maxChar}
	if updateMax {
		n.maxChar = n.char
	}
	return n
}

// WithMaxChar returns a cursor with the sticky column set to char.
func (c Cursor) WithMaxChar(char int) Cursor {
	c.maxChar = max(char, 0)
	return c
}

// MoveLeft returns a cursor one char to the left, resetting the sticky column.
func (c Cursor) MoveLeft() Cursor {
	return c.SetPosition(c.line, c.char-1, true)
}

// MoveRight returns a cursor one char to the right, resetting the sticky column.
func (c Cursor) MoveRight() Cursor {
	return c.SetPosition(c.line, c.char+1, true)
}

// MoveUpToMaxChar returns a cursor on the previous line at the sticky column.
func (c Cursor) MoveUpToMaxChar() Cursor {
	return c.SetPosition(c.line-1, c.maxChar, false)
}

// MoveDownToMaxChar returns a cursor on the next line at the sticky column.
func (c Cursor) MoveDownToMaxChar() Cursor {
	return c.SetPosition(c.line+1, c.maxChar, false)
}

// MoveToStart returns a cursor at the start of the current line.
func (c Cursor) MoveToStart() Cursor {
	return c.SetPosition(c.line, 0, true)
}

// MoveToEnd returns a cursor at lineLen on the current line.
func (c Cursor) MoveToEnd(lineLen int) Cursor {
	return c.SetPosition(c.line, lineLen, true)
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d max=%d)", c.line, c.char, c.maxChar)
}

// Equals returns true if two cursors are at the same position.
// The sticky column is not compared.
func (c Cursor) Equals(other Cursor) bool {
	return c.line == other.line && c.char == other.char
}

// Compare returns -1 if c < other, 0 if c == other, 1 if c > other.
func (c Cursor) Compare(other Cursor) int {
	return c.Position().Compare(other.Position())
}
