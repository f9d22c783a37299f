package selection

import (
	"fmt"

	"github.com/dshills/quillpad/internal/engine/buffer"
)

// Extremo is one endpoint of a selection.
// Extremos are ordered by line, then by char.
type Extremo = buffer.Position

// Selection is a range of selected text.
// Selection is an immutable value type.
type Selection struct {
	Anchor  Extremo // Where the gesture started
	Extreme Extremo // Where the gesture currently is
	Active  bool    // Anchor != Extreme
}

// None is returned when there is no selection to report.
var None = Selection{
	Anchor:  Extremo{Line: -1, Char: -1},
	Extreme: Extremo{Line: -1, Char: -1},
}

// New creates a selection from anchor to extreme.
func New(anchor, extreme Extremo) Selection {
	return Selection{Anchor: anchor, Extreme: extreme, Active: anchor != extreme}
}

// Start returns the lower endpoint.
func (s Selection) Start() Extremo {
	if s.Anchor.Before(s.Extreme) {
		return s.Anchor
	}
	return s.Extreme
}

// End returns the upper endpoint.
func (s Selection) End() Extremo {
	if s.Anchor.Before(s.Extreme) {
		return s.Extreme
	}
	return s.Anchor
}

func (s Selection) StartLine() int { return s.Start().Line }
func (s Selection) StartChar() int { return s.Start().Char }
func (s Selection) EndLine() int   { return s.End().Line }
func (s Selection) EndChar() int   { return s.End().Char }

// Contains reports whether (line, char) lies inside [Start, End).
// Inactive selections contain nothing.
func (s Selection) Contains(line, char int) bool {
	if !s.Active {
		return false
	}

	start, end := s.Start(), s.End()
	if line < start.Line || line > end.Line {
		return false
	}

	switch {
	case start.Line < line && line < end.Line:
		return true
	case start.Line == line && line < end.Line:
		return char >= start.Char
	case start.Line < line && line == end.Line:
		return char < end.Char
	default:
		return start.Char <= char && char < end.Char
	}
}

// Flip returns the selection with anchor and extreme swapped.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Extreme, Extreme: s.Anchor, Active: s.Active}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if !s.Active {
		return fmt.Sprintf("Selection(%v, inactive)", s.Anchor)
	}
	dir := "→"
	if s.Extreme.Before(s.Anchor) {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%v%s%v)", s.Anchor, dir, s.Extreme)
}
