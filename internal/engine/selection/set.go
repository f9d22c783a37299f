package selection

// Set holds the selections begun since the last Clear.
// Only the last selection is operative; earlier entries are history.
// Set is not thread-safe.
type Set struct {
	selections []Selection
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{}
}

// Begin appends a new, inactive selection anchored at (line, char).
// It becomes the operative selection.
func (s *Set) Begin(line, char int) {
	at := Extremo{Line: line, Char: char}
	s.selections = append(s.selections, Selection{Anchor: at, Extreme: at})
}

// ExtendTo moves the extreme of the last selection to (line, char).
// It does nothing if no selection has been begun.
func (s *Set) ExtendTo(line, char int) {
	if len(s.selections) == 0 {
		return
	}
	last := &s.selections[len(s.selections)-1]
	last.Extreme = Extremo{Line: line, Char: char}
	last.Active = last.Extreme != last.Anchor
}

// Clear removes every selection.
func (s *Set) Clear() {
	s.selections = s.selections[:0]
}

// Last returns the operative selection, or None if the set is empty.
func (s *Set) Last() Selection {
	if len(s.selections) == 0 {
		return None
	}
	return s.selections[len(s.selections)-1]
}

// Len returns the number of selections, including inactive history.
func (s *Set) Len() int {
	return len(s.selections)
}

// IsSelected reports whether (line, char) is covered by any active selection.
func (s *Set) IsSelected(line, char int) bool {
	for _, sel := range s.selections {
		if sel.Contains(line, char) {
			return true
		}
	}
	return false
}
