package engine

// Cursor Movement
//
// Every movement takes an extend flag. With extend set the last selection
// is stretched to the new cursor position; without it all selections are
// dropped. Starting a selection is the caller's job (BeginSelection or
// BeginSelectionAtCursor before the first extending move).

// MoveCursorLeft moves one codepoint left, wrapping to the end of the
// previous line. It reports whether the cursor actually moved.
func (s *Session) MoveCursorLeft(extend bool) bool {
	line, char := s.cursor.Line(), s.cursor.Char()
	moved := line != 0 || char > 0

	if char <= 0 {
		newLine := max(line-1, 0)
		newChar := 0
		if line != 0 {
			newChar = s.buf.CharsInLine(newLine)
		}
		s.cursor = s.cursor.SetPosition(newLine, newChar, true)
	} else {
		s.cursor = s.cursor.MoveLeft()
	}

	s.afterMove(extend)
	return moved
}

// MoveCursorRight moves one codepoint right, wrapping to the start of the
// next line. It stops at the end of the document.
func (s *Session) MoveCursorRight(extend bool) {
	line := s.cursor.Line()
	if s.cursor.Char() >= s.buf.CharsInLine(line) {
		if next := min(line+1, s.buf.LastLine()); next != line {
			s.cursor = s.cursor.SetPosition(next, 0, true)
		}
	} else {
		s.cursor = s.cursor.MoveRight()
	}

	s.afterMove(extend)
}

// MoveCursorUp moves to the previous line. If both the current char and
// the sticky column fit on that line the cursor lands on the sticky
// column; otherwise it lands on the line end and the sticky column is kept
// for the next vertical move.
func (s *Session) MoveCursorUp(extend bool) {
	if line := s.cursor.Line(); line > 0 {
		s.moveVertical(line-1, s.cursor.MoveUpToMaxChar)
	}
	s.afterMove(extend)
}

// MoveCursorDown is MoveCursorUp towards the end of the document.
func (s *Session) MoveCursorDown(extend bool) {
	if line := s.cursor.Line(); line < s.buf.LastLine() {
		s.moveVertical(line+1, s.cursor.MoveDownToMaxChar)
	}
	s.afterMove(extend)
}

func (s *Session) moveVertical(target int, toSticky func() Cursor) {
	targetLen := s.buf.CharsInLine(target)
	if s.cursor.Char() <= targetLen && s.cursor.MaxChar() <= targetLen {
		s.cursor = toSticky()
		return
	}
	s.cursor = s.cursor.SetPosition(target, targetLen, false)
}

// MoveCursorToStart jumps to the start of the current line.
func (s *Session) MoveCursorToStart(extend bool) {
	s.cursor = s.cursor.MoveToStart()
	s.afterMove(extend)
}

// MoveCursorToEnd jumps to the end of the current line.
func (s *Session) MoveCursorToEnd(extend bool) {
	s.cursor = s.cursor.MoveToEnd(s.buf.CharsInLine(s.cursor.Line()))
	s.afterMove(extend)
}

// ResetCursor places the cursor at (line, char), clamped to the document,
// and resets the sticky column to char. Pointer clicks land here.
func (s *Session) ResetCursor(line, char int) {
	line = clampInt(line, 0, s.buf.LastLine())
	char = clampInt(char, 0, s.buf.CharsInLine(line))
	s.cursor = s.cursor.SetPosition(line, char, false).WithMaxChar(char)
}

func (s *Session) afterMove(extend bool) {
	if extend {
		s.selections.ExtendTo(s.cursor.Line(), s.cursor.Char())
		return
	}
	s.selections.Clear()
}

// Selection Management

// BeginSelection starts a new selection anchored at (line, char).
func (s *Session) BeginSelection(line, char int) {
	s.selections.Begin(line, char)
}

// BeginSelectionAtCursor starts a new selection anchored at the cursor.
func (s *Session) BeginSelectionAtCursor() {
	s.selections.Begin(s.cursor.Line(), s.cursor.Char())
}

// ExtendSelection moves the extreme of the last selection to (line, char).
func (s *Session) ExtendSelection(line, char int) {
	s.selections.ExtendTo(line, char)
}

// ClearSelections drops every selection.
func (s *Session) ClearSelections() {
	s.selections.Clear()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
