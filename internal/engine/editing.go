package engine

// InsertAtCursor inserts text at the cursor and leaves the cursor after it.
func (s *Session) InsertAtCursor(text string) {
	if text == "" {
		return
	}
	s.buf.Insert(text, s.cursor.Line(), s.cursor.Char())
	for range []rune(text) {
		s.MoveCursorRight(false)
	}
}

// DeleteBefore is backspace: it moves left up to n times and removes the
// codepoints it actually passed over.
func (s *Session) DeleteBefore(n int) {
	moved := 0
	for i := 0; i < n; i++ {
		if s.MoveCursorLeft(false) {
			moved++
		}
	}
	s.DeleteAfter(moved)
}

// DeleteAfter is forward delete: it removes n codepoints at the cursor.
func (s *Session) DeleteAfter(n int) {
	if n <= 0 {
		return
	}
	s.buf.Remove(n, s.cursor.Line(), s.cursor.Char())
}

// DeleteSelection removes the text covered by the last selection and puts
// the cursor at its start. It reports whether a selection was active, so
// callers know whether a plain delete is still due.
func (s *Session) DeleteSelection() bool {
	sel := s.selections.Last()
	if !sel.Active {
		return false
	}
	s.selections.Clear()

	start, end := sel.Start(), sel.End()
	s.cursor = s.cursor.SetPosition(start.Line, start.Char, true)
	amount := s.buf.CharAmountContained(start.Line, start.Char, end.Line, end.Char) - 1
	s.DeleteAfter(amount)
	return true
}

// CopySelection returns the text covered by the last selection, or "" if
// there is none. The cursor moves to the start of the selection.
func (s *Session) CopySelection() string {
	sel := s.selections.Last()
	if !sel.Active {
		return ""
	}

	start, end := sel.Start(), sel.End()
	s.cursor = s.cursor.SetPosition(start.Line, start.Char, true)
	amount := s.buf.CharAmountContained(start.Line, start.Char, end.Line, end.Char) - 1
	return s.buf.TextFrom(amount, start.Line, start.Char)
}

// DuplicateCurrentLine inserts a copy of the cursor line below it and moves
// the cursor down onto the copy.
func (s *Session) DuplicateCurrentLine() {
	s.selections.Clear()

	line := s.cursor.Line()
	text := s.buf.Line(line)
	if line < s.buf.LastLine() {
		s.buf.Insert(text+"\n", line+1, 0)
	} else {
		// The last line has no successor to insert in front of.
		s.buf.Insert("\n"+text, line, s.buf.CharsInLine(line))
	}
	s.MoveCursorDown(false)
}

// SwapSelectedLines moves every line touched by the last selection one line
// up or down and shifts the selection along with it. Without an active
// selection it swaps the cursor line instead.
func (s *Session) SwapSelectedLines(up bool) {
	sel := s.selections.Last()
	if !sel.Active {
		s.SwapCurrentLine(up)
		return
	}

	rangeStart, rangeEnd := sel.StartLine(), sel.EndLine()
	delta := 0
	switch {
	case up && rangeStart > 0:
		for i := rangeStart; i <= rangeEnd; i++ {
			if err := s.buf.SwapLines(i, i-1); err != nil {
				s.logger.Warn("swap selected lines up: %v", err)
				return
			}
		}
		delta = -1
	case !up && rangeEnd < s.buf.LastLine():
		for i := rangeEnd; i >= rangeStart; i-- {
			if err := s.buf.SwapLines(i, i+1); err != nil {
				s.logger.Warn("swap selected lines down: %v", err)
				return
			}
		}
		delta = 1
	default:
		return
	}

	start, end := sel.Start(), sel.End()
	s.selections.Clear()
	s.selections.Begin(start.Line+delta, start.Char)
	s.selections.ExtendTo(end.Line+delta, end.Char)
}

// SwapCurrentLine exchanges the cursor line with its neighbour. At the
// document edges it does nothing.
func (s *Session) SwapCurrentLine(up bool) {
	line := s.cursor.Line()
	other := min(line+1, s.buf.LastLine())
	if up {
		other = max(line-1, 0)
	}
	if err := s.buf.SwapLines(line, other); err != nil {
		s.logger.Warn("swap current line: %v", err)
	}
}

// Selections returns the number of selections held, active or not.
func (s *Session) Selections() int {
	return s.selections.Len()
}
