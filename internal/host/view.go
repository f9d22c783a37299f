package host

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/quillpad/internal/engine"
)

// Status is the information shown on the bottom line.
type Status struct {
	Name     string
	Modified bool
	Message  string
}

// View renders a window onto a session. The last screen row is the
// status line; every other row shows one document line.
type View struct {
	tabWidth     int
	scrollMargin int

	// top is the first visible line, left the first visible cell column.
	top, left     int
	width, height int

	textStyle     tcell.Style
	selectedStyle tcell.Style
	statusStyle   tcell.Style
}

// NewView creates a view sized to the screen.
func NewView(screenWidth, screenHeight, tabWidth, scrollMargin int) *View {
	v := &View{
		tabWidth:      max(tabWidth, 1),
		scrollMargin:  max(scrollMargin, 0),
		textStyle:     tcell.StyleDefault,
		selectedStyle: tcell.StyleDefault.Reverse(true),
		statusStyle:   tcell.StyleDefault.Reverse(true).Bold(true),
	}
	v.Resize(screenWidth, screenHeight)
	return v
}

// Resize adapts the text area to a new screen size.
func (v *View) Resize(screenWidth, screenHeight int) {
	v.width = max(screenWidth, 0)
	v.height = max(screenHeight-1, 0)
}

// Top returns the first visible document line.
func (v *View) Top() int {
	return v.top
}

// TextHeight returns the number of rows available for document lines.
func (v *View) TextHeight() int {
	return v.height
}

// Scroll moves the window by delta lines without moving the cursor.
func (v *View) Scroll(delta int, s *engine.Session) {
	v.top = clamp(v.top+delta, 0, max(s.LineCount()-1, 0))
}

// ScrollToCursor adjusts the window so the cursor is visible with
// scrollMargin lines of context where the document allows.
func (v *View) ScrollToCursor(s *engine.Session) {
	if v.height == 0 || v.width == 0 {
		return
	}
	line := s.Cursor().Line()

	margin := min(v.scrollMargin, (v.height-1)/2)
	if line-margin < v.top {
		v.top = line - margin
	}
	if line+margin >= v.top+v.height {
		v.top = line + margin - v.height + 1
	}
	v.top = clamp(v.top, 0, max(s.LineCount()-1, 0))

	x := v.cellOffset(s.Line(line), s.Cursor().Char())
	if x < v.left {
		v.left = x
	}
	if x >= v.left+v.width {
		v.left = x - v.width + 1
	}
}

// Draw renders the visible lines, the status line and the cursor.
func (v *View) Draw(t *Terminal, s *engine.Session, status Status) {
	t.Clear()

	for row := 0; row < v.height; row++ {
		line := v.top + row
		if line >= s.LineCount() {
			break
		}
		v.drawLine(t, s, line, row)
	}

	v.drawStatus(t, s, status)

	c := s.Cursor()
	if row := c.Line() - v.top; row >= 0 && row < v.height {
		x := v.cellOffset(s.Line(c.Line()), c.Char()) - v.left
		if x >= 0 && x < v.width {
			t.ShowCursor(x, row)
			return
		}
	}
	t.HideCursor()
}

func (v *View) drawLine(t *Terminal, s *engine.Session, line, row int) {
	runes := []rune(s.Line(line))
	x := 0
	for i, r := range runes {
		w := v.runeCells(r)
		style := v.textStyle
		if s.IsSelected(line, i) {
			style = v.selectedStyle
		}

		glyph := r
		if r == '\t' {
			glyph = ' '
		}
		for cell := 0; cell < w; cell++ {
			sx := x + cell - v.left
			if sx < 0 || sx >= v.width {
				continue
			}
			switch {
			case cell == 0:
				t.SetCell(sx, row, glyph, style)
			case r == '\t':
				t.SetCell(sx, row, ' ', style)
			}
		}
		x += w
	}

	// A selected line break shows as one highlighted cell past the end.
	if s.IsSelected(line, len(runes)) {
		if sx := x - v.left; sx >= 0 && sx < v.width {
			t.SetCell(sx, row, ' ', v.selectedStyle)
		}
	}
}

func (v *View) drawStatus(t *Terminal, s *engine.Session, status Status) {
	if v.width == 0 {
		return
	}
	name := status.Name
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	if status.Modified {
		name += " [+]"
	}

	line, col := s.CursorPosition()
	text := fmt.Sprintf(" %s  %d:%d", name, line+1, col+1)
	if status.Message != "" {
		text += "  " + status.Message
	}
	text = runewidth.Truncate(text, v.width, "…")

	row := v.height
	x := 0
	for _, r := range text {
		t.SetCell(x, row, r, v.statusStyle)
		x += runewidth.RuneWidth(r)
	}
	for ; x < v.width; x++ {
		t.SetCell(x, row, ' ', v.statusStyle)
	}
}

// CellToDocument maps a screen cell to the approximate (line, column)
// pair expected by Session.DocumentCoords. Rows and cells outside the
// document are passed through for the session to clamp.
func (v *View) CellToDocument(s *engine.Session, x, y int) (approxLine, approxColumn int) {
	line := v.top + y
	if line < 0 || line >= s.LineCount() {
		return line, 0
	}

	target := v.left + x
	runes := []rune(s.Line(line))
	cells := 0
	char := len(runes)
	for i, r := range runes {
		w := v.runeCells(r)
		if target < cells+w {
			char = i
			break
		}
		cells += w
	}
	return line, s.ColumnOf(line, char)
}

// cellOffset returns the screen cell where char starts on a line.
func (v *View) cellOffset(text string, char int) int {
	x := 0
	for i, r := range []rune(text) {
		if i >= char {
			break
		}
		x += v.runeCells(r)
	}
	return x
}

func (v *View) runeCells(r rune) int {
	if r == '\t' {
		return v.tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
