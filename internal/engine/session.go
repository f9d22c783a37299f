package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/engine/cursor"
	"github.com/dshills/quillpad/internal/engine/selection"
	"github.com/dshills/quillpad/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Position is a (line, char) location.
	Position = buffer.Position

	// Selection is an anchor/extreme selection.
	Selection = selection.Selection

	// Cursor is the session's insertion point.
	Cursor = cursor.Cursor
)

// Session is the editing facade. It owns a buffer, a cursor and a
// selection set and implements every movement and editing primitive on
// top of them. Hosts query and drive the document only through Session.
//
// A Session is not safe for concurrent use. It is driven by one event loop.
type Session struct {
	id         string
	buf        *buffer.Buffer
	cursor     cursor.Cursor
	selections *selection.Set

	tabWidth   int
	encoder    buffer.EncodeFunc
	baseLogger *logging.Logger
	logger     *logging.Logger

	initContent string
}

// New creates a session with the given options.
func New(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New().String(),
		tabWidth: DefaultTabWidth,
		encoder:  buffer.EncodeUTF8,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.baseLogger == nil {
		s.baseLogger = logging.Default()
	}
	s.logger = s.baseLogger.WithComponent("session").WithField("session", s.id)

	bufOpts := []buffer.Option{
		buffer.WithEncoder(s.encoder),
		buffer.WithLogger(s.baseLogger.WithComponent("buffer").WithField("session", s.id)),
	}
	s.buf = buffer.NewFromString(s.initContent, bufOpts...)
	s.initContent = ""

	s.cursor = cursor.New(0, 0)
	s.selections = selection.NewSet()

	return s
}

// Open creates a session and loads the file at path into it.
func Open(path string, opts ...Option) (*Session, error) {
	s := New(opts...)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier used to correlate log lines.
func (s *Session) ID() string {
	return s.id
}

// TabWidth returns the display cost of a tab.
func (s *Session) TabWidth() int {
	return s.tabWidth
}

// File Operations

// Load replaces the document with the file at path and moves the cursor to
// the start. On failure the document is left as it was.
func (s *Session) Load(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := s.buf.Load(path); err != nil {
		return err
	}

	s.cursor = cursor.New(0, 0)
	s.selections.Clear()
	s.logger.Info("loaded %s (%d lines)", path, s.buf.LineCount())
	return nil
}

// Save writes the document to path. On failure the document and its
// changed flag are left as they were.
func (s *Session) Save(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := s.buf.Save(path); err != nil {
		return err
	}
	s.logger.Info("saved %s (%d chars)", path, s.buf.Len())
	return nil
}

// HasChanged reports whether the document has unsaved edits.
func (s *Session) HasChanged() bool {
	return s.buf.HasChanged()
}

// Query API

// Text returns the whole document.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Line returns the text of line n without its terminator.
func (s *Session) Line(n int) string {
	return s.buf.Line(n)
}

// LineCount returns the number of lines in the document.
func (s *Session) LineCount() int {
	return s.buf.LineCount()
}

// CharsInLine returns the number of codepoints on line n.
func (s *Session) CharsInLine(n int) int {
	return s.buf.CharsInLine(n)
}

// CursorLine returns the text of the line the cursor is on.
func (s *Session) CursorLine() string {
	return s.buf.Line(s.cursor.Line())
}

// Cursor returns the current cursor.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

// CursorPosition returns the cursor line and its tab-aware display column.
func (s *Session) CursorPosition() (line, column int) {
	line = s.cursor.Line()
	return line, s.ColumnOf(line, s.cursor.Char())
}

// IsSelected reports whether (line, char) is inside an active selection.
func (s *Session) IsSelected(line, char int) bool {
	return s.selections.IsSelected(line, char)
}

// LastSelection returns the operative selection, or selection.None.
func (s *Session) LastSelection() Selection {
	return s.selections.Last()
}

// Column Mapping

// ColumnOf returns the display column of char on line. Every tab before
// char adds the tab width, every other codepoint adds one.
func (s *Session) ColumnOf(line, char int) int {
	runes := []rune(s.buf.Line(line))
	col := 0
	for i := 0; i < char; i++ {
		if i < len(runes) && runes[i] == '\t' {
			col += s.tabWidth
		} else {
			col++
		}
	}
	return col
}

// CharIndexOfColumn is the inverse of ColumnOf: it returns the first char
// whose accumulated column is at least column, or the line length if the
// column lies past the end of the line.
func (s *Session) CharIndexOfColumn(line, column int) int {
	runes := []rune(s.buf.Line(line))
	col := 0
	for i, r := range runes {
		if column <= col {
			return i
		}
		if r == '\t' {
			col += s.tabWidth
		} else {
			col++
		}
	}
	return len(runes)
}

// DocumentCoords resolves an approximate (line, column) from a pointer into
// an exact (line, char). Rows above the document map to its start, rows
// below it to the end of the last line.
func (s *Session) DocumentCoords(approxLine, approxColumn int) (line, char int) {
	last := s.buf.LastLine()
	switch {
	case approxLine < 0:
		return 0, 0
	case approxLine > last:
		return last, s.buf.CharsInLine(last)
	}

	char = s.CharIndexOfColumn(approxLine, approxColumn)
	return approxLine, clampInt(char, 0, s.buf.CharsInLine(approxLine))
}
