package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/logging"
)

func newSession(content string, opts ...Option) *Session {
	opts = append([]Option{WithContent(content), WithLogger(logging.Nop())}, opts...)
	return New(opts...)
}

func assertCursor(t *testing.T, s *Session, line, char int) {
	t.Helper()
	c := s.Cursor()
	if c.Line() != line || c.Char() != char {
		t.Errorf("cursor = (%d:%d), want (%d:%d)", c.Line(), c.Char(), line, char)
	}
}

func assertText(t *testing.T, s *Session, want string) {
	t.Helper()
	if got := s.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestNewSession(t *testing.T) {
	s := newSession("abc\ndef\n")

	if s.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", s.LineCount())
	}
	if s.Line(1) != "def" {
		t.Errorf("Line(1) = %q", s.Line(1))
	}
	if s.HasChanged() {
		t.Error("new session should not be changed")
	}
	if s.TabWidth() != DefaultTabWidth {
		t.Errorf("TabWidth() = %d", s.TabWidth())
	}
	assertCursor(t, s, 0, 0)
}

func TestSessionID(t *testing.T) {
	a := New(WithLogger(logging.Nop()))
	b := New(WithLogger(logging.Nop()))

	if len(a.ID()) != 36 {
		t.Errorf("ID() = %q, want a UUID", a.ID())
	}
	if a.ID() == b.ID() {
		t.Error("sessions should get distinct IDs")
	}
	if got := New(WithID("fixed"), WithLogger(logging.Nop())).ID(); got != "fixed" {
		t.Errorf("WithID: ID() = %q", got)
	}
}

// ============================================================================
// Column Mapping
// ============================================================================

func TestColumnMapping(t *testing.T) {
	s := newSession("\tabc")

	tests := []struct {
		char, column int
	}{
		{0, 0},
		{1, 4},
		{2, 5},
		{4, 7},
	}
	for _, tt := range tests {
		if got := s.ColumnOf(0, tt.char); got != tt.column {
			t.Errorf("ColumnOf(0, %d) = %d, want %d", tt.char, got, tt.column)
		}
	}

	inverse := []struct {
		column, char int
	}{
		{0, 0},
		{2, 1},
		{4, 1},
		{5, 2},
		{7, 4},
		{100, 4},
	}
	for _, tt := range inverse {
		if got := s.CharIndexOfColumn(0, tt.column); got != tt.char {
			t.Errorf("CharIndexOfColumn(0, %d) = %d, want %d", tt.column, got, tt.char)
		}
	}
}

func TestColumnMappingTabWidth(t *testing.T) {
	s := newSession("\tabc", WithTabWidth(8))
	if got := s.ColumnOf(0, 4); got != 11 {
		t.Errorf("ColumnOf(0, 4) = %d, want 11", got)
	}
}

func TestCursorPosition(t *testing.T) {
	s := newSession("\tabc")
	s.ResetCursor(0, 4)

	line, col := s.CursorPosition()
	if line != 0 || col != 7 {
		t.Errorf("CursorPosition() = (%d, %d), want (0, 7)", line, col)
	}
}

func TestDocumentCoords(t *testing.T) {
	s := newSession("\tab\ncd")

	tests := []struct {
		name               string
		approxLine, column int
		line, char         int
	}{
		{"above document", -1, 5, 0, 0},
		{"below document", 5, 0, 1, 2},
		{"inside tab span", 0, 3, 0, 1},
		{"after tab", 0, 4, 0, 1},
		{"past line end", 0, 100, 0, 3},
		{"plain line", 1, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, char := s.DocumentCoords(tt.approxLine, tt.column)
			if line != tt.line || char != tt.char {
				t.Errorf("DocumentCoords(%d, %d) = (%d, %d), want (%d, %d)",
					tt.approxLine, tt.column, line, char, tt.line, tt.char)
			}
		})
	}
}

// ============================================================================
// Cursor Movement
// ============================================================================

func TestMoveCursorLeft(t *testing.T) {
	s := newSession("ab\ncd")

	s.ResetCursor(1, 0)
	if !s.MoveCursorLeft(false) {
		t.Error("wrapping left should report a move")
	}
	assertCursor(t, s, 0, 2)

	s.ResetCursor(0, 0)
	if s.MoveCursorLeft(false) {
		t.Error("left at document start should not report a move")
	}
	assertCursor(t, s, 0, 0)
}

func TestMoveCursorRight(t *testing.T) {
	s := newSession("ab\ncd")

	s.ResetCursor(0, 2)
	s.MoveCursorRight(false)
	assertCursor(t, s, 1, 0)

	s.ResetCursor(1, 2)
	s.MoveCursorRight(false)
	assertCursor(t, s, 1, 2)
}

func TestMoveCursorToStartAndEnd(t *testing.T) {
	s := newSession("hello\nworld")
	s.ResetCursor(1, 2)

	s.MoveCursorToEnd(false)
	assertCursor(t, s, 1, 5)

	s.MoveCursorToStart(false)
	assertCursor(t, s, 1, 0)
}

func TestVerticalMoveStickyColumn(t *testing.T) {
	s := newSession("abcdef\nab\nabcdef")
	s.ResetCursor(0, 5)

	s.MoveCursorDown(false)
	assertCursor(t, s, 1, 2)
	if s.Cursor().MaxChar() != 5 {
		t.Errorf("sticky column = %d, want 5", s.Cursor().MaxChar())
	}

	s.MoveCursorDown(false)
	assertCursor(t, s, 2, 5)

	s.MoveCursorUp(false)
	assertCursor(t, s, 1, 2)
	s.MoveCursorUp(false)
	assertCursor(t, s, 0, 5)
}

func TestHorizontalMoveResetsStickyColumn(t *testing.T) {
	s := newSession("abcdef\nab\nabcdef")
	s.ResetCursor(0, 5)

	s.MoveCursorDown(false)
	s.MoveCursorLeft(false)
	assertCursor(t, s, 1, 1)

	s.MoveCursorDown(false)
	assertCursor(t, s, 2, 1)
}

func TestVerticalMoveAtEdges(t *testing.T) {
	s := newSession("ab\ncd")

	s.MoveCursorUp(false)
	assertCursor(t, s, 0, 0)

	s.ResetCursor(1, 1)
	s.MoveCursorDown(false)
	assertCursor(t, s, 1, 1)
}

func TestMovementExtendsSelection(t *testing.T) {
	s := newSession("abc")

	s.BeginSelectionAtCursor()
	s.MoveCursorRight(true)
	s.MoveCursorRight(true)

	sel := s.LastSelection()
	if !sel.Active {
		t.Fatal("selection should be active")
	}
	if !s.IsSelected(0, 1) || s.IsSelected(0, 2) {
		t.Error("selection should cover [0,2)")
	}

	s.MoveCursorRight(false)
	if s.Selections() != 0 {
		t.Errorf("plain move should clear selections, have %d", s.Selections())
	}
}

func TestExtendWithoutBeginIsNoop(t *testing.T) {
	s := newSession("abc")
	s.MoveCursorRight(true)

	if s.LastSelection().Active || s.Selections() != 0 {
		t.Error("extending without a begun selection should do nothing")
	}
}

func TestSelectionPredicate(t *testing.T) {
	s := newSession("ab\ncd\n")
	s.BeginSelection(0, 0)
	s.ExtendSelection(1, 1)

	tests := []struct {
		line, char int
		want       bool
	}{
		{0, 0, true},
		{0, 1, true},
		{1, 0, true},
		{1, 1, false},
		{2, 0, false},
	}
	for _, tt := range tests {
		if got := s.IsSelected(tt.line, tt.char); got != tt.want {
			t.Errorf("IsSelected(%d, %d) = %v, want %v", tt.line, tt.char, got, tt.want)
		}
	}

	s.ClearSelections()
	if s.IsSelected(0, 0) {
		t.Error("cleared selection should cover nothing")
	}
}

func TestResetCursorClamps(t *testing.T) {
	s := newSession("ab\ncd")

	s.ResetCursor(9, 9)
	assertCursor(t, s, 1, 2)
	if s.Cursor().MaxChar() != 2 {
		t.Errorf("sticky column = %d, want 2", s.Cursor().MaxChar())
	}

	s.ResetCursor(-1, -1)
	assertCursor(t, s, 0, 0)
}

// ============================================================================
// Editing
// ============================================================================

func TestInsertAtCursor(t *testing.T) {
	s := newSession("abc\ndef\n")
	s.MoveCursorRight(false)

	s.InsertAtCursor("X")

	assertText(t, s, "aXbc\ndef\n")
	assertCursor(t, s, 0, 2)
	if s.Line(0) != "aXbc" || s.Line(1) != "def" {
		t.Errorf("lines = %q, %q", s.Line(0), s.Line(1))
	}
	if !s.HasChanged() {
		t.Error("insert should mark the session changed")
	}
}

func TestInsertAtCursorMultiline(t *testing.T) {
	s := newSession("ab")

	s.InsertAtCursor("12\n3")

	assertText(t, s, "12\n3ab")
	assertCursor(t, s, 1, 1)
	if s.CursorLine() != "3ab" {
		t.Errorf("CursorLine() = %q", s.CursorLine())
	}
}

func TestDeleteBefore(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		line, char int
		n          int
		want       string
		wantLine   int
		wantChar   int
	}{
		{"single char", "abc", 0, 2, 1, "ac", 0, 1},
		{"across line", "ab\ncd", 1, 1, 2, "abd", 0, 2},
		{"clamped at start", "abc\n", 0, 0, 2, "abc\n", 0, 0},
		{"partially clamped", "abc", 0, 1, 5, "bc", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.content)
			s.ResetCursor(tt.line, tt.char)

			s.DeleteBefore(tt.n)

			assertText(t, s, tt.want)
			assertCursor(t, s, tt.wantLine, tt.wantChar)
		})
	}
}

func TestDeleteBeforeAtStartDoesNotChange(t *testing.T) {
	s := newSession("abc\n")
	s.DeleteBefore(2)

	if s.HasChanged() {
		t.Error("clamped backspace should not mark the session changed")
	}
}

func TestDeleteAfter(t *testing.T) {
	s := newSession("abc\ndef")
	s.ResetCursor(0, 1)

	s.DeleteAfter(1)
	assertText(t, s, "ac\ndef")

	s.ResetCursor(0, 2)
	s.DeleteAfter(1)
	assertText(t, s, "acdef")
	assertCursor(t, s, 0, 2)
}

func TestDeleteSelection(t *testing.T) {
	tests := []struct {
		name             string
		content          string
		anchor, extreme  Position
		want             string
		wantLine, wantCh int
	}{
		{"forward", "hello world", buffer.Pos(0, 0), buffer.Pos(0, 5), " world", 0, 0},
		{"backward", "hello world", buffer.Pos(0, 5), buffer.Pos(0, 0), " world", 0, 0},
		{"multiline", "ab\ncd\nef", buffer.Pos(2, 1), buffer.Pos(0, 1), "af", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.content)
			s.BeginSelection(tt.anchor.Line, tt.anchor.Char)
			s.ExtendSelection(tt.extreme.Line, tt.extreme.Char)

			if !s.DeleteSelection() {
				t.Fatal("DeleteSelection() = false, want true")
			}
			assertText(t, s, tt.want)
			assertCursor(t, s, tt.wantLine, tt.wantCh)
			if s.LastSelection().Active {
				t.Error("selection should be cleared")
			}
		})
	}
}

func TestDeleteSelectionWithoutSelection(t *testing.T) {
	s := newSession("abc")
	s.BeginSelectionAtCursor()

	if s.DeleteSelection() {
		t.Error("inactive selection should report false")
	}
	assertText(t, s, "abc")
}

func TestCopySelection(t *testing.T) {
	s := newSession("ab\ncd\n")
	s.ResetCursor(1, 2)
	s.BeginSelection(1, 1)
	s.ExtendSelection(0, 1)

	if got := s.CopySelection(); got != "b\nc" {
		t.Errorf("CopySelection() = %q, want %q", got, "b\nc")
	}
	assertCursor(t, s, 0, 1)
	assertText(t, s, "ab\ncd\n")
	if s.HasChanged() {
		t.Error("copy should not mark the session changed")
	}
	if !s.LastSelection().Active {
		t.Error("copy should keep the selection")
	}
}

func TestCopySelectionInactive(t *testing.T) {
	s := newSession("abc")
	if got := s.CopySelection(); got != "" {
		t.Errorf("CopySelection() = %q, want empty", got)
	}
}

func TestDuplicateCurrentLine(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		line, char int
		want       string
		wantLine   int
		wantChar   int
	}{
		{"first line", "ab\ncd", 0, 1, "ab\nab\ncd", 1, 1},
		{"last line", "ab\ncd", 1, 0, "ab\ncd\ncd", 2, 0},
		{"trailing newline", "ab\n", 0, 0, "ab\nab\n", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.content)
			s.ResetCursor(tt.line, tt.char)
			s.BeginSelectionAtCursor()

			s.DuplicateCurrentLine()

			assertText(t, s, tt.want)
			assertCursor(t, s, tt.wantLine, tt.wantChar)
			if s.Selections() != 0 {
				t.Error("duplicate should clear selections")
			}
		})
	}
}

func TestSwapSelectedLinesUp(t *testing.T) {
	s := newSession("a\nb\nc\nd")
	s.BeginSelection(1, 0)
	s.ExtendSelection(2, 1)

	s.SwapSelectedLines(true)

	assertText(t, s, "b\nc\na\nd")
	sel := s.LastSelection()
	if !sel.Active || sel.Start() != buffer.Pos(0, 0) || sel.End() != buffer.Pos(1, 1) {
		t.Errorf("selection = %v, want (0:0)-(1:1)", sel)
	}
}

func TestSwapSelectedLinesDown(t *testing.T) {
	s := newSession("a\nb\nc\nd")
	s.BeginSelection(2, 1)
	s.ExtendSelection(1, 0)

	s.SwapSelectedLines(false)

	assertText(t, s, "a\nd\nb\nc")
	sel := s.LastSelection()
	if !sel.Active || sel.Start() != buffer.Pos(2, 0) || sel.End() != buffer.Pos(3, 1) {
		t.Errorf("selection = %v, want (2:0)-(3:1)", sel)
	}
}

func TestSwapSelectedLinesAtBoundary(t *testing.T) {
	s := newSession("a\nb\nc")
	s.BeginSelection(0, 0)
	s.ExtendSelection(1, 1)

	s.SwapSelectedLines(true)

	assertText(t, s, "a\nb\nc")
	if s.HasChanged() {
		t.Error("swap at boundary should be a no-op")
	}

	s.ClearSelections()
	s.BeginSelection(1, 0)
	s.ExtendSelection(2, 1)
	s.SwapSelectedLines(false)
	assertText(t, s, "a\nb\nc")
}

func TestSwapSelectedLinesWithoutSelection(t *testing.T) {
	s := newSession("a\nb\nc\nd")
	s.ResetCursor(1, 0)

	s.SwapSelectedLines(true)

	assertText(t, s, "b\na\nc\nd")
}

func TestSwapCurrentLine(t *testing.T) {
	tests := []struct {
		name string
		line int
		up   bool
		want string
	}{
		{"up", 1, true, "b\na\nc"},
		{"down", 1, false, "a\nc\nb"},
		{"up at first line", 0, true, "a\nb\nc"},
		{"down at last line", 2, false, "a\nb\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession("a\nb\nc")
			s.ResetCursor(tt.line, 0)

			s.SwapCurrentLine(tt.up)

			assertText(t, s, tt.want)
		})
	}
}

// ============================================================================
// File Operations
// ============================================================================

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.LineCount() != 3 || s.Line(1) != "two" {
		t.Errorf("loaded %d lines, line 1 = %q", s.LineCount(), s.Line(1))
	}

	s.InsertAtCursor("zero\n")
	if !s.HasChanged() {
		t.Fatal("edit should mark the session changed")
	}

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.HasChanged() {
		t.Error("save should clear the changed flag")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "zero\none\ntwo\n" {
		t.Errorf("file = %q", data)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"), WithLogger(logging.Nop()))
	if err == nil {
		t.Error("Open of a missing file should fail")
	}
}

func TestLoadFailureKeepsContent(t *testing.T) {
	s := newSession("keep me")
	s.ResetCursor(0, 4)

	if err := s.Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error")
	}
	assertText(t, s, "keep me")
	assertCursor(t, s, 0, 4)
}

func TestLoadResetsCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("xyz"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newSession("abc\ndef")
	s.ResetCursor(1, 2)
	s.BeginSelection(0, 0)
	s.ExtendSelection(1, 1)

	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertText(t, s, "xyz")
	assertCursor(t, s, 0, 0)
	if s.Selections() != 0 {
		t.Error("load should clear selections")
	}
}

func TestEmptyPath(t *testing.T) {
	s := newSession("abc")

	if err := s.Load(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("Load(\"\") = %v, want ErrNoPath", err)
	}
	if err := s.Save(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save(\"\") = %v, want ErrNoPath", err)
	}
}

func TestSaveLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	s := newSession("café", WithEncoder(buffer.EncodeLatin1))

	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "caf\xe9" {
		t.Errorf("file = %q, want %q", data, "caf\xe9")
	}
}
