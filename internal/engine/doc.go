// Package engine provides the editing session at the heart of Quillpad.
//
// A Session combines a codepoint buffer with a line index, a cursor with a
// sticky column, and a set of anchor/extreme selections. Every movement
// and editing primitive a host needs lives here; hosts render from the
// query API and never touch the buffer directly.
//
// # Architecture
//
// The engine is built on three sub-packages:
//
//   - buffer: flat codepoint storage plus the line start index
//   - cursor: immutable cursor value with a sticky column
//   - selection: anchor/extreme selections and the selection set
//
// # Basic Usage
//
//	s := engine.New(engine.WithContent("abc\ndef\n"))
//
//	s.MoveCursorRight(false)
//	s.InsertAtCursor("X") // "aXbc\ndef\n"
//
//	s.BeginSelectionAtCursor()
//	s.MoveCursorDown(true)
//	text := s.CopySelection()
//
// # Columns
//
// Positions count codepoints. Display columns count a tab as a fixed
// width (4 by default, see WithTabWidth) and every other codepoint as one.
// ColumnOf and CharIndexOfColumn convert between the two, and
// DocumentCoords resolves pointer coordinates into a valid position.
//
// # Concurrency
//
// A Session is owned by a single event loop. Calls are synchronous and
// nothing inside the engine spawns goroutines, so no locking is done.
package engine
