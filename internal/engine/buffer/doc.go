// Package buffer provides the character storage of the editor engine.
//
// A Buffer holds the document as a flat slice of codepoints plus a derived
// line index: the offset at which every line starts. All positional
// arithmetic in the engine originates here.
//
//	buf := buffer.NewFromString("abc\ndef\n")
//	buf.Insert("X", 0, 1)   // "aXbc\ndef\n"
//	buf.Line(0)             // "aXbc"
//	buf.CharsInLine(1)      // 3
//	buf.LineCount()         // 3, the last line is empty
//
// Line Terminators:
//
// Both '\n' and '\r' terminate a line; a '\r' does not need a following
// '\n'. A "\r\n" pair therefore produces an empty line between the two
// terminators. Content is never normalized, so saving writes back exactly
// what was loaded.
//
// Positions:
//
// A Position is (line, char) where char indexes codepoints within the
// line's own content, not display columns. BufferPos maps a Position to an
// offset into the codepoint slice.
//
// Invariants:
//
// The line index always starts with 0, is strictly increasing, and equals
// what a fresh scan of the content for terminators would produce. Every
// mutating method re-establishes this before it returns.
//
// Out-of-range coordinates are logged and clamped rather than reported as
// errors. Only file I/O and rejected line swaps return errors.
//
// A Buffer is not safe for concurrent use; it is owned by a single editing
// session driven from one event loop.
package buffer
