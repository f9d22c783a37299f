// Package cursor provides the insertion point of an editing session.
//
// A Cursor is a (line, char) position plus a sticky column: the largest
// char reached during a run of vertical moves. Moving up or down keeps the
// sticky column so that passing over a short line and back onto a long
// one restores the original horizontal position. Horizontal moves and
// jumps to the start or end of a line reset it.
//
//	c := cursor.New(0, 8)
//	c = c.SetPosition(1, 2, false) // short line, sticky column stays 8
//	c = c.MoveDownToMaxChar()      // (2, 8)
//
// Cursor is an immutable value type and safe to copy.
package cursor
