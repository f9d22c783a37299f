package buffer

import (
	"errors"
	"slices"

	"github.com/dshills/quillpad/internal/logging"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrNonAdjacentLines = errors.New("cannot swap non-adjacent lines")
)

// Buffer stores the document as codepoints with a line-start index.
// The zero value is not usable; create buffers with New or NewFromString.
type Buffer struct {
	chars      []rune
	lineStarts []int
	changed    bool

	encode EncodeFunc
	logger *logging.Logger
}

// New creates an empty buffer holding a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []int{0},
		encode:     EncodeUTF8,
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.Default().WithComponent("buffer")
	}

	return b
}

// NewFromString creates a buffer with initial content.
// The buffer starts out unchanged.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.chars = []rune(s)
	b.rebuildIndex()
	return b
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return string(b.chars)
}

// Len returns the number of codepoints in the buffer.
func (b *Buffer) Len() int {
	return len(b.chars)
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// LastLine returns the index of the last line.
func (b *Buffer) LastLine() int {
	return len(b.lineStarts) - 1
}

// ValidLine reports whether line is inside [0, LineCount).
func (b *Buffer) ValidLine(line int) bool {
	return line >= 0 && line < len(b.lineStarts)
}

// LineStarts returns a copy of the line index.
func (b *Buffer) LineStarts() []int {
	return slices.Clone(b.lineStarts)
}

// Line returns the content of line n without its terminator.
// An out-of-range line is logged and yields "".
func (b *Buffer) Line(n int) string {
	if !b.ValidLine(n) {
		b.logger.WithField("line", n).Warn("line %d is not a valid line number, max is %d", n, b.LastLine())
		return ""
	}
	start := b.lineStarts[n]
	return string(b.chars[start : start+b.charsInLine(n)])
}

// CharsInLine returns the number of codepoints on line n, excluding its
// terminator. An out-of-range line is logged and yields 0.
func (b *Buffer) CharsInLine(n int) int {
	if !b.ValidLine(n) {
		b.logger.WithField("line", n).Warn("chars in line: line %d does not exist", n)
		return 0
	}
	return b.charsInLine(n)
}

func (b *Buffer) charsInLine(n int) int {
	if n == b.LastLine() {
		return len(b.chars) - b.lineStarts[n]
	}
	return b.lineStarts[n+1] - b.lineStarts[n] - 1
}

// BufferPos maps (line, char) to an offset into the codepoint slice.
// Callers are expected to pass a valid line; an invalid one is logged and
// clamped to the nearest line so the result always lies in [0, Len].
func (b *Buffer) BufferPos(line, char int) int {
	if !b.ValidLine(line) {
		b.logger.WithField("line", line).Warn("cannot get buffer pos of line %d, last line is %d", line, b.LastLine())
		line = clamp(line, 0, b.LastLine())
	}
	return clamp(b.lineStarts[line]+char, 0, len(b.chars))
}

// TextFrom returns up to amount codepoints starting at (line, char).
// It never mutates the buffer.
func (b *Buffer) TextFrom(amount, line, char int) string {
	pos := b.BufferPos(line, char)
	end := clamp(pos+amount, pos, len(b.chars))
	return string(b.chars[pos:end])
}

// CharAmountContained returns the inclusive number of codepoints between two
// positions: BufferPos(end) - BufferPos(start) + 1. Delete and copy spans are
// sized as this value minus one.
func (b *Buffer) CharAmountContained(startLine, startChar, endLine, endChar int) int {
	return b.BufferPos(endLine, endChar) - b.BufferPos(startLine, startChar) + 1
}

// HasChanged reports whether the content was modified since it was loaded
// or last saved.
func (b *Buffer) HasChanged() bool {
	return b.changed
}

// Write Operations

// Insert splices text in at (line, char). The line index is patched
// incrementally: later lines shift by the inserted length and every
// terminator inside text adds a new line start in sorted position.
func (b *Buffer) Insert(text string, line, char int) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	line, char = b.clampPosition("insert", line, char)
	pos := b.lineStarts[line] + char

	b.chars = slices.Insert(b.chars, pos, runes...)

	for l := line + 1; l < len(b.lineStarts); l++ {
		b.lineStarts[l] += len(runes)
	}

	for i, r := range runes {
		if !isTerminator(r) {
			continue
		}
		start := pos + i + 1
		idx, _ := slices.BinarySearch(b.lineStarts, start)
		b.lineStarts = slices.Insert(b.lineStarts, idx, start)
	}

	b.changed = true
}

// Remove erases up to amount codepoints starting at (line, char).
// The amount is clamped to the end of the buffer.
func (b *Buffer) Remove(amount, line, char int) {
	if amount <= 0 {
		return
	}
	line, char = b.clampPosition("remove", line, char)
	pos := b.lineStarts[line] + char
	end := min(pos+amount, len(b.chars))
	if end == pos {
		return
	}

	b.chars = slices.Delete(b.chars, pos, end)

	// Starts in (pos, end] belonged to terminators that were erased;
	// everything after shifts left by the removed length.
	removed := end - pos
	starts := b.lineStarts[:0]
	for _, s := range b.lineStarts {
		switch {
		case s <= pos:
			starts = append(starts, s)
		case s > end:
			starts = append(starts, s-removed)
		}
	}
	b.lineStarts = starts

	b.changed = true
}

// SwapLines exchanges two neighbouring lines. Swapping a line with itself
// is a no-op. Non-adjacent or out-of-range lines are rejected with a
// diagnostic and leave the buffer untouched.
func (b *Buffer) SwapLines(lineA, lineB int) error {
	if lineA == lineB {
		return nil
	}
	lo, hi := min(lineA, lineB), max(lineA, lineB)

	if lo < 0 || hi > b.LastLine() {
		b.logger.Warn("swap lines: line %d or %d does not exist", lineA, lineB)
		return ErrLineOutOfRange
	}
	if hi != lo+1 {
		b.logger.Warn("swap lines: %d and %d are not contiguous", lineA, lineB)
		return ErrNonAdjacentLines
	}
	return b.SwapWithNextLine(lo)
}

// SwapWithNextLine rewrites lines i and i+1 as line(i+1), the terminator
// that separated them, then line(i), and moves the single line start
// between them. Lines after i+1 keep their offsets because the span length
// does not change.
func (b *Buffer) SwapWithNextLine(i int) error {
	if i < 0 || i+1 > b.LastLine() {
		b.logger.WithField("line", i).Warn("cannot swap with nonexistent line after %d", i)
		return ErrLineOutOfRange
	}

	start := b.lineStarts[i]
	lineA := b.chars[start : start+b.charsInLine(i)]
	next := b.lineStarts[i+1]
	lineB := b.chars[next : next+b.charsInLine(i+1)]

	term := b.chars[next-1]

	swapped := make([]rune, 0, len(lineA)+1+len(lineB))
	swapped = append(swapped, lineB...)
	swapped = append(swapped, term)
	swapped = append(swapped, lineA...)
	copy(b.chars[start:], swapped)

	b.lineStarts[i+1] = start + len(lineB) + 1
	b.changed = true
	return nil
}

// rebuildIndex recomputes the line index from scratch.
func (b *Buffer) rebuildIndex() {
	b.lineStarts = scanLineStarts(b.chars, b.lineStarts[:0])
}

// clampPosition forces (line, char) onto an existing position, logging
// when the caller passed something outside the document.
func (b *Buffer) clampPosition(op string, line, char int) (int, int) {
	l := clamp(line, 0, b.LastLine())
	c := clamp(char, 0, b.charsInLine(l))
	if l != line || c != char {
		b.logger.WithField("op", op).Warn("position (%d:%d) out of range, clamped to (%d:%d)", line, char, l, c)
	}
	return l, c
}

// scanLineStarts appends the start offset of every line in chars to dst.
func scanLineStarts(chars []rune, dst []int) []int {
	dst = append(dst, 0)
	for i, r := range chars {
		if isTerminator(r) {
			dst = append(dst, i+1)
		}
	}
	return dst
}

func isTerminator(r rune) bool {
	return r == '\n' || r == '\r'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
