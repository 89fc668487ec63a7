package lang

import (
	"log/slog"
	"strconv"
)

// Cursor is the single source of truth for the parse position over an
// immutable source string.
//
// Every primitive either advances the cursor and returns a value, or returns
// an [ErrNoMatch] failure. A failing primitive may leave the cursor anywhere;
// callers that need rollback wrap the call with [Attempt].
type Cursor struct {
	src  string
	pos  int
	line int
	col  int
}

// Mark is a snapshot of a [Cursor] position.
type Mark struct {
	pos, line, col int
}

// NewCursor returns a cursor at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, line: 1, col: 1}
}

// Mark snapshots the current position.
func (c *Cursor) Mark() Mark { return Mark{pos: c.pos, line: c.line, col: c.col} }

// Reset restores a position captured with [Cursor.Mark].
func (c *Cursor) Reset(m Mark) { c.pos, c.line, c.col = m.pos, m.line, m.col }

// Position returns the current position.
func (c *Cursor) Position() Position {
	return Position{Offset: c.pos, Line: c.line, Column: c.col}
}

// Line returns the current 1-based line number.
func (c *Cursor) Line() int { return c.line }

// EOF reports whether all input has been consumed.
func (c *Cursor) EOF() bool { return c.pos >= len(c.src) }

// Peek returns the next byte without consuming it, or 0 at end of input.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}

	return c.src[c.pos]
}

// Advance consumes one byte and returns it.
func (c *Cursor) Advance() byte {
	if c.EOF() {
		return 0
	}

	b := c.src[c.pos]

	c.pos++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}

	return b
}

// Slice returns the source text between two marks.
func (c *Cursor) Slice(from, to Mark) string { return c.src[from.pos:to.pos] }

// SkipSpace consumes blanks (space, tab, carriage return) but not newlines.
func (c *Cursor) SkipSpace() {
	for isBlank(c.Peek()) {
		c.Advance()
	}
}

// SkipBlank consumes blanks and newlines.
func (c *Cursor) SkipBlank() {
	for b := c.Peek(); isBlank(b) || b == '\n'; b = c.Peek() {
		c.Advance()
	}
}

// Integer skips leading blank lines and consumes an unsigned decimal integer.
func (c *Cursor) Integer() (int, error) {
	c.SkipBlank()

	start := c.Mark()
	for isDigit(c.Peek()) {
		c.Advance()
	}

	digits := c.Slice(start, c.Mark())
	if digits == "" {
		return 0, c.fail("integer")
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, ErrNoMatch.WithPosition(positionOf(start)).
			With(slog.String("expected", "integer")).
			Wrap(err)
	}

	return n, nil
}

// Literal skips leading blank lines and consumes exactly s.
func (c *Cursor) Literal(s string) error {
	c.SkipBlank()

	if len(c.src)-c.pos < len(s) || c.src[c.pos:c.pos+len(s)] != s {
		return c.fail(strconv.Quote(s))
	}

	for range len(s) {
		c.Advance()
	}

	return nil
}

// Identifier skips leading blank lines and consumes an identifier: a letter,
// underscore or dot followed by letters, digits, underscores or dots.
func (c *Cursor) Identifier() (string, error) {
	c.SkipBlank()

	if !isIdentStart(c.Peek()) {
		return "", c.fail("identifier")
	}

	start := c.Mark()
	for isIdentContinue(c.Peek()) {
		c.Advance()
	}

	return c.Slice(start, c.Mark()), nil
}

// Word skips leading blank lines and consumes a directive argument: an
// identifier that may also contain path separators and dashes.
func (c *Cursor) Word() (string, error) {
	c.SkipBlank()

	if !isWordByte(c.Peek()) {
		return "", c.fail("word")
	}

	start := c.Mark()
	for isWordByte(c.Peek()) {
		c.Advance()
	}

	return c.Slice(start, c.Mark()), nil
}

// Terminator consumes trailing blanks and one statement terminator: a
// newline or a semicolon. End of input also terminates a statement.
func (c *Cursor) Terminator() error {
	c.SkipSpace()

	switch c.Peek() {
	case '\n', ';':
		c.Advance()

		return nil
	case 0:
		if c.EOF() {
			return nil
		}
	}

	return c.fail("newline or ';'")
}

func (c *Cursor) fail(expected string) error {
	return ErrNoMatch.WithPosition(c.Position()).
		With(slog.String("expected", expected))
}

// Attempt runs fn as a trial parse. On success the cursor keeps the progress
// made by fn; on failure the cursor is restored to where it was before the
// call and ok is false.
func Attempt[T any](c *Cursor, fn func() (T, error)) (v T, ok bool) {
	m := c.Mark()

	v, err := fn()
	if err != nil {
		c.Reset(m)

		var zero T

		return zero, false
	}

	return v, true
}

// Expect is [Attempt] for parse functions that produce no value.
func Expect(c *Cursor, fn func() error) bool {
	_, ok := Attempt(c, func() (struct{}, error) { return struct{}{}, fn() })

	return ok
}

func positionOf(m Mark) Position {
	return Position{Offset: m.pos, Line: m.line, Column: m.col}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isIdentStart(b byte) bool { return isLetter(b) || b == '_' || b == '.' }

func isIdentContinue(b byte) bool { return isIdentStart(b) || isDigit(b) }

func isWordByte(b byte) bool { return isIdentContinue(b) || b == '/' || b == '-' }

// isSeparator reports whether b may appear between statements without
// becoming part of a chunk's leftover body.
func isSeparator(b byte) bool { return isBlank(b) || b == '\n' || b == ';' }
