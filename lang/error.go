package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Error categories. Every error produced by this module derives from one of
// these, so callers can classify failures with [errors.Is].
var (
	// ErrNoMatch is a local parse failure. It drives backtracking inside the
	// parser and never escapes [ParseString].
	ErrNoMatch = NewError("no match")

	// ErrSyntax reports input that no grammar alternative could match.
	ErrSyntax = NewError("syntax error")

	// ErrValidation reports a program that parsed but cannot be run.
	ErrValidation = NewError("validation error")

	// ErrRuntimeLimit reports a run aborted by a resource ceiling.
	ErrRuntimeLimit = NewError("runtime limit exceeded")

	// ErrReadInput is returned when reading source input fails.
	ErrReadInput = NewError("failed to read input")
)

// Error represents an error with optional source position and structured
// logging attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg    string
	err    error       // wrapped cause
	origin *Error      // sentinel this value was copied from
	parent *Error      // category of a derived sentinel
	pos    *Position   // source position, if known
	attrs  []slog.Attr // attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Derive creates a new sentinel Error that also matches e (and everything e
// matches) under [errors.Is].
func (e *Error) Derive(msg string) *Error {
	return &Error{msg: msg, parent: e.root()}
}

// WrapError converts err into an *Error. If err already contains an *Error it
// is returned as is.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

func (e *Error) root() *Error {
	if e.origin != nil {
		return e.origin
	}

	return e
}

func (e *Error) clone() *Error {
	c := *e
	c.origin = e.root()

	return &c
}

// Error implements the error interface. The message has the form
// "<line>:<column>: <msg>: <cause>", omitting the parts that are not set.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.pos != nil {
		part = append(part, e.pos.String())
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was created from, or one of
// that sentinel's categories.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for s := e.root(); s != nil; s = s.parent {
		if s == t {
			return true
		}
	}

	return false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	c.attrs = append(append(c.attrs, e.attrs...), attrs...)

	return c
}

// WithPosition returns a copy of e located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = &pos

	return c
}

// Position returns the source position attached to e, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Attr returns the value of the attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// Position locates a byte in source text. Line and Column are 1-based.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Snippet renders the source line containing pos followed by a caret under
// its column:
//
//	  3 | bpm:12x
//	            ^
//
// An empty string is returned when pos lies outside source.
func Snippet(source string, pos Position) string {
	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")
	num := strconv.Itoa(pos.Line)

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(num)
	sb.WriteString(" | ")
	sb.WriteString(line)
	sb.WriteByte('\n')

	// 2 leading spaces + " | "
	pad := len(num) + 5
	if pos.Column > 1 {
		pad += pos.Column - 1
	}

	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString("^\n")

	return sb.String()
}
