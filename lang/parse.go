package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/musical/log"
)

// Option configures parsing.
type Option func(*options)

type options struct {
	logger log.Logger
	cache  bool
}

func makeOptions(opts ...Option) options {
	o := options{cache: true}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used to trace parsing.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCache enables or disables the parse cache used by [ParseReader].
// The cache is enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}

// ParseString parses a program from source text.
//
// A header or chunk label that cannot be matched is reported as an error
// matching [ErrSyntax] and carrying the source [Position]. Text inside a chunk
// that matches no statement form is not an error here; it is collected into
// [Chunk.Body] and rejected when the program is validated.
func ParseString(ctx context.Context, src string, opts ...Option) (*Program, error) {
	return parse(ctx, src, makeOptions(opts...))
}

func parse(ctx context.Context, src string, o options) (*Program, error) {
	p := &parser{c: NewCursor(src), logger: o.logger}

	hdr, err := p.header()
	if err != nil {
		return nil, p.syntax(err, "header")
	}

	p.logger.TraceContext(ctx, "parsed header",
		slog.Int("numerator", hdr.Numerator),
		slog.Int("denominator", hdr.Denominator),
		slog.Int("bpm", hdr.BPM),
		slog.Int("pitch", hdr.Pitch),
		slog.Int("volume", hdr.Volume),
		slog.Int("octave", hdr.Octave))

	prog := &Program{Header: hdr}

	for {
		p.skipSeparators()

		if p.c.EOF() {
			break
		}

		ch, err := p.chunk()
		if err != nil {
			return nil, p.syntax(err, "chunk label")
		}

		p.logger.TraceContext(ctx, "parsed chunk",
			slog.String("name", ch.Name),
			slog.Int("groups", len(ch.Groups)),
			slog.Int("ops", ch.Len()),
			slog.Int("start", ch.Span.Start),
			slog.Int("end", ch.Span.End))

		prog.Chunks = append(prog.Chunks, ch)
	}

	p.logger.DebugContext(ctx, "parse complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("chunk_count", len(prog.Chunks)))

	return prog, nil
}

type parser struct {
	c      *Cursor
	logger log.Logger
}

// syntax converts a local parse failure into a reportable syntax error.
func (p *parser) syntax(err error, where string) error {
	pos := p.c.Position()
	expected := ""

	if ee := WrapError(err); ee != nil {
		if at, ok := ee.Position(); ok {
			pos = at
		}

		if v, ok := ee.Attr("expected"); ok {
			expected = v.String()
		}
	}

	e := ErrSyntax.WithPosition(pos).With(slog.String("context", where))
	if expected != "" {
		e = e.With(slog.String("expected", expected))
	}

	return e
}

func (p *parser) skipSeparators() {
	for isSeparator(p.c.Peek()) {
		p.c.Advance()
	}
}

// header parses:
//
//	meter:<int>/<int>
//	bpm:<int>
//	[pitch:<int>]
//	[volume:<int>]
//	[octave:<int>]
func (p *parser) header() (Header, error) {
	h := Header{Pitch: DefaultPitch, Volume: DefaultVolume, Octave: DefaultOctave}

	if err := p.c.Literal(VarMeter); err != nil {
		return h, err
	}

	if err := p.c.Literal(":"); err != nil {
		return h, err
	}

	var err error

	if h.Numerator, err = p.c.Integer(); err != nil {
		return h, err
	}

	if err = p.c.Literal("/"); err != nil {
		return h, err
	}

	if h.Denominator, err = p.c.Integer(); err != nil {
		return h, err
	}

	if err = p.c.Terminator(); err != nil {
		return h, err
	}

	if h.BPM, err = p.setting(VarBPM); err != nil {
		return h, err
	}

	for _, name := range []string{VarPitch, VarVolume, VarOctave} {
		v, ok := Attempt(p.c, func() (int, error) { return p.setting(name) })
		if ok {
			h.Set(name, v)
		}
	}

	return h, nil
}

// setting parses "<name>:<int>" followed by a terminator.
func (p *parser) setting(name string) (int, error) {
	if err := p.c.Literal(name); err != nil {
		return 0, err
	}

	if err := p.c.Literal(":"); err != nil {
		return 0, err
	}

	n, err := p.c.Integer()
	if err != nil {
		return 0, err
	}

	return n, p.c.Terminator()
}

// chunk parses a label followed by statements up to the next label or the end
// of input.
func (p *parser) chunk() (*Chunk, error) {
	if err := p.c.Literal("@"); err != nil {
		return nil, err
	}

	ch := &Chunk{Span: Span{Start: p.c.Line()}}

	name, err := p.c.Identifier()
	if err != nil {
		return nil, err
	}

	ch.Name = name

	if err := p.c.Terminator(); err != nil {
		return nil, err
	}

	var body strings.Builder

	end := ch.Span.Start

	for !p.c.EOF() && p.c.Peek() != '@' {
		if group := p.group(); len(group) > 0 {
			ch.Groups = append(ch.Groups, group)
			end = group[len(group)-1].SourceLine()

			continue
		}

		// Nothing matched here: consume one byte so the loop always makes
		// progress.
		line := p.c.Line()
		if b := p.c.Advance(); !isSeparator(b) {
			body.WriteByte(b)

			end = line
		}
	}

	ch.Body = body.String()
	ch.Span.End = end

	return ch, nil
}

// group collects consecutive assignments, then consecutive notes, then
// consecutive directive pairs.
func (p *parser) group() []Op {
	var ops []Op

	for {
		v, ok := Attempt(p.c, p.variable)
		if !ok {
			break
		}

		ops = append(ops, v)
	}

	for {
		n, ok := Attempt(p.c, p.note)
		if !ok {
			break
		}

		ops = append(ops, n)
	}

	for {
		d, ok := Attempt(p.c, p.pair)
		if !ok {
			break
		}

		ops = append(ops, d)
	}

	return ops
}

// variable parses "<identifier>:<int>" followed by a terminator.
func (p *parser) variable() (*Variable, error) {
	name, err := p.c.Identifier()
	if err != nil {
		return nil, err
	}

	v := &Variable{Name: name, Line: p.c.Line()}

	if err := p.c.Literal(":"); err != nil {
		return nil, err
	}

	if v.Value, err = p.c.Integer(); err != nil {
		return nil, err
	}

	return v, p.c.Terminator()
}

// note parses a letter, an optional accidental and a duration.
func (p *parser) note() (*Note, error) {
	p.c.SkipBlank()

	if !IsNoteLetter(p.c.Peek()) {
		return nil, p.c.fail("note letter")
	}

	n := &Note{Line: p.c.Line(), Letter: p.c.Advance()}

	p.c.SkipSpace()

	if d, ok := Attempt(p.c, p.duration); ok {
		n.Duration = d

		return n, nil
	}

	switch {
	case p.accidental("#"):
		n.Modifier = Sharp
	case p.accidental("b"):
		n.Modifier = Flat
	default:
		return nil, p.c.fail("accidental or duration")
	}

	d, err := p.duration()
	if err != nil {
		return nil, err
	}

	n.Duration = d

	return n, nil
}

// accidental consumes s when it follows on the current line.
func (p *parser) accidental(s string) bool {
	return Expect(p.c, func() error {
		if p.c.Peek() == '\n' {
			return p.c.fail(strconv.Quote(s))
		}

		return p.c.Literal(s)
	})
}

// duration parses "<int>/<int>" or "<int>" without crossing a line break.
// A fraction with a zero denominator does not match as a fraction.
func (p *parser) duration() (Duration, error) {
	p.c.SkipSpace()

	if !isDigit(p.c.Peek()) {
		return Duration{}, p.c.fail("duration")
	}

	frac, ok := Attempt(p.c, func() (Duration, error) {
		num, err := p.c.Integer()
		if err != nil {
			return Duration{}, err
		}

		if p.c.Peek() != '/' {
			return Duration{}, p.c.fail("'/'")
		}

		p.c.Advance()

		if !isDigit(p.c.Peek()) {
			return Duration{}, p.c.fail("denominator")
		}

		den, err := p.c.Integer()
		if err != nil {
			return Duration{}, err
		}

		if den == 0 {
			return Duration{}, p.c.fail("non-zero denominator")
		}

		return Duration{Num: num, Den: den}, nil
	})
	if ok {
		return frac, nil
	}

	num, err := p.c.Integer()
	if err != nil {
		return Duration{}, err
	}

	return Duration{Num: num}, nil
}

// pair parses two blank-separated words on the same line: a directive and
// its argument. Text that reads as a note is never a directive.
func (p *parser) pair() (*Pair, error) {
	m := p.c.Mark()
	if _, ok := Attempt(p.c, p.note); ok {
		p.c.Reset(m)

		return nil, p.c.fail("directive")
	}

	left, err := p.c.Identifier()
	if err != nil {
		return nil, err
	}

	d := &Pair{Left: left, Line: p.c.Line()}

	if !isBlank(p.c.Peek()) {
		return nil, p.c.fail("blank")
	}

	p.c.SkipSpace()

	if !isWordByte(p.c.Peek()) {
		return nil, p.c.fail("directive argument")
	}

	if d.Right, err = p.c.Word(); err != nil {
		return nil, err
	}

	return d, nil
}
