package interp

import (
	"context"
	"log/slog"
	"maps"
	"math/bits"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/lang"
	"github.com/ardnew/musical/log"
)

// Renderer receives the output of a run.
type Renderer interface {
	// Emit is called once per note with the tone resolved against the
	// current header.
	Emit(audio.Tone) error
	// Update is called with the interpreter's header when the run starts and
	// after every change to it. The pointer stays valid for the whole run.
	Update(*lang.Header)
	// Save is called for every save directive.
	Save(path string) error
}

type discard struct{}

func (discard) Emit(audio.Tone) error { return nil }
func (discard) Update(*lang.Header)   {}
func (discard) Save(string) error     { return nil }

// Interpreter executes a single program once.
type Interpreter struct {
	header   lang.Header
	chunks   map[string]*lang.Chunk
	names    []string
	vars     map[string]int
	renderer Renderer
	logger   log.Logger
	maxDepth int

	state  State
	chunk  string // chunk being executed
	cursor int    // index of the operation being executed
	err    error
}

// New validates prog and returns an interpreter ready to run it.
//
// Validation fails if any chunk has unrecognized text, chunk names repeat, the
// entry chunk is missing, the time signature denominator is not a power of
// two, or pitch, bpm or the time signature numerator are not positive. A
// volume outside [0,100] is clamped with a warning.
func New(prog *lang.Program, opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		header:   prog.Header,
		chunks:   make(map[string]*lang.Chunk, len(prog.Chunks)),
		names:    prog.Names(),
		vars:     make(map[string]int),
		renderer: discard{},
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(in)
	}

	for name, ch := range prog.All() {
		if ch.Body != "" {
			return nil, ErrLeftoverBody.With(
				slog.String("chunk", name),
				slog.String("text", ch.Body),
				slog.Int("start", ch.Span.Start),
				slog.Int("end", ch.Span.End))
		}

		if prev, ok := in.chunks[name]; ok {
			return nil, ErrDuplicateChunk.With(
				slog.String("chunk", name),
				slog.Int("first", prev.Span.Start),
				slog.Int("second", ch.Span.Start))
		}

		in.chunks[name] = ch
	}

	if _, ok := in.chunks[lang.Entry]; !ok {
		return nil, ErrNoEntry.With(slog.Any("chunks", in.names))
	}

	in.clampVolume()

	if d := in.header.Denominator; d <= 0 || bits.OnesCount(uint(d)) != 1 {
		return nil, ErrMeter.With(slog.Int("denominator", d))
	}

	if err := checkHeader(in.header); err != nil {
		return nil, err
	}

	in.logger.Debug("program ready",
		slog.Int("chunks", len(in.chunks)),
		slog.Int("max_depth", in.maxDepth))

	return in, nil
}

// checkHeader verifies the header fields that must stay positive.
func checkHeader(h lang.Header) error {
	switch {
	case h.Pitch <= 0:
		return ErrPitch.With(slog.Int("pitch", h.Pitch))
	case h.BPM <= 0:
		return ErrTempo.With(slog.Int("bpm", h.BPM))
	case h.Numerator <= 0:
		return ErrNumerator.With(slog.Int("numerator", h.Numerator))
	}

	return nil
}

func (in *Interpreter) clampVolume() {
	v := in.header.Volume
	if v >= 0 && v <= 100 {
		return
	}

	in.header.Volume = max(0, min(100, v))

	in.logger.Warn("volume out of range",
		slog.Int("volume", v),
		slog.Int("clamped", in.header.Volume))
}

// State returns the lifecycle stage of in.
func (in *Interpreter) State() State { return in.state }

// Position returns the chunk and operation index being executed. After a
// failure it reports where the failure occurred.
func (in *Interpreter) Position() (chunk string, op int) { return in.chunk, in.cursor }

// Header returns the current header.
func (in *Interpreter) Header() lang.Header { return in.header }

// Variables returns a copy of the variable pool.
func (in *Interpreter) Variables() map[string]int { return maps.Clone(in.vars) }

// Err returns the error that ended the run, if any.
func (in *Interpreter) Err() error { return in.err }

// Run executes the entry chunk. It can be called only once.
func (in *Interpreter) Run(ctx context.Context) error {
	if in.state != Idle {
		return ErrState.With(slog.String("state", in.state.String()))
	}

	in.state = Running
	in.renderer.Update(&in.header)

	in.logger.DebugContext(ctx, "run", slog.String("chunk", lang.Entry))

	if err := in.exec(ctx, lang.Entry, 0); err != nil {
		in.state, in.err = Failed, err

		in.logger.ErrorContext(ctx, "run failed",
			slog.String("chunk", in.chunk),
			slog.Int("op", in.cursor),
			slog.Any("error", err))

		return err
	}

	in.state = Halted

	in.logger.DebugContext(ctx, "run complete")

	return nil
}

// exec runs the chunk named name at the given goto depth.
func (in *Interpreter) exec(ctx context.Context, name string, depth int) error {
	if depth > in.maxDepth {
		return ErrDepth.With(
			slog.String("chunk", name),
			slog.Int("depth", depth),
			slog.Int("max_depth", in.maxDepth))
	}

	ch, ok := in.chunks[name]
	if !ok {
		return in.notFound(name)
	}

	caller, resume := in.chunk, in.cursor

	in.logger.TraceContext(ctx, "enter chunk",
		slog.String("chunk", name),
		slog.Int("depth", depth))

	for i, op := range ch.Ops() {
		in.chunk, in.cursor = name, i

		if err := in.step(ctx, op, depth); err != nil {
			return err
		}
	}

	in.chunk, in.cursor = caller, resume

	return nil
}

func (in *Interpreter) step(ctx context.Context, op lang.Op, depth int) error {
	switch o := op.(type) {
	case *lang.Note:
		return in.note(ctx, o)
	case *lang.Variable:
		return in.assign(ctx, o)
	case *lang.Pair:
		return in.directive(ctx, o, depth)
	default:
		return ErrUnknownOperation.With(
			slog.String("chunk", in.chunk),
			slog.String("op", op.String()),
			slog.Int("line", op.SourceLine()))
	}
}

func (in *Interpreter) note(ctx context.Context, n *lang.Note) error {
	tone := Resolve(in.header, n)

	in.logger.TraceContext(ctx, "note",
		slog.String("note", n.String()),
		slog.Int("line", n.Line),
		slog.Any("tone", tone))

	if err := in.renderer.Emit(tone); err != nil {
		return ErrRender.Wrap(err).With(
			slog.String("note", n.String()),
			slog.Int("line", n.Line))
	}

	return nil
}

func (in *Interpreter) assign(ctx context.Context, v *lang.Variable) error {
	if !lang.IsReserved(v.Name) {
		in.vars[v.Name] = v.Value

		in.logger.TraceContext(ctx, "variable",
			slog.String("name", v.Name),
			slog.Int("value", v.Value))

		return nil
	}

	next := in.header
	next.Set(v.Name, v.Value)

	if err := checkHeader(next); err != nil {
		return lang.WrapError(err).With(
			slog.String("chunk", in.chunk),
			slog.Int("line", v.Line))
	}

	in.header = next
	in.clampVolume()

	in.logger.TraceContext(ctx, "header",
		slog.String("name", v.Name),
		slog.Int("value", v.Value))

	in.renderer.Update(&in.header)

	return nil
}

func (in *Interpreter) directive(ctx context.Context, p *lang.Pair, depth int) error {
	switch p.Left {
	case lang.DirectiveGoto:
		if _, ok := in.chunks[p.Right]; !ok {
			return in.notFound(p.Right).With(
				slog.String("chunk", in.chunk),
				slog.Int("line", p.Line))
		}

		return in.exec(ctx, p.Right, depth+1)

	case lang.DirectiveSave:
		in.logger.DebugContext(ctx, "save", slog.String("path", p.Right))

		if err := in.renderer.Save(p.Right); err != nil {
			return ErrRender.Wrap(err).With(
				slog.String("path", p.Right),
				slog.Int("line", p.Line))
		}

		return nil

	default:
		e := ErrUnknownDirective.With(
			slog.String("directive", p.Left),
			slog.String("chunk", in.chunk),
			slog.Int("line", p.Line))
		if s, ok := suggest(p.Left, []string{lang.DirectiveGoto, lang.DirectiveSave}); ok {
			e = e.With(slog.String("suggestion", s))
		}

		return e
	}
}

func (in *Interpreter) notFound(name string) *lang.Error {
	e := ErrChunkNotFound.With(slog.String("target", name))
	if s, ok := suggest(name, in.names); ok {
		e = e.With(slog.String("suggestion", s))
	}

	return e
}

// suggest returns the candidate that best matches name.
func suggest(name string, candidates []string) (string, bool) {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return "", false
	}

	return matches[0].Str, true
}
