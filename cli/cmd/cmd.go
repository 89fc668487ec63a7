package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/interp"
	"github.com/ardnew/musical/lang"
	"github.com/ardnew/musical/log"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type streamsKey struct{}

type streams struct {
	out, err io.Writer
}

// WithStreams returns a context whose commands write results to stdout and
// diagnostics to stderr instead of the process streams.
func WithStreams(ctx context.Context, stdout, stderr io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{out: stdout, err: stderr})
}

func streamsFrom(ctx context.Context) (stdout, stderr io.Writer) {
	s, _ := ctx.Value(streamsKey{}).(streams)
	if s.out == nil {
		s.out = os.Stdout
	}

	if s.err == nil {
		s.err = os.Stderr
	}

	return s.out, s.err
}

// Vars returns the kong variables referenced by command flags.
func Vars() kong.Vars {
	return kong.Vars{
		"audioFormatEnum": strings.Join(slices.Collect(audio.Formats()), ","),
		"defaultMaxDepth": strconv.Itoa(interp.DefaultMaxDepth),
	}
}

// source is a parsed input file together with its text.
type source struct {
	path string
	text string
	prog *lang.Program
}

// load reads and parses the file at path. Syntax errors are reported to the
// diagnostic stream of ctx.
func load(ctx context.Context, path string) (*source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenInput.Wrap(err).With(slog.String("file", path))
	}
	defer file.Close()

	var text bytes.Buffer

	prog, err := lang.ParseReader(ctx, io.TeeReader(file, &text),
		lang.WithLogger(log.Default()))

	src := &source{path: path, text: text.String(), prog: prog}
	if err != nil {
		return nil, src.fail(ctx, err)
	}

	return src, nil
}

// interpreter validates the program with opts applied after the default
// logger.
func (s *source) interpreter(ctx context.Context, opts ...interp.Option) (*interp.Interpreter, error) {
	in, err := interp.New(s.prog, append([]interp.Option{interp.WithLogger(log.Default())}, opts...)...)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	return in, nil
}

// fail reports err against the source text and returns it annotated with the
// file name. Errors that did not originate in the program are returned as is.
func (s *source) fail(ctx context.Context, err error) error {
	var le *lang.Error
	if !errors.As(err, &le) {
		return err
	}

	_, stderr := streamsFrom(ctx)
	report(stderr, s.path, s.text, le)

	return lang.WrapError(err).With(slog.String("file", s.path))
}

// tally is an [audio.Listener] that counts notes and their duration.
type tally struct {
	notes   int
	seconds float64
	beats   float64
}

func (t *tally) Emit(tone audio.Tone) error {
	t.notes++
	t.seconds += tone.Seconds
	t.beats += tone.Beats

	return nil
}

func (*tally) Update(*lang.Header) {}
