package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/audio/play"
	"github.com/ardnew/musical/interp"
	"github.com/ardnew/musical/log"
)

// Run executes a source file, rendering its notes to audio.
type Run struct {
	MaxDepth int    `default:"${defaultMaxDepth}" help:"Maximum nesting of goto directives."                     name:"max-depth"`
	Format   string `default:"raw"                help:"Format of files written by save."                       enum:"${audioFormatEnum}" short:"f"`
	Join     bool   `default:"false"              help:"Invert a note whose predecessor ended below zero."       negatable:""`
	MIDI     string `                             help:"Also record the performance as a MIDI file."            name:"midi"               placeholder:"PATH" type:"path"`
	Play     bool   `default:"false"              help:"Play the rendered audio when execution ends."`
	DryRun   bool   `default:"false"              help:"Execute without synthesizing or writing any files."     name:"dry-run"            short:"n"`

	Source string `arg:"" help:"Source file." name:"source" type:"existingfile"`
}

// Validate implements kong's validation hook.
func (r *Run) Validate() error { return validateMaxDepth(r.MaxDepth) }

// validateMaxDepth rejects goto limits the interpreter would not honor.
func validateMaxDepth(n int) error {
	if n < 1 || n > interp.MaxDepthLimit {
		return ErrInvalidFlag.With(
			slog.Int("max-depth", n),
			slog.Int("limit", interp.MaxDepthLimit))
	}

	return nil
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := load(ctx, r.Source)
	if err != nil {
		return err
	}

	format, ok := audio.ParseFormat(r.Format)
	if !ok {
		return ErrInvalidFlag.With(slog.String("format", r.Format))
	}

	var (
		count tally
		midi  *audio.MIDIRecorder
	)

	opts := []audio.Option{
		audio.WithFormat(format),
		audio.WithJoin(r.Join),
		audio.WithDryRun(r.DryRun),
		audio.WithLogger(log.Default()),
		audio.WithListener(&count),
	}

	if r.MIDI != "" {
		midi = audio.NewMIDIRecorder()
		opts = append(opts, audio.WithListener(midi))
	}

	ren := audio.NewRenderer(opts...)

	in, err := src.interpreter(ctx,
		interp.WithMaxDepth(r.MaxDepth),
		interp.WithRenderer(ren),
	)
	if err != nil {
		return err
	}

	if err := in.Run(ctx); err != nil {
		return src.fail(ctx, err)
	}

	log.InfoContext(ctx, "finished",
		slog.String("file", src.path),
		slog.Int("notes", count.notes),
		slog.Float64("seconds", count.seconds),
		slog.Int("samples", len(ren.Samples())))

	if r.DryRun {
		return nil
	}

	if midi != nil {
		if err := midi.WriteFile(r.MIDI); err != nil {
			return ErrWriteOutput.Wrap(err).With(slog.String("file", r.MIDI))
		}

		log.DebugContext(ctx, "wrote midi",
			slog.String("file", r.MIDI),
			slog.Int("notes", midi.Notes()))
	}

	if r.Play {
		return play.Play(ctx, ren.Samples())
	}

	return nil
}
