package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/interp"
)

// Query evaluates an expr-lang expression over a parsed program.
//
// The environment holds "header" and "chunks" as produced by
// [lang.Program.ToMap]. With --exec the program is first executed without
// audio and "vars", "final" (the header after execution), "notes" and
// "seconds" are added.
type Query struct {
	Exec bool `default:"false" help:"Execute the program without audio before evaluating." short:"x"`

	Source string `arg:"" help:"Source file."           name:"source" type:"existingfile"`
	Expr   string `arg:"" help:"Expression to evaluate." name:"expr"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) error {
	src, err := load(ctx, q.Source)
	if err != nil {
		return err
	}

	env := src.prog.ToMap()

	if q.Exec {
		var count tally

		in, err := src.interpreter(ctx, interp.WithRenderer(audio.NewRenderer(
			audio.WithDryRun(true),
			audio.WithListener(&count),
		)))
		if err != nil {
			return err
		}

		if err := in.Run(ctx); err != nil {
			return src.fail(ctx, err)
		}

		h := in.Header()
		env["vars"] = in.Variables()
		env["final"] = map[string]any{
			"numerator":   h.Numerator,
			"denominator": h.Denominator,
			"bpm":         h.BPM,
			"pitch":       h.Pitch,
			"volume":      h.Volume,
			"octave":      h.Octave,
		}
		env["notes"] = count.notes
		env["seconds"] = count.seconds
	}

	program, err := expr.Compile(q.Expr, expr.Env(env))
	if err != nil {
		return ErrQuery.Wrap(err).With(slog.String("expr", q.Expr))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return ErrQuery.Wrap(err).With(slog.String("expr", q.Expr))
	}

	stdout, _ := streamsFrom(ctx)

	if s, ok := result.(string); ok {
		_, err = fmt.Fprintln(stdout, s)
	} else {
		err = json.NewEncoder(stdout).Encode(result)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
