package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/musical/lang"
)

// Fmt re-serializes a source file in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as musical notation (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// FormatOptions are the flags and arguments shared by the fmt subcommands.
type FormatOptions struct {
	Indent int `default:"2" help:"Indent width; 0 selects the compact form." short:"i"`

	Source string `arg:"" help:"Source file." name:"source" type:"existingfile"`
}

func (f *FormatOptions) run(
	ctx context.Context,
	name string,
	write func(*lang.Program, context.Context, io.Writer, int) error,
) error {
	src, err := load(ctx, f.Source)
	if err != nil {
		return err
	}

	stdout, _ := streamsFrom(ctx)

	if err := write(src.prog, ctx, stdout, f.Indent); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", name))
	}

	return nil
}

// Native formats a program as musical notation.
type Native struct {
	FormatOptions `embed:""`
}

// Run executes the fmt native command.
func (n *Native) Run(ctx context.Context) error {
	return n.run(ctx, "native", (*lang.Program).Format)
}

// JSON formats a program as JSON.
type JSON struct {
	FormatOptions `embed:""`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.run(ctx, "json", (*lang.Program).FormatJSON)
}

// YAML formats a program as YAML.
type YAML struct {
	FormatOptions `embed:""`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.run(ctx, "yaml", (*lang.Program).FormatYAML)
}
