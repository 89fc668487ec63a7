package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/interp"
)

// Check validates a source file and prints a summary of its header and
// chunks.
type Check struct {
	Exec     bool `default:"false"              help:"Also execute the program without audio and report its length." short:"x"`
	MaxDepth int  `default:"${defaultMaxDepth}" help:"Maximum nesting of goto directives."                             name:"max-depth"`

	Source string `arg:"" help:"Source file." name:"source" type:"existingfile"`
}

// Validate implements kong's validation hook.
func (c *Check) Validate() error { return validateMaxDepth(c.MaxDepth) }

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	src, err := load(ctx, c.Source)
	if err != nil {
		return err
	}

	var count tally

	ren := audio.NewRenderer(
		audio.WithDryRun(true),
		audio.WithListener(&count),
	)

	in, err := src.interpreter(ctx,
		interp.WithMaxDepth(c.MaxDepth),
		interp.WithRenderer(ren),
	)
	if err != nil {
		return err
	}

	if c.Exec {
		if err := in.Run(ctx); err != nil {
			return src.fail(ctx, err)
		}
	}

	stdout, _ := streamsFrom(ctx)

	h := src.prog.Header
	fmt.Fprintf(stdout, "%s: meter %d/%d, bpm %d, pitch %d, volume %d, octave %d\n",
		src.path, h.Numerator, h.Denominator, h.BPM, h.Pitch, in.Header().Volume, h.Octave)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CHUNK", "LINES", "OPS")

	for name, ch := range src.prog.All() {
		t.Row(name, fmt.Sprintf("%d-%d", ch.Span.Start, ch.Span.End), strconv.Itoa(ch.Len()))
	}

	fmt.Fprintln(stdout, t.String())

	if c.Exec {
		fmt.Fprintf(stdout, "%d notes, %g beats, %.3fs\n", count.notes, count.beats, count.seconds)

		if h, ok := ren.Header(); ok {
			fmt.Fprintf(stdout, "final: bpm %d, pitch %d, volume %d, octave %d\n",
				h.BPM, h.Pitch, h.Volume, h.Octave)
		}
	}

	return nil
}
