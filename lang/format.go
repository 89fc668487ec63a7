package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes p in native notation. With indent > 0 every statement is
// written on its own line indented by indent spaces; otherwise the header and
// each chunk are written on a single line with statements separated by ';'.
//
// Leftover chunk body text is not written.
func (p *Program) Format(_ context.Context, w io.Writer, indent int) error {
	sep, pad := "\n", strings.Repeat(" ", max(indent, 0))
	if indent <= 0 {
		sep = "; "
	}

	h := p.Header
	header := []string{
		VarMeter + ":" + strconv.Itoa(h.Numerator) + "/" + strconv.Itoa(h.Denominator),
		VarBPM + ":" + strconv.Itoa(h.BPM),
		VarPitch + ":" + strconv.Itoa(h.Pitch),
		VarVolume + ":" + strconv.Itoa(h.Volume),
		VarOctave + ":" + strconv.Itoa(h.Octave),
	}

	if _, err := fmt.Fprintln(w, strings.Join(header, sep)); err != nil {
		return err
	}

	for _, ch := range p.Chunks {
		if indent > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		stmts := make([]string, 0, ch.Len()+1)
		stmts = append(stmts, "@"+ch.Name)

		for _, op := range ch.Ops() {
			stmts = append(stmts, pad+op.String())
		}

		if _, err := fmt.Fprintln(w, strings.Join(stmts, sep)); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes p as JSON.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(p.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(p.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes p as YAML. With indent <= 0 the flow style is used.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// MarshalJSON implements json.Marshaler.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts p to native Go maps and slices.
func (p *Program) ToMap() map[string]any {
	h := p.Header

	chunks := make([]any, len(p.Chunks))
	for i, ch := range p.Chunks {
		chunks[i] = ch.ToMap()
	}

	return map[string]any{
		"header": map[string]any{
			"numerator":   h.Numerator,
			"denominator": h.Denominator,
			VarBPM:        h.BPM,
			VarPitch:      h.Pitch,
			VarVolume:     h.Volume,
			VarOctave:     h.Octave,
		},
		"chunks": chunks,
	}
}

// ToMap converts c to native Go maps and slices.
func (c *Chunk) ToMap() map[string]any {
	ops := make([]any, 0, c.Len())
	for _, op := range c.Ops() {
		ops = append(ops, opMap(op))
	}

	m := map[string]any{
		"name":  c.Name,
		"start": c.Span.Start,
		"end":   c.Span.End,
		"ops":   ops,
	}

	if c.Body != "" {
		m["body"] = c.Body
	}

	return m
}

func opMap(op Op) map[string]any {
	m := map[string]any{
		"kind": op.Kind().String(),
		"line": op.SourceLine(),
	}

	switch o := op.(type) {
	case *Note:
		m["note"] = o.Name()
		m["duration"] = o.Duration.String()
		m["beats"] = o.Duration.Beats()
		m["semitones"] = o.Semitones()
	case *Variable:
		m["name"] = o.Name
		m["value"] = o.Value
	case *Pair:
		m["left"] = o.Left
		m["right"] = o.Right
	}

	return m
}
