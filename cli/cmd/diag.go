package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/musical/lang"
)

// report writes a diagnostic for err to w: a header naming the file and
// location, the offending source line with a caret, and any suggestion.
func report(w io.Writer, path, text string, err *lang.Error) {
	r := lipgloss.NewRenderer(w)

	var (
		labelStyle   = r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		locStyle     = r.NewStyle().Bold(true)
		snippetStyle = r.NewStyle().Foreground(lipgloss.Color("8"))
		hintStyle    = r.NewStyle().Foreground(lipgloss.Color("4"))
	)

	loc := path
	msg := err.Error()
	if v, found := err.Attr("expected"); found {
		msg += " (expected " + v.String() + ")"
	}

	pos, ok := err.Position()
	if !ok {
		if line, found := lineOf(err); found {
			pos, ok = lang.Position{Line: line, Column: 1}, true
			loc += ":" + strconv.Itoa(line)
		}
	}

	fmt.Fprintf(w, "%s %s: %s\n", labelStyle.Render("error:"), locStyle.Render(loc), msg)

	if ok {
		if snip := lang.Snippet(text, pos); snip != "" {
			fmt.Fprintln(w, snippetStyle.Render(strings.TrimSuffix(snip, "\n")))
		}
	}

	if v, found := err.Attr("suggestion"); found {
		fmt.Fprintln(w, hintStyle.Render(fmt.Sprintf("hint: did you mean %q?", v.String())))
	}
}

// lineOf returns the source line recorded on err, if any.
func lineOf(err *lang.Error) (int, bool) {
	for _, key := range []string{"line", "start"} {
		if v, ok := err.Attr(key); ok {
			return int(v.Int64()), true
		}
	}

	return 0, false
}
