package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	errChild := ErrValidation.Derive("child")
	errGrandchild := errChild.Derive("grandchild")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel", ErrSyntax, ErrSyntax, true},
		{"distinct sentinels", ErrSyntax, ErrValidation, false},
		{"derived matches parent", errChild, ErrValidation, true},
		{"derived matches itself", errChild, errChild, true},
		{"parent does not match derived", ErrValidation, errChild, false},
		{"transitive", errGrandchild, ErrValidation, true},
		{"with attrs", errChild.With(slog.String("k", "v")), ErrValidation, true},
		{"with position", ErrSyntax.WithPosition(Position{Line: 1}), ErrSyntax, true},
		{"wrapped by fmt", fmt.Errorf("outer: %w", errGrandchild.Wrap(errors.New("x"))), errChild, true},
		{"plain error", errors.New("syntax error"), ErrSyntax, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message", ErrSyntax, "syntax error"},
		{"position", ErrSyntax.WithPosition(Position{Line: 2, Column: 5}), "2:5: syntax error"},
		{"cause", ErrReadInput.Wrap(cause), "failed to read input: boom"},
		{"wrapped only", WrapError(cause), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(ErrReadInput.Wrap(cause), cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestError_AttrsAndLogValue(t *testing.T) {
	base := ErrValidation.With(slog.String("chunk", "main"))
	err := base.With(slog.Int("line", 3)).WithPosition(Position{Line: 3, Column: 1})

	if _, ok := ErrValidation.Attr("chunk"); ok {
		t.Error("With must not modify the sentinel")
	}

	if v, ok := err.Attr("chunk"); !ok || v.String() != "main" {
		t.Errorf("Attr(chunk) = %v, %v", v, ok)
	}

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	for key, want := range map[string]string{
		"error":  "validation error",
		"column": "1",
		"chunk":  "main",
	} {
		if got[key] != want {
			t.Errorf("LogValue()[%s] = %q, want %q", key, got[key], want)
		}
	}
}

func TestSnippet(t *testing.T) {
	src := "meter:4/4\nbpm:6x\n"

	want := "  2 | bpm:6x\n" +
		"           ^\n"
	if got := Snippet(src, Position{Line: 2, Column: 6}); got != want {
		t.Errorf("Snippet() =\n%q\nwant\n%q", got, want)
	}

	if got := Snippet(src, Position{Line: 9, Column: 1}); got != "" {
		t.Errorf("Snippet() out of range = %q", got)
	}
}
