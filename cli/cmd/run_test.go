package cmd

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/ardnew/musical/interp"
	"github.com/ardnew/musical/lang"
)

func TestRun_Outputs(t *testing.T) {
	tests := []struct {
		name   string
		run    Run
		files  map[string]string
		absent []string
	}{
		{
			name:  "raw",
			run:   Run{Format: "raw"},
			files: map[string]string{"take.bin": ""},
		},
		{
			name:  "wav and midi",
			run:   Run{Format: "wav", MIDI: "take.mid"},
			files: map[string]string{"take.bin": "RIFF", "take.mid": "MThd"},
		},
		{
			name:   "dry run",
			run:    Run{Format: "wav", MIDI: "take.mid", DryRun: true},
			absent: []string{"take.bin", "take.mid"},
		},
	}

	const src = "meter:4/4\nbpm:120\n@main\nA1 B1/2\nsave take.bin\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, src)
			t.Chdir(t.TempDir())

			ctx, _, stderr := testContext()

			r := tt.run
			r.Source, r.MaxDepth = path, interp.DefaultMaxDepth

			if err := r.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v\n%s", err, stderr.String())
			}

			for name, magic := range tt.files {
				data, err := os.ReadFile(name)
				if err != nil {
					t.Fatalf("expected %s: %v", name, err)
				}

				if !bytes.HasPrefix(data, []byte(magic)) {
					t.Errorf("%s starts with %q, want %q", name, data[:min(4, len(data))], magic)
				}
			}

			for _, name := range tt.absent {
				if _, err := os.Stat(name); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("expected %s to be absent, got %v", name, err)
				}
			}
		})
	}
}

func TestRun_RawLength(t *testing.T) {
	path := writeSource(t, "meter:4/4\nbpm:60\n@main\nA1 A1/2\nsave take.bin\n")
	t.Chdir(t.TempDir())

	ctx, _, _ := testContext()

	if err := (&Run{Source: path, Format: "raw", MaxDepth: 8}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat("take.bin")
	if err != nil {
		t.Fatal(err)
	}

	// 1.5 seconds of float64 samples at 48 kHz.
	if want := int64(72000 * 8); info.Size() != want {
		t.Errorf("size = %d, want %d", info.Size(), want)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		depth  int
		target error
	}{
		{name: "depth", input: "meter:4/4\nbpm:60\n@main\ngoto main\n", depth: 4, target: lang.ErrRuntimeLimit},
		{name: "directive", input: "meter:4/4\nbpm:60\n@main\nsve x.bin\n", depth: 4, target: interp.ErrUnknownDirective},
		{name: "tempo", input: "meter:4/4\nbpm:60\n@main\nbpm:0\n", depth: 4, target: interp.ErrTempo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, stderr := testContext()

			err := (&Run{Source: writeSource(t, tt.input), MaxDepth: tt.depth, Format: "raw", DryRun: true}).Run(ctx)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}

			if stderr.Len() == 0 {
				t.Error("expected a diagnostic")
			}
		})
	}
}
