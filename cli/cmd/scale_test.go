package cmd

import (
	"errors"
	"os"
	"testing"

	"github.com/ardnew/musical/audio"
)

func TestScale_Run(t *testing.T) {
	t.Chdir(t.TempDir())

	ctx, _, _ := testContext()

	s := &Scale{Root: 261.626, BPM: 120, Volume: 50, Join: true, Format: "raw", Out: "out/scale.bin"}
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	info, err := os.Stat("out/scale.bin")
	if err != nil {
		t.Fatal(err)
	}

	// Eight half-second notes of float64 samples.
	if want := int64(8 * audio.SampleRate / 2 * 8); info.Size() != want {
		t.Errorf("size = %d, want %d", info.Size(), want)
	}
}

func TestScale_Validate(t *testing.T) {
	tests := []struct {
		name    string
		scale   Scale
		wantErr bool
	}{
		{name: "valid", scale: Scale{Root: 440, BPM: 60, Volume: 50}},
		{name: "zero root", scale: Scale{Root: 0, BPM: 60, Volume: 50}, wantErr: true},
		{name: "negative bpm", scale: Scale{Root: 440, BPM: -1, Volume: 50}, wantErr: true},
		{name: "loud", scale: Scale{Root: 440, BPM: 60, Volume: 101}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scale.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	}
}
