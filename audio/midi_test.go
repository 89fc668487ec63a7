package audio

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ardnew/musical/lang"
)

func TestMIDIRecorder(t *testing.T) {
	m := NewMIDIRecorder()
	m.Update(&lang.Header{Numerator: 4, Denominator: 4, BPM: 120, Volume: 100, Pitch: 440, Octave: 4})

	tones := []Tone{
		{Beats: 1, Volume: 100, Semitones: 0, Octave: 4},  // A4
		{Beats: 0.5, Volume: 50, Semitones: -9, Octave: 5}, // C5
	}

	for _, tone := range tones {
		if err := m.Emit(tone); err != nil {
			t.Fatalf("Emit() error = %v", err)
		}
	}

	if m.Notes() != 2 {
		t.Errorf("Notes() = %d, want 2", m.Notes())
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("smf.ReadFrom() error = %v", err)
	}

	if len(s.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(s.Tracks))
	}

	var keys []uint8

	var bpm float64

	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
			keys = append(keys, key)
		}

		ev.Message.GetMetaTempo(&bpm)
	}

	if len(keys) != 2 || keys[0] != 69 || keys[1] != 72 {
		t.Errorf("note keys = %v, want [69 72]", keys)
	}

	if bpm != 120 {
		t.Errorf("tempo = %v, want 120", bpm)
	}
}

func TestClampKey(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{69, 69},
		{127, 127},
		{200, 127},
	}

	for _, tt := range tests {
		if got := clampKey(tt.in); got != tt.want {
			t.Errorf("clampKey(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
