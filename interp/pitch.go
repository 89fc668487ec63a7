package interp

import (
	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/lang"
)

// Frequency resolves n to Hz against h.
//
// The reference pitch is first shifted by the distance d = octave-4 from the
// reference octave: pitch*d*2 when d > 0, pitch when d == 0, and pitch/(d*2)
// when d < 0. The shift is linear in d, not a doubling per octave, and a
// negative d yields a negative frequency. The result is then transposed by
// the note's semitone offset.
func Frequency(h lang.Header, n *lang.Note) float64 {
	d := h.Octave - lang.DefaultOctave

	var ref float64

	switch {
	case d > 0:
		ref = float64(h.Pitch * d * 2)
	case d == 0:
		ref = float64(h.Pitch)
	default:
		ref = float64(h.Pitch) / float64(d*2)
	}

	return audio.Transpose(ref, n.Semitones())
}

// Seconds returns the duration of n at the tempo of h.
func Seconds(h lang.Header, n *lang.Note) float64 {
	return n.Duration.Beats() * 60 / float64(h.BPM)
}

// Resolve builds the tone emitted for n under h.
func Resolve(h lang.Header, n *lang.Note) audio.Tone {
	return audio.Tone{
		Frequency: Frequency(h, n),
		Seconds:   Seconds(h, n),
		Beats:     n.Duration.Beats(),
		Volume:    h.Volume,
		Semitones: n.Semitones(),
		Octave:    h.Octave,
	}
}
