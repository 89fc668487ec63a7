package audio

import "log/slog"

// Tone is a note resolved against the header in effect when it was emitted.
type Tone struct {
	Frequency float64 // Hz
	Seconds   float64
	Beats     float64
	Volume    int // percent
	Semitones int // offset from the reference pitch
	Octave    int
}

// Samples returns the number of samples t occupies at [SampleRate].
func (t Tone) Samples() int { return max(int(SampleRate*t.Seconds), 0) }

// LogValue implements slog.LogValuer.
func (t Tone) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("frequency", t.Frequency),
		slog.Float64("seconds", t.Seconds),
		slog.Float64("beats", t.Beats),
		slog.Int("volume", t.Volume),
		slog.Int("semitones", t.Semitones),
		slog.Int("octave", t.Octave),
	)
}
