package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/musical/audio"
	"github.com/ardnew/musical/audio/play"
	"github.com/ardnew/musical/lang"
	"github.com/ardnew/musical/log"
)

// Scale renders the major scale above a root frequency.
type Scale struct {
	Root   float64 `default:"261.626"   help:"Root frequency in hertz."`
	BPM    int     `default:"60"        help:"Tempo; every note lasts one beat."        name:"bpm"`
	Volume int     `default:"50"        help:"Volume from 0 to 100."`
	Join   bool    `default:"true"      help:"Invert notes to keep the waveform sign."  negatable:""`
	Format string  `default:"raw"       help:"Output file format."                       enum:"${audioFormatEnum}" short:"f"`
	Play   bool    `default:"false"     help:"Play the scale after rendering."`
	Out    string  `default:"scale.bin" help:"Output file."                              short:"o"                 type:"path"`
}

// Validate implements kong's validation hook.
func (s *Scale) Validate() error {
	switch {
	case s.Root <= 0:
		return ErrInvalidFlag.With(slog.Float64("root", s.Root))
	case s.BPM <= 0:
		return ErrInvalidFlag.With(slog.Int("bpm", s.BPM))
	case s.Volume < 0 || s.Volume > 100:
		return ErrInvalidFlag.With(slog.Int("volume", s.Volume))
	}

	return nil
}

// Run executes the scale command.
func (s *Scale) Run(ctx context.Context) error {
	format, ok := audio.ParseFormat(s.Format)
	if !ok {
		return ErrInvalidFlag.With(slog.String("format", s.Format))
	}

	ren := audio.NewRenderer(
		audio.WithFormat(format),
		audio.WithJoin(s.Join),
		audio.WithLogger(log.Default()),
	)

	h := lang.Header{
		Numerator:   4,
		Denominator: 4,
		BPM:         s.BPM,
		Volume:      s.Volume,
		Pitch:       lang.DefaultPitch,
		Octave:      lang.DefaultOctave,
	}
	ren.Update(&h)

	seconds := 60 / float64(s.BPM)

	for freq := range audio.MajorScale(s.Root) {
		err := ren.Emit(audio.Tone{
			Frequency: freq,
			Seconds:   seconds,
			Beats:     1,
			Volume:    s.Volume,
			Octave:    h.Octave,
		})
		if err != nil {
			return err
		}
	}

	if err := ren.Save(s.Out); err != nil {
		return err
	}

	log.InfoContext(ctx, "rendered scale",
		slog.Float64("root", s.Root),
		slog.String("file", s.Out),
		slog.Int("samples", len(ren.Samples())))

	if s.Play {
		return play.Play(ctx, ren.Samples())
	}

	return nil
}
