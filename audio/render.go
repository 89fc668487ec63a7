package audio

import (
	"bufio"
	"encoding/binary"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/musical/lang"
	"github.com/ardnew/musical/log"
)

// Format selects the file layout written by [Renderer.Save].
type Format int

const (
	// FormatRaw writes consecutive native-endian float64 samples with no
	// header.
	FormatRaw Format = iota
	// FormatWAV writes a 16-bit mono PCM WAV file.
	FormatWAV
)

var formatNames = [...]string{FormatRaw: "raw", FormatWAV: "wav"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}

	return formatNames[f]
}

// Formats iterates over the names of all formats.
func Formats() iter.Seq[string] { return slices.Values(formatNames[:]) }

// ParseFormat returns the format named s, ignoring case.
func ParseFormat(s string) (Format, bool) {
	i := slices.Index(formatNames[:], strings.ToLower(s))
	if i < 0 {
		return FormatRaw, false
	}

	return Format(i), true
}

// Listener observes the tones and header updates seen by a [Renderer].
type Listener interface {
	Emit(Tone) error
	Update(*lang.Header)
}

// Renderer accumulates synthesized tones in memory.
//
// Renderer follows the header it was given with [Renderer.Update]; the
// interpreter owns that header and resolves every tone against it before
// calling [Renderer.Emit].
type Renderer struct {
	header    *lang.Header
	samples   []float64
	count     int
	format    Format
	join      bool
	dryRun    bool
	listeners []Listener
	logger    log.Logger
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithFormat sets the file format written by Save.
func WithFormat(f Format) Option { return func(r *Renderer) { r.format = f } }

// WithJoin enables sign-continuous joining of consecutive tones.
func WithJoin(enable bool) Option { return func(r *Renderer) { r.join = enable } }

// WithListener adds l to the listeners notified of every tone and update.
func WithListener(l Listener) Option {
	return func(r *Renderer) {
		if l != nil {
			r.listeners = append(r.listeners, l)
		}
	}
}

// WithDryRun disables synthesis and file output. Sample counts are still
// tracked.
func WithDryRun(enable bool) Option { return func(r *Renderer) { r.dryRun = enable } }

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option { return func(r *Renderer) { r.logger = logger } }

// NewRenderer returns an empty renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := new(Renderer)
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Update makes r follow h and forwards h to the listeners.
func (r *Renderer) Update(h *lang.Header) {
	r.header = h

	if h != nil {
		r.logger.Debug("header update",
			slog.Int("bpm", h.BPM),
			slog.Int("pitch", h.Pitch),
			slog.Int("volume", h.Volume),
			slog.Int("octave", h.Octave),
			slog.Int("numerator", h.Numerator))
	}

	for _, l := range r.listeners {
		l.Update(h)
	}
}

// Header returns the header r currently follows, if any.
func (r *Renderer) Header() (lang.Header, bool) {
	if r.header == nil {
		return lang.Header{}, false
	}

	return *r.header, true
}

// Emit synthesizes t and appends it to the accumulated samples.
func (r *Renderer) Emit(t Tone) error {
	r.count += t.Samples()

	if !r.dryRun {
		s := Synthesize(t.Frequency, t.Seconds, t.Volume)
		if r.join {
			s = Join(r.samples, s)
		}

		r.samples = append(r.samples, s...)
	}

	r.logger.Trace("emit", slog.Any("tone", t), slog.Int("total", r.count))

	for _, l := range r.listeners {
		if err := l.Emit(t); err != nil {
			return err
		}
	}

	return nil
}

// Samples returns the accumulated samples. The slice aliases r's buffer.
func (r *Renderer) Samples() []float64 { return r.samples }

// Len returns the number of samples emitted so far, including those skipped
// in a dry run.
func (r *Renderer) Len() int { return r.count }

// Save writes the accumulated samples to path in the configured format.
// Missing parent directories are created. The buffer is kept, so a later
// Save writes everything emitted up to that point.
func (r *Renderer) Save(path string) error {
	if r.dryRun {
		r.logger.Info("dry run, not saving",
			slog.String("path", path),
			slog.Int("samples", r.count))

		return nil
	}

	if err := r.save(path); err != nil {
		return ErrSave.Wrap(err).With(
			slog.String("path", path),
			slog.String("format", r.format.String()))
	}

	r.logger.Info("saved",
		slog.String("path", path),
		slog.String("format", r.format.String()),
		slog.Int("samples", len(r.samples)))

	return nil
}

func (r *Renderer) save(path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if r.format == FormatWAV {
		return writeWAV(f, r.samples)
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.NativeEndian, r.samples); err != nil {
		return err
	}

	return w.Flush()
}
