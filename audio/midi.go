package audio

import (
	"io"
	"math"
	"os"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ardnew/musical/lang"
)

const (
	ticksPerBeat = 960
	midiChannel  = 0
	// midiReference is the MIDI key of A4, the note a zero semitone offset
	// resolves to at the reference octave.
	midiReference = 69
)

// MIDIRecorder is a [Listener] that records tones as a single-track
// Standard MIDI File.
type MIDIRecorder struct {
	track   smf.Track
	pending uint32 // ticks since the last recorded event
	header  lang.Header
	notes   int
}

// NewMIDIRecorder returns an empty recorder.
func NewMIDIRecorder() *MIDIRecorder { return new(MIDIRecorder) }

// Update records tempo and meter changes.
func (m *MIDIRecorder) Update(h *lang.Header) {
	if h == nil {
		return
	}

	if h.BPM != m.header.BPM && h.BPM > 0 {
		m.track.Add(m.pending, smf.MetaTempo(float64(h.BPM)))
		m.pending = 0
	}

	if (h.Numerator != m.header.Numerator || h.Denominator != m.header.Denominator) &&
		h.Numerator > 0 && h.Denominator > 0 {
		m.track.Add(m.pending, smf.MetaMeter(clampByte(h.Numerator), clampByte(h.Denominator)))
		m.pending = 0
	}

	m.header = *h
}

// Emit records t as a note-on/note-off pair lasting t.Beats quarter notes.
func (m *MIDIRecorder) Emit(t Tone) error {
	key := clampKey(midiReference + t.Semitones + 12*(t.Octave-lang.DefaultOctave))
	velocity := clampKey(t.Volume * 127 / 100)
	ticks := uint32(math.Round(max(t.Beats, 0) * ticksPerBeat))

	m.track.Add(m.pending, midi.NoteOn(midiChannel, key, velocity))
	m.track.Add(ticks, midi.NoteOff(midiChannel, key))
	m.pending = 0
	m.notes++

	return nil
}

// Notes returns the number of recorded notes.
func (m *MIDIRecorder) Notes() int { return m.notes }

// WriteTo writes the recording as a Standard MIDI File. The recorder can
// keep recording afterwards.
func (m *MIDIRecorder) WriteTo(w io.Writer) (int64, error) {
	tr := slices.Clone(m.track)
	tr.Close(m.pending)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)

	if err := s.Add(tr); err != nil {
		return 0, err
	}

	return s.WriteTo(w)
}

// WriteFile writes the recording to path.
func (m *MIDIRecorder) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return ErrSave.Wrap(err)
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = ErrSave.Wrap(cerr)
		}
	}()

	if _, err := m.WriteTo(f); err != nil {
		return ErrSave.Wrap(err)
	}

	return nil
}

func clampKey(n int) uint8 { return uint8(max(0, min(127, n))) }

func clampByte(n int) uint8 { return uint8(max(0, min(255, n))) }
