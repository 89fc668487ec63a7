package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/ardnew/musical/lang"
)

type recordingListener struct {
	tones   []Tone
	headers []lang.Header
	err     error
}

func (l *recordingListener) Emit(t Tone) error {
	l.tones = append(l.tones, t)

	return l.err
}

func (l *recordingListener) Update(h *lang.Header) { l.headers = append(l.headers, *h) }

func TestRenderer_Emit(t *testing.T) {
	l := new(recordingListener)
	r := NewRenderer(WithListener(l))

	h := &lang.Header{BPM: 60, Volume: 100, Pitch: 440, Octave: 4}
	r.Update(h)

	for _, secs := range []float64{1, 0.5} {
		if err := r.Emit(Tone{Frequency: 440, Seconds: secs, Volume: 100}); err != nil {
			t.Fatalf("Emit() error = %v", err)
		}
	}

	if got := len(r.Samples()); got != 72000 {
		t.Errorf("len(Samples()) = %d, want 72000", got)
	}

	if r.Len() != 72000 {
		t.Errorf("Len() = %d, want 72000", r.Len())
	}

	if len(l.tones) != 2 || len(l.headers) != 1 {
		t.Errorf("listener saw %d tones and %d headers", len(l.tones), len(l.headers))
	}

	h.Volume = 10
	if got, _ := r.Header(); got.Volume != 10 {
		t.Error("renderer must follow the shared header")
	}
}

func TestRenderer_DryRun(t *testing.T) {
	r := NewRenderer(WithDryRun(true))

	if err := r.Emit(Tone{Frequency: 440, Seconds: 2, Volume: 100}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if len(r.Samples()) != 0 || r.Len() != 96000 {
		t.Errorf("dry run: %d samples kept, Len() = %d", len(r.Samples()), r.Len())
	}

	path := filepath.Join(t.TempDir(), "out.bin")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run must not write files")
	}
}

func TestRenderer_ListenerError(t *testing.T) {
	errBoom := errors.New("boom")
	r := NewRenderer(WithListener(&recordingListener{err: errBoom}))

	if err := r.Emit(Tone{Frequency: 440, Seconds: 0.1, Volume: 50}); !errors.Is(err, errBoom) {
		t.Errorf("Emit() error = %v, want %v", err, errBoom)
	}
}

func TestRenderer_SaveRaw(t *testing.T) {
	r := NewRenderer()
	if err := r.Emit(Tone{Frequency: 440, Seconds: 0.01, Volume: 100}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "out.bin")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if len(data) != 8*480 {
		t.Fatalf("file size = %d, want %d", len(data), 8*480)
	}

	got := make([]float64, 480)
	if err := binary.Read(bytes.NewReader(data), binary.NativeEndian, got); err != nil {
		t.Fatalf("binary.Read() error = %v", err)
	}

	for i, v := range r.Samples() {
		if got[i] != v {
			t.Fatalf("sample %d = %v, want %v", i, got[i], v)
		}
	}
}

func TestRenderer_SaveWAV(t *testing.T) {
	r := NewRenderer(WithFormat(FormatWAV))
	if err := r.Emit(Tone{Frequency: 440, Seconds: 0.1, Volume: 100}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("invalid WAV file")
	}

	if dec.SampleRate != SampleRate || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("format = %d Hz, %d channels, %d bits", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
}

func TestRenderer_SaveError(t *testing.T) {
	r := NewRenderer()

	dir := t.TempDir()
	if err := r.Save(dir); !errors.Is(err, ErrSave) {
		t.Errorf("Save(directory) error = %v, want ErrSave", err)
	}
}

func TestParseFormat(t *testing.T) {
	for name := range Formats() {
		f, ok := ParseFormat(name)
		if !ok || f.String() != name {
			t.Errorf("ParseFormat(%q) = %v, %v", name, f, ok)
		}
	}

	if f, ok := ParseFormat("WAV"); !ok || f != FormatWAV {
		t.Errorf("ParseFormat(WAV) = %v, %v", f, ok)
	}

	if _, ok := ParseFormat("mp3"); ok {
		t.Error("ParseFormat(mp3) should fail")
	}
}
