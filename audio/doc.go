// Package audio turns resolved notes into sample data.
//
// [Synthesize] produces a mono sine tone at [SampleRate]. A [Renderer]
// accumulates the tones emitted by an interpreter run and saves them either
// as a raw stream of native-endian float64 samples or as a 16-bit WAV file.
// Listeners such as [MIDIRecorder] observe the same tones. Playback through
// the default output device lives in the play subpackage.
package audio
