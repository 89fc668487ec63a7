package audio

import (
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavChannels  = 1
	wavPCMFormat = 1
)

// writeWAV encodes samples as 16-bit mono PCM. Samples outside [-1,1] are
// clipped.
func writeWAV(w io.WriteSeeker, samples []float64) error {
	enc := wav.NewEncoder(w, SampleRate, wavBitDepth, wavChannels, wavPCMFormat)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(max(-1, min(1, s)) * math.MaxInt16))
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: SampleRate, NumChannels: wavChannels},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
