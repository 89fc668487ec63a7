package audio

import (
	"encoding/binary"
	"math"
)

// Float32LE encodes samples as little-endian float32 PCM.
func Float32LE(samples []float64) []byte {
	buf := make([]byte, 0, 4*len(samples))
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(s)))
	}

	return buf
}
