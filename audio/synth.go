package audio

import (
	"iter"
	"math"

	"github.com/viterin/vek"
)

// SampleRate is the number of samples per second of all generated audio.
const SampleRate = 48000

// Synthesize returns int(SampleRate*seconds) samples of a sine wave at freq
// Hz scaled by volume percent.
func Synthesize(freq, seconds float64, volume int) []float64 {
	n := int(SampleRate * seconds)
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	step := 2 * math.Pi * freq / SampleRate

	for i := range out {
		out[i] = math.Sin(float64(i) * step)
	}

	vek.MulNumber_Inplace(out, float64(volume)/100)

	return out
}

// Negate returns a copy of samples with the sign of every sample reversed.
func Negate(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}

	return vek.Neg(samples)
}

// Join returns next adjusted to follow prev: when prev ends on a negative
// sample, next is negated so the wave continues downward.
func Join(prev, next []float64) []float64 {
	if len(prev) > 0 && prev[len(prev)-1] < 0 {
		return Negate(next)
	}

	return next
}

// Transpose returns freq shifted by semitones in equal temperament.
func Transpose(freq float64, semitones int) float64 {
	return freq * math.Pow(2, float64(semitones)/12)
}

// majorSteps are the semitone steps of a major scale, starting on the root.
var majorSteps = [...]int{0, 2, 2, 1, 2, 2, 2, 1}

// MajorScale yields the eight frequencies of the major scale starting at
// root, ending on the octave.
func MajorScale(root float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		offset := 0

		for _, step := range majorSteps {
			offset += step
			if !yield(Transpose(root, offset)) {
				return
			}
		}
	}
}
