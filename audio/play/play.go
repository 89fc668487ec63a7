//go:build !noplay

package play

import (
	"bytes"
	"context"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ardnew/musical/audio"
)

const poll = 20 * time.Millisecond

// Play sends samples to the default output device and blocks until playback
// completes or ctx is done.
func Play(ctx context.Context, samples []float64) error {
	otx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return ErrPlayback.Wrap(err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return context.Cause(ctx)
	}

	p := otx.NewPlayer(bytes.NewReader(audio.Float32LE(samples)))
	defer p.Close()

	p.Play()

	tick := time.NewTicker(poll)
	defer tick.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()

			return context.Cause(ctx)
		case <-tick.C:
		}
	}

	if err := otx.Err(); err != nil {
		return ErrPlayback.Wrap(err)
	}

	return nil
}
