//go:build noplay

package play

import (
	"context"
	"log/slog"
)

// Play reports that playback was not built in.
func Play(context.Context, []float64) error {
	return ErrPlayback.With(slog.String("reason", "built with noplay"))
}
