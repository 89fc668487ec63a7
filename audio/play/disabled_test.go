//go:build noplay

package play

import (
	"context"
	"errors"
	"testing"
)

func TestPlay_Disabled(t *testing.T) {
	err := Play(context.Background(), []float64{0, 0.5, -0.5})
	if !errors.Is(err, ErrPlayback) {
		t.Fatalf("Play() error = %v, want ErrPlayback", err)
	}
}
