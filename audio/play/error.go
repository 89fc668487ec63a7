package play

import "github.com/ardnew/musical/lang"

// ErrPlayback is returned when samples cannot be played.
var ErrPlayback = lang.NewError("failed to play samples")
