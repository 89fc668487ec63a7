package audio

import "github.com/ardnew/musical/lang"

// ErrSave is returned when samples cannot be written to a file.
var ErrSave = lang.NewError("failed to save samples")
