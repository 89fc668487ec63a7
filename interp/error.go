package interp

import "github.com/ardnew/musical/lang"

// Validation failures.
var (
	ErrLeftoverBody     = lang.ErrValidation.Derive("unrecognized text in chunk")
	ErrDuplicateChunk   = lang.ErrValidation.Derive("duplicate chunk name")
	ErrNoEntry          = lang.ErrValidation.Derive("missing chunk " + lang.Entry)
	ErrMeter            = lang.ErrValidation.Derive("time signature denominator must be a power of two")
	ErrNumerator        = lang.ErrValidation.Derive("time signature numerator must be positive")
	ErrPitch            = lang.ErrValidation.Derive("pitch must be positive")
	ErrTempo            = lang.ErrValidation.Derive("bpm must be positive")
	ErrChunkNotFound    = lang.ErrValidation.Derive("goto target not found")
	ErrUnknownDirective = lang.ErrValidation.Derive("unknown directive")
	ErrUnknownOperation = lang.ErrValidation.Derive("unknown operation")
)

var (
	// ErrDepth is returned when nested gotos exceed the maximum depth.
	ErrDepth = lang.ErrRuntimeLimit.Derive("goto depth exceeded")

	// ErrState is returned by Run on an interpreter that has already run.
	ErrState = lang.NewError("interpreter already run")

	// ErrRender wraps failures reported by the renderer.
	ErrRender = lang.NewError("render failed")
)
