package interp

import "github.com/ardnew/musical/log"

const (
	// DefaultMaxDepth is the default limit on nested gotos.
	DefaultMaxDepth = 256

	// MaxDepthLimit is the largest accepted limit on nested gotos. Each
	// nested goto holds a Go stack frame, so the limit stays well below the
	// point where the runtime would abort on stack exhaustion.
	MaxDepthLimit = 4096
)

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithMaxDepth limits the number of nested gotos. Values below 1 are
// ignored and values above [MaxDepthLimit] are clamped to it.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDepth = min(n, MaxDepthLimit)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithRenderer sets the renderer receiving tones, header updates and save
// requests. Without a renderer these are discarded.
func WithRenderer(r Renderer) Option {
	return func(in *Interpreter) {
		if r != nil {
			in.renderer = r
		}
	}
}
