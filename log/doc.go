// Package log provides a simplified structured logging interface built on
// [log/slog].
//
// A [Logger] is an immutable value. Configuration is applied at creation time
// with functional options and never changes afterwards, so a Logger can be
// shared freely between goroutines:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("render complete", slog.Int("samples", n))
//
// The zero Logger discards everything, which lets library packages accept a
// Logger option without forcing callers to configure one.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace sits below slog's debug level and is
// used for per-operation interpreter output.
//
// # Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled both
// formats are rendered by a colorized handler intended for terminals.
//
// # Package-level logger
//
// The package keeps a default Logger writing to standard error. [Config]
// replaces it by wrapping the current one with additional options, and the
// package-level functions ([Info], [WarnContext], ...) log through it.
package log
