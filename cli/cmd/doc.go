// Package cmd implements the musical subcommands.
//
// Every command reads a source file, parses it with [lang.ParseReader] and,
// except for fmt, validates it with [interp.New]. Parse, validation and
// runtime errors are printed as a diagnostic with the offending source line
// before being returned to the caller.
package cmd

const (
	// CacheIdentifier is the kong variable containing the path to the runtime
	// cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable containing the path to the
	// configuration file.
	ConfigIdentifier = "config"
)
