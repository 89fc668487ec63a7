// Package cli contains the command line interface for musical.
//
// # Usage
//
//	musical [flags] <file>           play a source file
//	musical check <file>             validate and summarize
//	musical fmt native|json|yaml <file>
//	musical query <file> <expr>      evaluate an expression over the program
//	musical scale                    render a major scale
//	musical init                     write the configuration file
//
// The "run" command is the default, so "musical song.mus" is the same as
// "musical run song.mus".
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration directory
// (for example ~/.config/musical/config.yaml). Keys are long flag names,
// nested mappings are joined with a hyphen, and a subcommand's flags may be
// nested under the command name:
//
//	log:
//	  level: debug
//	  format: text
//	run:
//	  format: wav
//
// "musical init" writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profiling mode (cpu, heap, trace, ...)
//   - --pprof-dir: output directory (default ~/.cache/musical/pprof)
package cli
