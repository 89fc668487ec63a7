//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the musical module embedded at build
// time from the VERSION file.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding
// whitespace.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "musical"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Render chunked musical notation to audio"
)
