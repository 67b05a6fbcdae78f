//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the raw content of the VERSION file embedded at build time.
//
//go:embed VERSION
var version string

// Version is the semantic version of the javpy module. It is printed by the
// CLI when users invoke the version subcommand.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "javpy"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Minimal scripting language interpreter"
	// Extension is the file extension required of javpy source files.
	Extension = ".jvp"
	// EnvPrefix is the prefix of environment variables that supply flag values.
	EnvPrefix = "JAVPY"
)
