// Package cmd implements the javpy subcommands: run, tokens, fmt, init and
// version. The interactive session lives in package repl.
//
// Commands receive their [kong.Context] through the context.Context passed
// to Run (see [WithContext]) and write program output to the kong context's
// Stdout.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the javpy configuration file.
	ConfigIdentifier = "config"
)
