// Package cli contains the command line interface for javpy.
//
// # Usage
//
//	javpy [flags] [run] <source>...   run sources in order (the default)
//	javpy tokens <source>             print the token stream
//	javpy fmt [native|json|yaml|ast] <source>
//	javpy repl [<source>...]          interactive session
//	javpy init [--force]              write the configuration file
//	javpy version
//
// A source is a path ending in .jvp, or "-" for stdin.
//
// # Configuration
//
// Besides the command line, which always wins, flag values may come from
// JAVPY_* environment variables (optionally loaded from a .env file in the
// working directory) and from the configuration files config.jvp.json and
// config.jvp in the user configuration directory ($JAVPY_CONFIG_DIR, or
// javpy under the platform configuration directory).
//
// The config.jvp file is itself a javpy program. It is run against a fresh
// environment and each binding supplies the flag of the same name, with
// underscores in place of hyphens:
//
//	log_level: <<debug>>
//	log_pretty: False
//
// Use "javpy init" to generate one from the current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// Logs are written to stderr; program output goes to stdout.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
// The flags are then:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: <cache dir>/pprof)
package cli
