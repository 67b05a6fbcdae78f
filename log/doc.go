// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are immutable values: every option is applied at creation time,
// and [Logger.Wrap] or [Logger.With] derive new loggers without touching the
// receiver. The zero [Logger] is valid and discards everything, which lets
// library code accept a logger without requiring callers to configure one.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("program started", slog.String("source", path))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Debug], ...) write through a default
// logger that [Config] reconfigures.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled, both
// formats are rendered with terminal styling from
// [github.com/charmbracelet/lipgloss]; styling degrades to plain text when
// the output is not a color-capable terminal.
package log
