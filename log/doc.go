// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Output format, minimum level, time layout, and caller information are
// fixed at logger creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Info("expansion complete", slog.Int("branches", n))
//
// Loggers are immutable values. [Logger.Wrap] derives a logger with
// adjusted configuration, and [Logger.With] derives one carrying extra
// attributes; neither affects the original.
//
// The package also maintains a default logger writing to standard error,
// reachable through the package-level [Debug], [Info], [Warn], and [Error]
// functions and reconfigurable with [Config].
package log
