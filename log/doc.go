// Package log is a leveled, structured logger built on [log/slog].
//
// A [Logger] is configured once, when it is made, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("compiled", slog.String("text", text))
//
// Each level has a context-aware method and a variant that uses
// [DefaultContextProvider]. Below [LevelDebug] is [LevelTrace], used for
// per-node evaluation records.
//
// The zero Logger discards everything. The package-level functions log
// through a default logger that writes pretty text to standard error;
// [Config] reconfigures it.
package log
