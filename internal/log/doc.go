// Package log builds the slog loggers used outside the pure analysis core.
//
// Every logger wraps its output handler in a RedactingHandler, which masks
// provider API keys and authorization headers even at debug level, so logs can
// be attached to bug reports without leaking credentials.
//
//	logger := log.New(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
