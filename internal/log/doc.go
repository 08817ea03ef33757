// Package log builds slog loggers whose handler redacts credentials.
//
// API keys for the completion endpoint travel through configuration and HTTP
// headers; the RedactingHandler masks them by attribute key or value shape
// before any record reaches the underlying handler.
//
//	logger := log.New(os.Stderr, false)
//	logger.Warn("guidelines not loaded", "path", path, "error", err)
package log
