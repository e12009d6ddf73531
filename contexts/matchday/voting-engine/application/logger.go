package application

import "log/slog"

// ResolveLogger keeps use cases nil-tolerant: tests wire no logger and still
// get structured output via the default handler.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
