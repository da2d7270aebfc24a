package application

import "log/slog"

// ResolveLogger lets use cases be built with a nil Logger.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
