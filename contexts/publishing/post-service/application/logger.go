package application

import "log/slog"

// ResolveLogger keeps zero-value use cases usable in tests.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
