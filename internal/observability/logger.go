// Package observability provides structured logging setup and Prometheus
// metrics for the callwave server.
package observability

import (
	"log/slog"
	"os"
)

// SetupLogger installs the process-wide slog default: JSON in prod, text
// with debug level in dev.
func SetupLogger(mode string) *slog.Logger {
	var handler slog.Handler
	if mode == "prod" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
