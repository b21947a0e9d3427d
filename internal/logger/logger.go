package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger: JSON at info level for prod so the log
// pipeline can ingest it, text at debug level everywhere else.
func New(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var h slog.Handler
	if env == "prod" {
		opts.Level = slog.LevelInfo
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", "gigpay-backend")
}
