package logger

import (
	"log/slog"
	"os"
)

const serviceName = "orderstate"

// New creates the process-wide JSON logger writing to stdout at info level.
// Every record carries a service attribute for log aggregation.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}
