package logging

import (
	"log/slog"
	"os"
)

const serviceName = "storefront-api"

// Setup installs JSON logging to stdout. Once the database connection exists,
// main layers the DB-backed handler on top via MultiHandler.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

// StdoutHandler is the base JSON handler, shared by Setup and the
// MultiHandler fan-out so both stages log in the same shape.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}).WithAttrs([]slog.Attr{slog.String("service", serviceName)})
}
