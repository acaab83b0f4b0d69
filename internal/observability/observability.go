// Package observability configures the process-wide logger.
package observability

import (
	"fmt"
	"log/slog"
	"os"
)

// Instrument installs the default slog handler writing to stderr, so log
// output never interleaves with command output on stdout.
func Instrument(level slog.Level, format string) error {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format: %q", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
