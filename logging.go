package mailcloud

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newLogger builds the client logger. The returned closer is non-nil only
// when a log file was opened.
func newLogger(cfg LoggingConfig) (*slog.Logger, io.Closer, error) {
	if cfg.Logger != nil {
		return cfg.Logger, nil, nil
	}

	var (
		w      io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "":
		return discardLogger(), nil, nil
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	level, _ := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("component", "mailcloud"), closer, nil
}
