package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the slog logger described by cfg. Logs go to cfg.File as
// text, or are discarded when no file is set because the terminal belongs to
// the frontend. The returned close function releases the file.
func NewLogger(cfg LogConfig) (*slog.Logger, func() error, error) {
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: logger: %w", err)
	}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, nil, fmt.Errorf("engine: logger: %w", err)
	}

	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))

	return log, f.Close, nil
}
