// Package logging sets up the zerolog logger. The TUI owns stdout, so logs go
// to a file under the user's state directory.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// LogFileEnv overrides the log file path.
	LogFileEnv = "DOCKSHELL_LOG"
	// LogLevelEnv selects the minimum level (debug, info, warn, error).
	LogLevelEnv = "DOCKSHELL_LOG_LEVEL"
)

// New returns a logger writing to w at the level named by DOCKSHELL_LOG_LEVEL
// (info when unset or invalid).
func New(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv(LogLevelEnv)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// OpenFile opens the default log file, creating its directory.
// The caller closes the returned file.
func OpenFile() (*os.File, error) {
	path := os.Getenv(LogFileEnv)
	if path == "" {
		base := os.Getenv("XDG_STATE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "state")
		}
		path = filepath.Join(base, "dockshell", "dockshell.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	return zerolog.Ctx(ctx)
}
