// Package logger provides structured logging using zerolog.
//
// The terminal belongs to the TUI while a session runs, so logs go to a
// file by default. Console output is for the helper commands.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const defaultLogFile = "powerhour/powerhour.log"

// Config represents logger configuration.
type Config struct {
	Level   string // "debug", "info", "warn", "error"
	File    string // log file path, default under $XDG_STATE_HOME
	Console bool   // write colored output to stderr instead of a file
}

// Init configures the global zerolog logger and returns it.
// The returned closer releases the log file; it is a no-op for console output.
func Init(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Level)

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		parts := strings.Split(file, string(filepath.Separator))
		if len(parts) > 1 {
			return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
		}
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	var logger zerolog.Logger
	var closer io.Closer = nopCloser{}

	if cfg.Console {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.TimeOnly,
		}).With().Timestamp().Logger()
	} else {
		path, err := resolvePath(cfg.File)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrapf(err, "open log file %s", path)
		}
		closer = f
		ctx := zerolog.New(f).With().Timestamp()
		if level == zerolog.DebugLevel {
			ctx = ctx.Caller()
		}
		logger = ctx.Logger()
	}

	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger

	return logger, closer, nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		p, err := xdg.StateFile(defaultLogFile)
		if err != nil {
			return "", errors.Wrap(err, "resolve log path")
		}
		return p, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create log directory")
	}
	return path, nil
}

// parseLevel parses the log level string.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
