package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	// File is a rotating log file written in addition to stderr. It is not
	// used in debug mode.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Debug      bool
}

// New creates a *slog.Logger writing JSON to stderr and, outside debug mode,
// to a size-rotated opts.File. It also sets the logger as the slog default so
// package-level slog calls work. The returned cleanup func flushes and closes
// the log file; callers must defer it.
func New(opts Options) (*slog.Logger, func(), error) {
	return newLogger(os.Stderr, opts)
}

func newLogger(stderr io.Writer, opts Options) (*slog.Logger, func(), error) {
	lvl := parseLevel(opts.Level)

	writers := []io.Writer{stderr}
	cleanup := func() {}

	if opts.File != "" && !opts.Debug {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		// Open eagerly so a bad path fails startup instead of the first write.
		if _, err := rotator.Write(nil); err != nil {
			return nil, nil, err
		}
		writers = append(writers, rotator)
		cleanup = func() { _ = rotator.Close() }
	}

	w := io.MultiWriter(writers...)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
