package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level  string // trace, debug, info, warn, error, disabled
	Format string // json or console
	Output string // stdout, stderr, file or discard
	// FilePath is used when Output is "file". Parent directories are created.
	FilePath string
}

func DefaultOptions() Options {
	return Options{Level: "info", Format: "console", Output: "stderr"}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from opts. The returned closer releases the log file
// when Output is "file" and is a no-op otherwise.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level '%s': %w", opts.Level, err)
		}
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch strings.ToLower(opts.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard":
		return zerolog.Nop(), closer, nil
	case "file":
		if opts.FilePath == "" {
			return zerolog.Nop(), closer, fmt.Errorf("log output 'file' needs a file path")
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file '%s': %w", opts.FilePath, err)
		}
		out, closer = f, f
	default:
		return zerolog.Nop(), closer, fmt.Errorf("unknown log output '%s'", opts.Output)
	}

	switch strings.ToLower(opts.Format) {
	case "", "json":
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), closer, fmt.Errorf("unknown log format '%s'", opts.Format)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}
