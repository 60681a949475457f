// Package logger builds the structured logger shared by every command.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// File is the log path. Defaults to <user cache>/vsixinstaller/vsixinstaller.log.
	File string
	// Verbose mirrors debug output to Stderr.
	Verbose bool
	Stderr  io.Writer
}

// DefaultPath returns the rotated log location in the user cache directory.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache dir: %w", err)
	}
	return filepath.Join(cacheDir, "vsixinstaller", "vsixinstaller.log"), nil
}

// New creates a text logger writing to a size-rotated file. If the file
// location cannot be determined, file logging is dropped and only the
// verbose stream (if any) is written.
func New(opts Options) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	path := opts.File
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    1, // megabytes
			MaxBackups: 1,
			MaxAge:     0,
			Compress:   false,
		}
		writers = append(writers, lj)
		closer = lj
	}

	if opts.Verbose && opts.Stderr != nil {
		writers = append(writers, opts.Stderr)
	}

	if len(writers) == 0 {
		return slog.New(slog.DiscardHandler), closer
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
