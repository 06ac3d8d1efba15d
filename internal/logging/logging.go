// Package logging sets up the structured logger. The timer runs in the
// terminal's alternate screen, so records go to a rotating file rather
// than stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xvierd/pomo/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Result holds the logger and the file it writes to.
type Result struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *Result) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// Setup creates a JSON logger writing to the rotating file named in cfg.
func Setup(cfg config.LoggingConfig, level slog.Leveler) (*Result, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	return &Result{
		Logger:   NewWithWriter(writer, level),
		LogFile:  writer,
		FilePath: cfg.File,
	}, nil
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
