package config

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a structured logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error); unknown values fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// LogOutput opens the file named by LOG_FILE for appending. When LOG_FILE is
// unset it returns io.Discard, since the terminal itself shows the game.
func LogOutput() (io.Writer, func() error, error) {
	path := GetEnv("LOG_FILE", "")
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
