// Package logging builds the logrus logger ticktock writes to its log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/ticktock/internal/config"
)

// New returns a logger configured from cfg and a closer for its output.
//
// The terminal belongs to the TUI, so output goes only to cfg.File. When the
// file cannot be opened the logger writes to io.Discard and the error is
// returned alongside it; callers may keep running with the returned logger.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(cfg.Level))
	logger.SetFormatter(formatter(cfg.Format))
	logger.SetOutput(io.Discard)

	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logger, nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger, nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(file)
	return logger, file, nil
}

// ParseLevel maps a config level to logrus, defaulting to info.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Component tags every entry with the subsystem that produced it.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func formatter(format string) logrus.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return &logrus.JSONFormatter{}
	default:
		return &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
