package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var root = logrus.New()

// Logger returns the shared root logger. Packages derive component entries
// from it with WithField("component", ...).
func Logger() *logrus.Logger {
	return root
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return root.WithField("component", name)
}

// SetupLogging points the root logger at the configured destination. An empty
// file logs to stderr. The returned closer releases the log file, if any.
func SetupLogging(lc LogConfig, toFile bool) (io.Closer, error) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	root.SetLevel(level)
	root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if !toFile || lc.File == "" {
		root.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	root.SetOutput(f)
	return f, nil
}
