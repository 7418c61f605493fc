// Package logging provides structured logging with file output support.
// It uses environment variables for configuration and adapts the logger
// to the decoder's diagnostic sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LoggerCloser wraps a logger and provides a Close method for cleanup
type LoggerCloser struct {
	*log.Logger
	closer io.Closer
	path   string
}

// Close closes the underlying writer if it's closeable
func (lc *LoggerCloser) Close() error {
	if lc.closer != nil {
		return lc.closer.Close()
	}
	return nil
}

// Path returns the log file path, or "" when logging to a stream.
func (lc *LoggerCloser) Path() string {
	return lc.path
}

// NewLoggerWithWriter creates a new logger with the provided writer
func NewLoggerWithWriter(w io.Writer) *LoggerCloser {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	lg.SetLevel(levelFromEnv())

	prefix := os.Getenv("N64VIEW_LOG_PREFIX")
	if prefix == "" {
		prefix = "n64view "
	}

	var closer io.Closer
	if c, ok := w.(io.Closer); ok && w != os.Stderr {
		closer = c
	}

	return &LoggerCloser{
		Logger: lg.WithPrefix(prefix),
		closer: closer,
	}
}

func levelFromEnv() log.Level {
	switch os.Getenv("N64VIEW_LOG_LEVEL") {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// LogFileName returns the timestamped log file name used when
// N64VIEW_LOG_TO_FILE is set.
func LogFileName(t time.Time) string {
	return fmt.Sprintf("n64view-%s-debug.log", t.Format("20060102-150405"))
}

// NewLogger creates a new logger based on environment variables
// N64VIEW_LOG_LEVEL: debug, info, warn, error (default: info)
// N64VIEW_LOG_PREFIX: prefix for log messages (default: "n64view ")
// N64VIEW_LOG_TO_FILE: when set to "1", logs to a timestamped file instead of stderr
func NewLogger() *LoggerCloser {
	if os.Getenv("N64VIEW_LOG_TO_FILE") == "1" {
		logFile := LogFileName(time.Now())
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err == nil {
			lc := NewLoggerWithWriter(f)
			lc.path = logFile
			return lc
		}
		// If file creation fails, fall back to stderr
	}

	return NewLoggerWithWriter(os.Stderr)
}

// IsDebug returns true if debug logging is enabled
func IsDebug() bool {
	return os.Getenv("N64VIEW_LOG_LEVEL") == "debug"
}
