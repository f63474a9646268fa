// Package logging wraps charmbracelet/log the same way the rest of the
// stack does: a single process-wide logger configured once at startup
// from the loaded config, exposed through leveled package functions
// rather than threading a logger value through every call site.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

// Init configures the process logger. level is one of "debug", "info",
// "warn", "error"; unrecognized values fall back to info.
func Init(appName string, level string) {
	logger = log.New(os.Stderr)
	logger.SetPrefix(appName)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	switch level {
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

func ensureInit() {
	if logger == nil {
		Init("matchserver", "info")
	}
}

func Fatal(format string, args ...any) {
	ensureInit()
	if len(args) == 0 {
		logger.Fatal(format)
		return
	}
	logger.Fatal(format, args...)
}

func Error(format string, args ...any) {
	ensureInit()
	if len(args) == 0 {
		logger.Error(format)
		return
	}
	logger.Error(format, args...)
}

func Warn(format string, args ...any) {
	ensureInit()
	if len(args) == 0 {
		logger.Warn(format)
		return
	}
	logger.Warn(format, args...)
}

func Info(format string, args ...any) {
	ensureInit()
	if len(args) == 0 {
		logger.Info(format)
		return
	}
	logger.Info(format, args...)
}

func Debug(format string, args ...any) {
	ensureInit()
	if len(args) == 0 {
		logger.Debug(format)
		return
	}
	logger.Debug(format, args...)
}
