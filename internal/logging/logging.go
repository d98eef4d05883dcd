// Package logging wraps charmbracelet/log with the helpers used across reelhub.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger. It is usable before Init is called.
var Logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

var debug bool

func prefix() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#E11D48")).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)
	return style.Render("reelhub")
}

// Init configures the logger. Debug mode adds timestamps, caller info and
// debug-level output.
func Init(w io.Writer, enableDebug bool) {
	debug = enableDebug
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    enableDebug,
		ReportTimestamp: enableDebug,
		TimeFormat:      "15:04:05",
		Prefix:          prefix(),
	})
	if enableDebug {
		Logger.SetLevel(log.DebugLevel)
		Logger.Debug("debug logging enabled")
	} else {
		Logger.SetLevel(log.InfoLevel)
	}
}

// IsDebug reports whether debug logging is on.
func IsDebug() bool { return debug }

// Debug logs a debug message with key/value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(fmt.Sprintf("%v", msg), keyvals...)
}

// Info logs an info message.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(fmt.Sprintf("%v", msg), keyvals...)
}

// Warn logs a warning.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(fmt.Sprintf("%v", msg), keyvals...)
}

// Error logs an error.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(fmt.Sprintf("%v", msg), keyvals...)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	Logger.Debug(fmt.Sprintf(format, args...))
}
