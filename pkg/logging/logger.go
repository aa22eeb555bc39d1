package logging

import (
	"bytes"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is a wrapper around the log.Logger from the charmbracelet/log package.
type Logger struct {
	*log.Logger
	Buffer *bytes.Buffer
}

var (
	logger *Logger
	once   sync.Once
)

// CreateLogger sets up the logger. It must be called before using the logger.
func CreateLogger() {
	once.Do(func() {
		// Create a logger with default settings
		baseLogger := log.New(os.Stderr)

		// Check if DEBUG environment variable is set to 1
		if os.Getenv("DEBUG") == "1" {
			// Set log options only when DEBUG is enabled
			baseLogger = log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				Prefix:          "paperdrop",
			})

			baseLogger.SetLevel(log.DebugLevel)
		} else {
			// Use InfoLevel for normal operation without special logging options
			baseLogger.SetLevel(log.InfoLevel)
		}

		// Wrap the base logger in the custom Logger type
		logger = &Logger{Logger: baseLogger}
	})
}

// Debug logs debug messages if debug logging is enabled.
func Debug(msg interface{}, keyvals ...interface{}) {
	EnsureInitialized()
	logger.Debug(msg, keyvals...)
}

// Info logs informational messages.
func Info(msg interface{}, keyvals ...interface{}) {
	EnsureInitialized()
	logger.Info(msg, keyvals...)
}

// Warn logs warning messages.
func Warn(msg interface{}, keyvals ...interface{}) {
	EnsureInitialized()
	logger.Warn(msg, keyvals...)
}

// Error logs error messages.
func Error(msg interface{}, keyvals ...interface{}) {
	EnsureInitialized()
	logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message and exits the program.
func Fatal(msg interface{}, keyvals ...interface{}) {
	EnsureInitialized()
	logger.Fatal(msg, keyvals...)
}

// GetLogger returns the Logger instance.
func GetLogger() *Logger {
	EnsureInitialized()
	return logger
}

// NewTestLogger returns a logger that records its output in an in-memory
// buffer so tests can assert on it. Debug level is always enabled.
func NewTestLogger() *Logger {
	buf := new(bytes.Buffer)
	baseLogger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: false,
	})
	baseLogger.SetLevel(log.DebugLevel)
	return &Logger{Logger: baseLogger, Buffer: buf}
}

// GetOutput returns everything written through a logger created by
// NewTestLogger. It is empty for loggers without a capture buffer.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}

// With returns a child logger carrying the given key/value context. The
// capture buffer, when present, is shared with the parent.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), Buffer: l.Buffer}
}

// BaseLogger returns the underlying *log.Logger from the custom Logger.
func (l *Logger) BaseLogger() *log.Logger {
	return l.Logger
}

// SetTestLogger swaps the singleton for a test logger so package-level
// helpers write into its capture buffer.
func SetTestLogger(l *Logger) {
	logger = l
}

// ResetForTest clears the singleton so tests can exercise CreateLogger again.
func ResetForTest() {
	logger = nil
	once = sync.Once{}
}

// EnsureInitialized ensures the logger is initialized before use.
func EnsureInitialized() {
	if logger == nil {
		CreateLogger()
	}
}
