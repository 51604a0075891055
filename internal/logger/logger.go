// Package logger writes leveled log records to a file. The TUI owns the
// terminal, so nothing is written to stdout or stderr.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Level is the severity of a record.
type Level int

// Log levels.
const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Logger is a leveled logger backed by a writer.
type Logger struct {
	logger       *log.Logger
	level        Level
	closer       io.Closer
	enableCaller bool
	debugMode    bool
}

var globalLogger *Logger

// New returns a logger writing to w.
func New(w io.Writer, level Level, debugMode bool) *Logger {
	return &Logger{
		logger:       log.New(w, "", 0),
		level:        level,
		enableCaller: true,
		debugMode:    debugMode,
	}
}

// NewFileLogger opens logPath for appending, creating its directory.
func NewFileLogger(logPath string, level Level, debugMode bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(file, level, debugMode)
	l.closer = file
	return l, nil
}

// SetGlobal replaces the global logger. Passing nil disables logging.
func SetGlobal(l *Logger) {
	globalLogger = l
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// IsDebugEnabled reports whether debug records are written.
func IsDebugEnabled() bool {
	return globalLogger != nil && globalLogger.debugMode
}

// Debug logs through the global logger when debug mode is on.
func Debug(format string, args ...any) {
	if globalLogger != nil && globalLogger.debugMode {
		globalLogger.log(DEBUG, format, args...)
	}
}

// Info logs through the global logger.
func Info(format string, args ...any) {
	if globalLogger != nil {
		globalLogger.log(INFO, format, args...)
	}
}

// Warn logs through the global logger.
func Warn(format string, args ...any) {
	if globalLogger != nil {
		globalLogger.log(WARN, format, args...)
	}
}

// Error logs through the global logger.
func Error(format string, args ...any) {
	if globalLogger != nil {
		globalLogger.log(ERROR, format, args...)
	}
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// EnableCaller toggles the file:line suffix.
func (l *Logger) EnableCaller(enable bool) {
	l.enableCaller = enable
}

// Debug logs a debug record when debug mode is on.
func (l *Logger) Debug(format string, args ...any) {
	if l.debugMode {
		l.log(DEBUG, format, args...)
	}
}

// Info logs an info record.
func (l *Logger) Info(format string, args ...any) {
	l.log(INFO, format, args...)
}

// Warn logs a warning record.
func (l *Logger) Warn(format string, args ...any) {
	l.log(WARN, format, args...)
}

// Error logs an error record.
func (l *Logger) Error(format string, args ...any) {
	l.log(ERROR, format, args...)
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	var caller string
	if l.enableCaller {
		if _, file, line, ok := runtime.Caller(2); ok {
			caller = fmt.Sprintf(" [%s:%d]", filepath.Base(file), line)
		}
	}

	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%s [%s]%s %s", timestamp, level, caller, message)
}
