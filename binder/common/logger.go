package common

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger collects the messages of one run or request so they can be returned
// to the caller. Every entry is also written to the process logger.
type Logger struct {
	Entries []*LogEntry
	out     *slog.Logger
	debug   bool
}

// LogEntry contains the message and metadata
type LogEntry struct {
	IsError bool   `json:"isError" yaml:"isError"`
	Msg     string `json:"msg" yaml:"msg"`
}

// Dbg prints a debug message when debug output is enabled. Debug messages
// are not collected.
func (l *Logger) Dbg(format string, v ...interface{}) {
	if l.debug {
		l.out.Debug(fmt.Sprintf(format, v...))
	}
}

// Msg logs an informational message
func (l *Logger) Msg(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.out.Info(msg)
	l.Entries = append(l.Entries, &LogEntry{false, msg})
}

// Err logs an error message
func (l *Logger) Err(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.out.Error(msg)
	l.Entries = append(l.Entries, &LogEntry{true, msg})
}

// Fatal logs an error and exits
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.out.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

// HasErrors reports whether any error was logged
func (l *Logger) HasErrors() bool {
	for _, entry := range l.Entries {
		if entry.IsError {
			return true
		}
	}
	return false
}

// NewLog creates a new logger writing to the default slog logger
func NewLog() *Logger {
	return &Logger{out: slog.Default()}
}

// NewDebugLog creates a logger that also emits debug messages
func NewDebugLog(debug bool) *Logger {
	log := NewLog()
	log.debug = debug
	return log
}

// SetupProcessLogger installs a text slog handler on stderr as the default
// logger. Verbose lowers the level to debug.
func SetupProcessLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
