// Package logging provides file-based logging for gantt.
// It writes every entry to a global log file (<app dir>/logs/gantt.log)
// and entries scoped to a mode to a per-mode file (<app dir>/logs/tasks.log,
// <app dir>/logs/projects.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/gantt/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes slog-levelled entries to log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	now        func() time.Time
	globalFile *os.File
	modeFiles  map[domain.Mode]*os.File
	appDir     string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes under appDir/logs.
// If appDir is empty, logging is disabled (returns a no-op logger).
func New(appDir string, level slog.Level) *Logger {
	return &Logger{
		appDir:    appDir,
		level:     level,
		now:       time.Now,
		modeFiles: make(map[domain.Mode]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(filepath.Join(l.appDir, "logs"), 0o750)
}

// openLocked opens path for appending. Callers hold l.mu.
func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func (l *Logger) globalFileLocked() (*os.File, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLocked(domain.LogPath(l.appDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

func (l *Logger) modeFileLocked(mode domain.Mode) (*os.File, error) {
	if f, ok := l.modeFiles[mode]; ok {
		return f, nil
	}
	f, err := l.openLocked(domain.ModeLogPath(l.appDir, mode))
	if err != nil {
		return nil, err
	}
	l.modeFiles[mode] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for mode, f := range l.modeFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.modeFiles, mode)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [tasks] [fetch] message
func formatLog(t time.Time, level slog.Level, mode domain.Mode, category, msg string) string {
	scope := "global"
	if mode != "" {
		scope = strings.ToLower(string(mode))
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		level.String(),
		scope,
		category,
		msg,
	)
}

// log writes an entry to the global log and, when mode is set, to the mode log.
func (l *Logger) log(level slog.Level, mode domain.Mode, category, msg string) {
	if l.appDir == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, mode, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gf, err := l.globalFileLocked(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if mode != "" {
		if mf, err := l.modeFileLocked(mode); err == nil {
			_, _ = io.WriteString(mf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(mode domain.Mode, category, msg string) {
	l.log(slog.LevelInfo, mode, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(mode domain.Mode, category, msg string) {
	l.log(slog.LevelDebug, mode, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(mode domain.Mode, category, msg string) {
	l.log(slog.LevelWarn, mode, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(mode domain.Mode, category, msg string) {
	l.log(slog.LevelError, mode, category, msg)
}
