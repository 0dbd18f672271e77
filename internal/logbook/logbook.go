// Package logbook persists pipeline progress to a plain text file under the
// project's state directory, so a run can be inspected after the terminal
// session is gone.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook appends timestamped entries to a single file. A nil receiver is
// safe everywhere so callers never guard their logging. The file handle is
// opened once and held for the life of the logbook; entries are flushed on
// every write, so a crashed run keeps everything logged before the crash.
type Logbook struct {
	path string
	mu   sync.Mutex
	file *os.File
}

// New creates a logbook that writes to the provided path.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open %s: %w", path, err)
	}
	return &Logbook{path: path, file: file}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry.
func (l *Logbook) Append(level Level, message string) {
	l.entry(level, "", message)
}

// entry formats and writes one line: timestamp, level, optional stage tag,
// message. Write failures are dropped; logging must never fail a run.
func (l *Logbook) entry(level Level, stage, message string) {
	if l == nil || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	tag := ""
	if stage != "" {
		tag = "[" + stage + "] "
	}
	_, _ = fmt.Fprintf(l.file, "%s %-5s %s%s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(level),
		tag,
		strings.TrimSpace(message),
	)
}

// Tail returns up to maxLines of the most recent entries.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.entry(LevelInfo, "", fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.entry(LevelWarn, "", fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.entry(LevelError, "", fmt.Sprintf(format, args...))
}

// Stage tags an entry with the pipeline stage it belongs to.
func (l *Logbook) Stage(stage, format string, args ...any) {
	l.entry(LevelInfo, stage, fmt.Sprintf(format, args...))
}
