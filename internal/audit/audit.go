// Package audit provides an append-only history of renames.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Operations recorded in the log.
const (
	OpRename       = "rename"
	OpRenameFailed = "rename_failed"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Operation string    `json:"op"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Solution  string    `json:"solution,omitempty"`
	BasePath  string    `json:"base_path,omitempty"`
	Step      string    `json:"step,omitempty"` // failed step for rename_failed
}

// Logger handles writing to the audit log.
type Logger struct {
	path    string
	enabled bool
	now     func() time.Time
	mu      sync.Mutex
}

// New creates a logger appending to path.
// If enabled is false, the logger will be a no-op.
func New(path string, enabled bool) *Logger {
	if !enabled || strings.TrimSpace(path) == "" {
		return &Logger{enabled: false}
	}
	return &Logger{
		path:    path,
		enabled: true,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Path returns the log file path, empty when disabled.
func (l *Logger) Path() string {
	return l.path
}

// Enabled returns true if the audit logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Log writes an entry to the audit log.
func (l *Logger) Log(entry Entry) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}

// LogRename records a completed rename.
func (l *Logger) LogRename(from, to, solution, basePath string) error {
	return l.Log(Entry{
		Operation: OpRename,
		From:      from,
		To:        to,
		Solution:  solution,
		BasePath:  basePath,
	})
}

// LogRenameFailed records a rename that stopped at step.
func (l *Logger) LogRenameFailed(from, to, solution, basePath, step string) error {
	return l.Log(Entry{
		Operation: OpRenameFailed,
		From:      from,
		To:        to,
		Solution:  solution,
		BasePath:  basePath,
		Step:      step,
	})
}

// Read returns all entries in the order they were written. Malformed lines
// are skipped.
func (l *Logger) Read() ([]Entry, error) {
	if !l.enabled {
		return nil, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return entries, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (l *Logger) Recent(limit int) ([]Entry, error) {
	return l.RecentSince(time.Time{}, limit)
}

// RecentSince is Recent restricted to entries at or after since. A zero
// since keeps every entry.
func (l *Logger) RecentSince(since time.Time, limit int) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if !since.IsZero() && all[i].Timestamp.Before(since) {
			continue
		}
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
