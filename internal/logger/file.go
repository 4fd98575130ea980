package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is an append-only log file that can be read back and cleared while
// the server is writing to it.
type File struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// OpenFile opens path for appending, creating it and its directory.
func OpenFile(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &File{path: path, f: f}, nil
}

// Path returns the file's location.
func (l *File) Path() string {
	return l.path
}

func (l *File) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Write(p)
}

// Tail returns the last n lines and the total number of lines. A missing
// file yields an error satisfying errors.Is(err, fs.ErrNotExist).
func (l *File) Tail(n int) ([]string, int, error) {
	l.mu.Lock()
	data, err := os.ReadFile(l.path)
	l.mu.Unlock()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read log file: %w", err)
	}

	lines := splitLines(data)
	total := len(lines)
	if n >= 0 && total > n {
		lines = lines[total-n:]
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, total, nil
}

// splitLines breaks data at newlines without any limit on line length. A
// trailing newline does not start another line and "\r\n" endings are
// accepted.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n"))
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(bytes.TrimSuffix(p, []byte("\r")))
	}
	return lines
}

// Clear truncates the file. Later writes start from the beginning.
func (l *File) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.f.Truncate(0); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	return nil
}

func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
