// Package history implements the append-only journal of context and
// namespace switches, stored one entry per line as
// "<unix-seconds> <context-name> <namespace>" and read newest-first.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the journal location relative to the user's home directory.
const FileName = ".kubeswitch_history"

// For mocking in tests.
var timeNow = time.Now

// Entry is one recorded switch.
type Entry struct {
	Name      string
	Namespace string
}

// Journal is the switch history file. Appends are single atomic writes;
// there is no locking, concurrent invocations may interleave appends.
type Journal struct {
	path string
}

// NewJournal returns a journal backed by the given file.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// DefaultJournal returns the journal at its conventional home location.
func DefaultJournal() (*Journal, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return NewJournal(filepath.Join(home, FileName)), nil
}

// Append records a switch. It never truncates existing content.
func (j *Journal) Append(name, namespace string) error {
	file, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file %q for writing: %w", j.path, err)
	}
	defer file.Close()

	line := fmt.Sprintf("%d %s %s\n", timeNow().Unix(), name, namespace)
	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("write history file %q: %w", j.path, err)
	}
	return nil
}

// Open starts a newest-first read of the journal. A missing file yields a
// reader that is immediately exhausted.
func (j *Journal) Open() (*Reader, error) {
	file, err := os.Open(j.path)
	if os.IsNotExist(err) {
		return &Reader{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file %q for reading: %w", j.path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat history file %q: %w", j.path, err)
	}
	return &Reader{file: file, scanner: NewReverseScanner(file, info.Size())}, nil
}

// Reader iterates journal entries newest-first. Malformed lines are
// skipped, never fatal.
type Reader struct {
	file    *os.File
	scanner *ReverseScanner
}

// Next returns the next (older) entry, or nil when the journal is
// exhausted.
func (r *Reader) Next() (*Entry, error) {
	if r.scanner == nil {
		return nil, nil
	}
	for r.scanner.Scan() {
		// Fields never yields empty strings, so a line with an empty name
		// or namespace comes out with the wrong field count and is skipped.
		fields := strings.Fields(r.scanner.Text())
		if len(fields) != 3 {
			continue
		}
		return &Entry{Name: fields[1], Namespace: fields[2]}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return nil, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}
