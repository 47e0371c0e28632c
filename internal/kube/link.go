package kube

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateLink creates a symlink alias in the store. arg holds the source
// and target context names joined by a colon, both store-relative. The
// symlink target is the shortest relative path from the destination to the
// source, so the link stays valid when the store root moves or is itself a
// symlink.
func (s *Store) CreateLink(arg string) error {
	fields := strings.Split(arg, ":")
	if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
		return fmt.Errorf("bad link format %q, should be '<source>:<target>'", arg)
	}

	source := s.Path(fields[0])
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("stat link source %q: %w", source, err)
	}
	if info.IsDir() {
		return fmt.Errorf("link source %q cannot be a directory", fields[0])
	}

	dest := s.Path(fields[1])
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create dir for %q: %w", dest, err)
	}

	rel, err := filepath.Rel(filepath.Dir(dest), source)
	if err != nil {
		return fmt.Errorf("relativize link source %q against %q: %w", source, dest, err)
	}
	if err := os.Symlink(rel, dest); err != nil {
		return fmt.Errorf("create symlink %s -> %s: %w", rel, dest, err)
	}
	return nil
}

// linkLabel resolves a symlink lexically against the store root and
// returns its store-relative target. Absolute symlinks and targets outside
// the root produce no label.
func (s *Store) linkLabel(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("read symlink %q: %w", path, err)
	}
	if filepath.IsAbs(target) {
		return "", nil
	}

	dest := filepath.Join(filepath.Dir(path), target)
	rel, err := filepath.Rel(s.Root, dest)
	if err != nil {
		return "", nil
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
