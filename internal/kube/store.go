package kube

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the filesystem abstraction over the directory of stored
// kubeconfig files.
type Store struct {
	// Root is the absolute store root directory. It may be missing, which
	// is treated as an empty store.
	Root string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Root: dir}
}

// Path returns the absolute credential file path for a context name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Root, filepath.FromSlash(name))
}

// List walks the store depth-first and returns one context per regular
// file or symlink found, named by its path relative to the store root.
// subdir restricts the walk to a store subdirectory; pass "" for the whole
// store. A missing root (or subdir) yields an empty list, not an error.
func (s *Store) List(subdir string) ([]*Context, error) {
	dir := s.Root
	if subdir != "" {
		dir = s.Path(subdir)
	}

	var ctxs []*Context
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("walk %q: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return fmt.Errorf("relativize %q against store root: %w", path, err)
		}
		ctx, err := s.read(filepath.ToSlash(rel), path, d.Type()&fs.ModeSymlink != 0)
		if err != nil {
			return err
		}
		ctxs = append(ctxs, ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ctxs, nil
}

// Get looks a context up by name. It returns nil without error when no
// credential file exists under that name.
func (s *Store) Get(name string) (*Context, error) {
	path := s.Path(name)
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat kubeconfig file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a context", name)
	}
	return s.read(name, path, info.Mode()&fs.ModeSymlink != 0)
}

func (s *Store) read(name, path string, symlink bool) (*Context, error) {
	namespace, err := ReadNamespace(path)
	if err != nil {
		return nil, err
	}
	ctx := &Context{Name: name, Namespace: namespace}
	if symlink {
		link, err := s.linkLabel(path)
		if err != nil {
			return nil, err
		}
		ctx.Link = link
	}
	return ctx, nil
}

// ReadFile returns the raw credential file content, or nil when the file
// does not exist yet.
func (s *Store) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read kubeconfig file %q: %w", s.Path(name), err)
	}
	return data, nil
}

// WriteFile replaces the credential file content as a whole, creating
// parent directories as needed.
func (s *Store) WriteFile(name string, data []byte) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write kubeconfig file %q: %w", path, err)
	}
	return nil
}

// Remove deletes the credential file for a context name.
func (s *Store) Remove(name string) error {
	path := s.Path(name)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove kubeconfig file %q: %w", path, err)
	}
	return nil
}
