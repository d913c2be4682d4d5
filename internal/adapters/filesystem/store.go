package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"carddconv/internal/ports"
)

// Store implements ports.ImageStore on an afero filesystem
type Store struct {
	fs afero.Fs
}

// Ensure Store implements ImageStore
var _ ports.ImageStore = (*Store)(nil)

// NewStore creates a new image store on the given filesystem
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// EnsureDir creates a directory and any missing parents
func (s *Store) EnsureDir(path string) error {
	if err := s.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file is present
func (s *Store) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// Size returns a file's size in bytes
func (s *Store) Size(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// CopyFile copies src to dst, overwriting dst if it exists. The source
// modification time is carried over to the copy.
func (s *Store) CopyFile(src, dst string) (int64, error) {
	in, err := s.fs.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat source: %w", err)
	}

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to copy data: %w", err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("failed to close destination: %w", err)
	}

	if err := s.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return n, fmt.Errorf("failed to set destination times: %w", err)
	}

	return n, nil
}
