package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves uploaded files on local disk under a configured root. Stored
// names are uuid-prefixed so uploads never collide or overwrite each other.
type Store struct {
	root      string
	maxSizeMB int64
}

// AllowedExtensions lists the upload types accepted for submissions and
// resumes.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".zip":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

func NewStore(root string, maxSizeMB int64) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{root: root, maxSizeMB: maxSizeMB}, nil
}

// Save validates and writes an upload, returning the stored relative path.
func (s *Store) Save(subdir, fileName string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !AllowedExtensions[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}
	if size > s.maxSizeMB*1024*1024 {
		return "", fmt.Errorf("file exceeds the %dMB limit", s.maxSizeMB)
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	stored := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fileName))
	path := filepath.Join(dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, s.maxSizeMB*1024*1024+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.Join(subdir, stored), nil
}

// Open returns a reader for a previously stored path.
func (s *Store) Open(relPath string) (io.ReadCloser, error) {
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("invalid path")
	}
	return os.Open(filepath.Join(s.root, clean))
}

// Remove deletes a stored file; missing files are not an error.
func (s *Store) Remove(relPath string) error {
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid path")
	}
	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
