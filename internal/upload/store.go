package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge is returned when an upload exceeds the configured ceiling.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Store persists uploaded images on local disk and serves them back under a
// public URL prefix. File names are random; the original name contributes
// only its extension.
type Store struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

// Config holds configuration for the upload store
type Config struct {
	// Dir is the directory uploads are written to. Created if absent.
	Dir string
	// URLPrefix is the public path prefix, e.g. "/uploads".
	URLPrefix string
	// MaxBytes is the per-file size ceiling.
	MaxBytes int64
}

// NewStore creates the upload directory if needed and returns a store
func NewStore(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:       cfg.Dir,
		urlPrefix: strings.TrimSuffix(cfg.URLPrefix, "/"),
		maxBytes:  cfg.MaxBytes,
	}, nil
}

// Dir returns the directory uploads are written to
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the upload to disk under a generated name and returns its
// public URL path. Returns ErrTooLarge when the content exceeds the ceiling.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	name := uuid.New().String() + sanitizeExt(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	// Read one byte past the limit so an at-limit file is distinguishable
	// from an over-limit one.
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}

	return s.urlPrefix + "/" + name, nil
}

// Remove deletes a previously stored upload given its public URL path.
// Unknown paths are ignored.
func (s *Store) Remove(urlPath string) error {
	name := strings.TrimPrefix(urlPath, s.urlPrefix+"/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeExt keeps a short, harmless extension from the client file name.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
