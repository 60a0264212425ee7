// Package assets resolves attachment keys from the content file to bytes,
// either from a local directory or from an S3-compatible bucket.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"recruit/pkg/platform/sentinel"
)

// Source opens static assets by key. Keys are slash-separated relative paths
// such as "academy/welcome.jpg". Missing keys return sentinel.ErrNotFound.
type Source interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CleanKey validates a key and strips a leading slash.
func CleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || !fs.ValidPath(key) {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return key, nil
}

// DirSource reads assets from a directory on disk.
type DirSource struct {
	root fs.FS
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{root: os.DirFS(dir)}
}

// NewFSSource serves assets from any fs.FS, e.g. an embed.FS or fstest.MapFS.
func NewFSSource(fsys fs.FS) *DirSource {
	return &DirSource{root: fsys}
}

func (s *DirSource) Open(_ context.Context, key string) (io.ReadCloser, error) {
	clean, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	f, err := s.root.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("asset %s: %w", clean, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("open asset %s: %w", clean, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat asset %s: %w", clean, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("asset %s is a directory: %w", clean, sentinel.ErrNotFound)
	}
	return f, nil
}

// FileName is the base name shown to the recipient for a key.
func FileName(key string) string {
	return path.Base(key)
}
