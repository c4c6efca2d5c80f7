package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// LocalStore writes images below a base directory served at PublicBaseURL.
type LocalStore struct {
	fs            afero.Fs
	baseDir       string
	publicBaseURL string
}

func NewLocalStore(fs afero.Fs, baseDir, publicBaseURL string) *LocalStore {
	return &LocalStore{fs: fs, baseDir: baseDir, publicBaseURL: publicBaseURL}
}

func (s *LocalStore) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	target := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := s.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, target, data, os.FileMode(0o644)); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.publicBaseURL + "/" + path.Clean(key), nil
}

// Dir is the directory the HTTP layer serves as static files.
func (s *LocalStore) Dir() string {
	return s.baseDir
}
