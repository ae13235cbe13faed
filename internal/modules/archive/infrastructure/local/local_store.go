package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saransh1220/circle-notify/internal/modules/archive/domain"
)

// LocalStore implements ObjectStore on the local filesystem
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Put writes body to basePath/key and returns the file path.
func (l *LocalStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if key == "" {
		return "", domain.ErrEmptyKey
	}
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	if !strings.HasPrefix(fullPath, filepath.Clean(l.basePath)+string(os.PathSeparator)) {
		return "", fmt.Errorf("key %q escapes archive directory", key)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return fullPath, nil
}
