package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists blobs on the local filesystem under a base directory.
type Store struct {
	baseDir string
}

// New creates the base directory if needed and returns a Store.
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Put writes the blob to disk under a uuid-prefixed, sanitized name and
// returns the path relative to the base directory.
func (s *Store) Put(_ context.Context, hint string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("blob is empty")
	}

	name := fmt.Sprintf("%s_%s", uuid.NewString(), sanitize(hint))
	full := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return name, nil
}

// Open reads a blob previously stored by Put. Paths escaping the base
// directory are rejected.
func (s *Store) Open(_ context.Context, path string) ([]byte, error) {
	clean := filepath.Clean(path)
	if clean != filepath.Base(clean) {
		return nil, fmt.Errorf("invalid blob path %q", path)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func sanitize(hint string) string {
	hint = strings.TrimSpace(strings.ToLower(hint))
	if hint == "" {
		return "blob"
	}
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
