package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a keyed string-blob storage. A key that was never written reads
// back as absent, not as an empty blob.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps blobs in process memory. Used in tests and as the default
// when no data directory is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}

	s.mu.RLock()
	value, ok := s.blobs[key]
	s.mu.RUnlock()

	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	if key == "" {
		return fmt.Errorf("blob key is required")
	}

	s.mu.Lock()
	s.blobs[key] = value
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()

	return nil
}

// FileStore maps each key to one file under a base directory. Writes go
// through a temp file plus rename so readers never see a half-written blob.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("blob directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read blob %s: %w", key, err)
	}

	return string(data), true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit blob %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}
	if strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	return filepath.Join(s.dir, key+".json"), nil
}
