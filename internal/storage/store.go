package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xolan/swimlog/internal/osutil"
)

// ErrInvalidKey is returned for keys that cannot name a single entry.
var ErrInvalidKey = errors.New("invalid storage key")

// Store is a string-keyed blob store. Each key holds one value that is
// always written whole.
type Store interface {
	// Get returns the value for key. ok is false when the key has never been
	// written.
	Get(key string) (value []byte, ok bool, err error)
	// Put replaces the value for key.
	Put(key string, value []byte) error
}

// FileStore keeps one file per key inside Dir.
// Every overwrite first rotates the previous value into numbered backups.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// DefaultFileStore returns a FileStore in the swimlog config directory.
// Uses os.UserConfigDir() through osutil, creating the directory if needed.
func DefaultFileStore() (*FileStore, error) {
	dir, err := osutil.AppDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(dir), nil
}

// Path returns the file that backs key.
func (s *FileStore) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

// Get reads the file for key. A missing file is reported as ok=false.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Put backs up the current file for key and replaces it using an atomic
// write (temp file, then rename).
func (s *FileStore) Put(key string, value []byte) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := CreateBackup(path); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}

	return writeFileAtomic(path, value)
}

func writeFileAtomic(path string, value []byte) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// MemoryStore is an in-process Store, used by tests and dry runs.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores a copy of value.
func (s *MemoryStore) Put(key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}
