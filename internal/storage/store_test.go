package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/swimlog/internal/osutil"
)

// Helper to check if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Helper to read file content
func readFileContent(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func TestFileStore_GetMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	value, ok, err := s.Get("events")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok || value != nil {
		t.Errorf("Get on empty store = (%q, %v), expected (nil, false)", value, ok)
	}
}

func TestFileStore_PutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	if err := s.Put("events", []byte(`[]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Put("events", []byte(`[{"name":"50 free","times":[]}]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	value, ok, err := s.Get("events")
	if err != nil || !ok {
		t.Fatalf("Get = (%q, %v, %v)", value, ok, err)
	}
	if string(value) != `[{"name":"50 free","times":[]}]` {
		t.Errorf("Get = %q", value)
	}

	path := filepath.Join(dir, "events.json")
	if !fileExists(path) {
		t.Errorf("expected %s to exist", path)
	}
	if fileExists(path + ".tmp") {
		t.Error("temp file left behind")
	}
	if got := readFileContent(t, BackupPath(path, 1)); got != `[]` {
		t.Errorf("backup content = %q, expected previous value", got)
	}
}

func TestFileStore_InvalidKey(t *testing.T) {
	s := NewFileStore(t.TempDir())

	for _, key := range []string{"", "../events", `a\b`, ".", ".."} {
		if err := s.Put(key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Put(%q) error = %v, expected ErrInvalidKey", key, err)
		}
		if _, _, err := s.Get(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Get(%q) error = %v, expected ErrInvalidKey", key, err)
		}
	}
}

func TestFileStore_GetUnreadable(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	// A directory where the value file should be
	if err := os.Mkdir(filepath.Join(dir, "events.json"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.Get("events"); err == nil {
		t.Error("expected error reading a directory")
	}
	if err := s.Put("events", []byte("[]")); err == nil {
		t.Error("expected error writing over a directory")
	}
}

func TestDefaultFileStore(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn:      os.MkdirAll,
	})

	s, err := DefaultFileStore()
	if err != nil {
		t.Fatalf("DefaultFileStore returned error: %v", err)
	}
	if s.Dir != filepath.Join(tmpDir, osutil.AppName) {
		t.Errorf("Dir = %q", s.Dir)
	}

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})
	if _, err := DefaultFileStore(); err == nil {
		t.Error("expected error when the config dir is unavailable")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, _ := s.Get("events"); ok {
		t.Error("empty store reported a value")
	}

	value := []byte("abc")
	if err := s.Put("events", value); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	value[0] = 'x'

	got, ok, err := s.Get("events")
	if err != nil || !ok || string(got) != "abc" {
		t.Errorf("Get = (%q, %v, %v), expected (abc, true, nil)", got, ok, err)
	}

	got[1] = 'y'
	again, _, _ := s.Get("events")
	if string(again) != "abc" {
		t.Errorf("stored value changed through returned slice: %q", again)
	}

	if err := s.Put("", nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Put(\"\") error = %v, expected ErrInvalidKey", err)
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}
