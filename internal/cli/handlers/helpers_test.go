package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/swimlog/internal/catalog"
	"github.com/xolan/swimlog/internal/cli"
	"github.com/xolan/swimlog/internal/config"
	"github.com/xolan/swimlog/internal/service"
	"github.com/xolan/swimlog/internal/storage"
)

func newTestDeps(t *testing.T, store storage.Store, configPath string, cfg config.Config) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	services := service.NewServicesWithStore(store, configPath, cfg)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
	}

	return deps, stdout, stderr, &exitCode
}

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	return newTestDeps(t, storage.NewFileStore(tmpDir), filepath.Join(tmpDir, "config.toml"), config.DefaultConfig())
}

// setupTestDepsWithEvents creates deps whose store already holds events
func setupTestDepsWithEvents(t *testing.T, events []catalog.Event) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	store := storage.NewFileStore(tmpDir)
	if err := storage.NewMirror(store).Save(events); err != nil {
		t.Fatal(err)
	}
	return newTestDeps(t, store, filepath.Join(tmpDir, "config.toml"), config.DefaultConfig())
}

// setupBrokenStoreDeps creates deps whose store directory is a regular file (saves fail)
func setupBrokenStoreDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	storeDir := filepath.Join(tmpDir, "data")
	if err := os.WriteFile(storeDir, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}
	return newTestDeps(t, storage.NewFileStore(storeDir), filepath.Join(tmpDir, "config.toml"), config.DefaultConfig())
}

// setupBrokenConfigDeps creates deps with a config path that's a directory (causes errors)
func setupBrokenConfigDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.MkdirAll(configPath, 0755); err != nil {
		t.Fatal(err)
	}
	return newTestDeps(t, storage.NewFileStore(tmpDir), configPath, config.DefaultConfig())
}

// setupNoServicesDeps creates deps as DefaultDeps leaves them when the data
// directory cannot be resolved
func setupNoServicesDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	deps.Services = nil
	deps.ServicesErr = os.ErrPermission
	return deps, stdout, stderr, exitCode
}

// storedEvents reads back what deps persisted
func storedEvents(t *testing.T, deps *cli.Deps) []catalog.Event {
	t.Helper()
	events, err := deps.Services.Catalog.Events()
	if err != nil {
		t.Fatal(err)
	}
	return events
}
