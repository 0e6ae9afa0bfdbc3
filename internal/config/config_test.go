package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/swimlog/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	// Always write the file, even if content is empty
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AxisMode != AxisFirst {
		t.Errorf("DefaultConfig().AxisMode = %q, expected %q", cfg.AxisMode, AxisFirst)
	}
	if cfg.ChartFormat != ChartPNG {
		t.Errorf("DefaultConfig().ChartFormat = %q, expected %q", cfg.ChartFormat, ChartPNG)
	}
	if cfg.StrictTimes {
		t.Error("DefaultConfig().StrictTimes = true, expected false")
	}
	if cfg.Theme != "" {
		t.Errorf("DefaultConfig().Theme = %q, expected empty", cfg.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `theme = "nord"
strict_times = true
axis_mode = "longest"
chart_format = "svg"
chart_width = 800
chart_height = 400
chart_title = "Season 2026"`
	tmpFile := createTempConfigFile(t, content)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	expected := Config{
		Theme:       "nord",
		StrictTimes: true,
		AxisMode:    AxisLongest,
		ChartFormat: ChartSVG,
		ChartWidth:  800,
		ChartHeight: 400,
		ChartTitle:  "Season 2026",
	}
	if cfg != expected {
		t.Errorf("Load() = %+v, expected %+v", cfg, expected)
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	tmpFile := createTempConfigFile(t, `strict_times = true`)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	expected := DefaultConfig()
	expected.StrictTimes = true
	if cfg != expected {
		t.Errorf("Load() = %+v, expected defaults merged: %+v", cfg, expected)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, "")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoad_NormalizesValues(t *testing.T) {
	tmpFile := createTempConfigFile(t, `axis_mode = " LONGEST "
chart_format = "SVG"`)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.AxisMode != AxisLongest || cfg.ChartFormat != ChartSVG {
		t.Errorf("Load() did not normalize: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(filepath.Join(tmpDir, "does_not_exist.toml"))
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed TOML", `axis_mode = "first`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `axis_mode = first`},
		{"wrong type", `chart_width = "wide"`},
		{"unclosed brackets", "[section\naxis_mode = \"first\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error message should mention parsing failure, got: %v", err)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name           string
		configContent  string
		errorSubstring string
	}{
		{"unknown axis mode", `axis_mode = "widest"`, "invalid axis_mode"},
		{"unknown chart format", `chart_format = "gif"`, "invalid chart_format"},
		{"chart too narrow", `chart_width = 10`, "invalid chart_width"},
		{"chart too tall", `chart_height = 100000`, "invalid chart_height"},
		{"negative width", `chart_width = -5`, "invalid chart_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatalf("Load() should return error for %s", tt.configContent)
			}
			if !strings.Contains(err.Error(), tt.errorSubstring) {
				t.Errorf("Error should contain %q, got: %v", tt.errorSubstring, err)
			}
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `axis_mode = "first"`)

	if err := os.Chmod(tmpFile, 0000); err != nil {
		t.Skipf("Cannot change file permissions: %v", err)
	}
	defer func() { _ = os.Chmod(tmpFile, 0644) }()

	// Root can read anything
	if f, err := os.Open(tmpFile); err == nil {
		_ = f.Close()
		t.Skip("file still readable (running as root)")
	}

	if _, err := Load(tmpFile); err == nil {
		t.Error("Load() should return error for unreadable file")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(tmpDir, "does_not_exist.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}
}

func TestLoadOrDefault_ExistingValidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `chart_format = "svg"`)

	cfg, err := LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.ChartFormat != ChartSVG {
		t.Errorf("ChartFormat = %q, expected %q", cfg.ChartFormat, ChartSVG)
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `axis_mode = "sideways"`)

	_, err := LoadOrDefault(tmpFile)
	if err == nil {
		t.Fatal("LoadOrDefault() should return error for invalid config file")
	}
	if !strings.Contains(err.Error(), "invalid axis_mode") {
		t.Errorf("Error should mention invalid axis_mode, got: %v", err)
	}
}

func TestNormalize_FillsZeroValues(t *testing.T) {
	cfg := Config{}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config did not validate after Normalize(): %v", err)
	}
	defaults := DefaultConfig()
	if cfg.ChartWidth != defaults.ChartWidth || cfg.ChartHeight != defaults.ChartHeight {
		t.Errorf("sizes = %dx%d, expected %dx%d", cfg.ChartWidth, cfg.ChartHeight, defaults.ChartWidth, defaults.ChartHeight)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "dracula"
	cfg.StrictTimes = true
	cfg.AxisMode = AxisLongest

	content, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() returned error: %v", err)
	}
	if !strings.HasPrefix(content, "# swimlog configuration file") {
		t.Errorf("Encode() missing header: %q", content)
	}

	tmpFile := createTempConfigFile(t, content)
	loaded, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(Encode()) returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("Load(Encode()) = %+v, expected %+v", loaded, cfg)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	expectedStrings := []string{
		"# swimlog configuration file",
		"# theme",
		"# strict_times = false",
		"# axis_mode = \"first\"",
		"longest",
		"# chart_format = \"png\"",
		"# chart_width",
		"# chart_height",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(content, expected) {
			t.Errorf("GenerateSampleConfig() missing expected content: %q", expected)
		}
	}

	// Fully commented out, so it loads as the defaults
	tmpFile := createTempConfigFile(t, content)
	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(sample) = %+v, expected defaults", cfg)
	}
}

func TestGetConfigPath(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn:      os.MkdirAll,
	})

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	expected := filepath.Join(tmpDir, osutil.AppName, ConfigFile)
	if path != expected {
		t.Errorf("GetConfigPath() = %q, expected %q", path, expected)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return "", os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return tmpDir, nil
		},
		mkdirAllFn: func(path string, perm os.FileMode) error {
			return os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
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
