package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if !cfg.DebugBox.Enabled {
		t.Error("expected debug box to be enabled by default")
	}
	if cfg.DebugBox.LineWidth != 4 {
		t.Errorf("expected line width 4, got %f", cfg.DebugBox.LineWidth)
	}
	if cfg.DebugBox.ViewPosition != [3]float32{0, 0, 20} {
		t.Errorf("expected view position (0, 0, 20), got %v", cfg.DebugBox.ViewPosition)
	}
	if cfg.DebugBox.ExtentPolicy != "exact" {
		t.Errorf("expected exact extent policy, got %s", cfg.DebugBox.ExtentPolicy)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"near plane", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"fov", func(c *Config) { c.Camera.FOVDegrees = 190 }},
		{"line width", func(c *Config) { c.DebugBox.LineWidth = 0 }},
		{"extent policy", func(c *Config) { c.DebugBox.ExtentPolicy = "approx" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "boxviewer.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  distance: 35
  fov_degrees: 60

debug_box:
  enabled: false
  line_width: 2.5
  view_position: [1, 2, 3]
  extent_policy: legacy
  toggle_key: F3

model:
  scale: [1, 1, 1]

logging:
  level: "debug"
  log_file: "boxviewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Camera.Distance != 35 || cfg.Camera.FOVDegrees != 60 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Far != 1000 {
		t.Errorf("expected default far plane, got %f", cfg.Camera.Far)
	}
	if cfg.DebugBox.Enabled {
		t.Error("expected debug box to be disabled")
	}
	if cfg.DebugBox.LineWidth != 2.5 {
		t.Errorf("expected line width 2.5, got %f", cfg.DebugBox.LineWidth)
	}
	if cfg.DebugBox.ViewPosition != [3]float32{1, 2, 3} {
		t.Errorf("expected view position (1, 2, 3), got %v", cfg.DebugBox.ViewPosition)
	}
	if cfg.DebugBox.ExtentPolicy != "legacy" || cfg.DebugBox.ToggleKey != "F3" {
		t.Errorf("unexpected debug box %+v", cfg.DebugBox)
	}
	if cfg.Logging.LogFile != "boxviewer.log" {
		t.Errorf("expected log file 'boxviewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFileRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("debug_box:\n  line_width: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFile(configPath); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/boxviewer.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("boxviewer.yaml", []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find boxviewer.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "hide box flag",
			setup: func() { *flagHideBox = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.DebugBox.Enabled {
					t.Error("expected debug box to be hidden")
				}
			},
			teardown: func() { *flagHideBox = false },
		},
		{
			name:  "legacy extents flag",
			setup: func() { *flagLegacy = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.DebugBox.ExtentPolicy != "legacy" {
					t.Errorf("expected legacy policy, got %s", cfg.DebugBox.ExtentPolicy)
				}
			},
			teardown: func() { *flagLegacy = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "boxviewer.yaml")

	cfg := Default()
	cfg.DebugBox.LineWidth = 7
	cfg.DebugBox.ToggleKey = "F3"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.DebugBox.LineWidth != 7 || loaded.DebugBox.ToggleKey != "F3" {
		t.Errorf("round trip lost debug box settings: %+v", loaded.DebugBox)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxviewer.yaml")
	if err := os.WriteFile(path, []byte("debug_box:\n  line_width: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("debug_box:\n  line_width: 9\n  enabled: false\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case cfg := <-w.Changes:
		if cfg.DebugBox.LineWidth != 9 {
			t.Errorf("expected reloaded line width 9, got %f", cfg.DebugBox.LineWidth)
		}
		if cfg.DebugBox.Enabled {
			t.Error("expected reloaded config to disable the box")
		}
	case err := <-w.Errors:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxviewer.yaml")
	if err := Default().SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Changes; ok {
		t.Error("expected Changes to be closed")
	}
}
