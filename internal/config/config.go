// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	DebugBox DebugBoxConfig `yaml:"debug_box"`
	Model    ModelConfig    `yaml:"model"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds the orbit camera and projection settings.
type CameraConfig struct {
	Distance   float32 `yaml:"distance"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// DebugBoxConfig holds the wireframe overlay settings.
type DebugBoxConfig struct {
	Enabled      bool       `yaml:"enabled"`
	LineWidth    float32    `yaml:"line_width"`
	ViewPosition [3]float32 `yaml:"view_position"`
	// ExtentPolicy is "exact" or "legacy".
	ExtentPolicy string `yaml:"extent_policy"`
	// ToggleKey is an SDL key name, e.g. "B" or "F3".
	ToggleKey string `yaml:"toggle_key"`
	// ScreenshotKey is an SDL key name; screenshots go to ScreenshotDir.
	ScreenshotKey string `yaml:"screenshot_key"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ModelConfig describes the animated transform of the demo object.
type ModelConfig struct {
	Scale        [3]float32 `yaml:"scale"`
	Position     [3]float32 `yaml:"position"`
	SpinDegPerS  float32    `yaml:"spin_deg_per_s"`
	PulseAmount  float32    `yaml:"pulse_amount"`
	PulsePeriodS float32    `yaml:"pulse_period_s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Debug Box Viewer",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Distance:   20,
			FOVDegrees: 45,
			Near:       0.1,
			Far:        1000,
		},
		DebugBox: DebugBoxConfig{
			Enabled:       true,
			LineWidth:     4,
			ViewPosition:  [3]float32{0, 0, 20},
			ExtentPolicy:  "exact",
			ToggleKey:     "B",
			ScreenshotKey: "F12",
			ScreenshotDir: "screenshots",
		},
		Model: ModelConfig{
			Scale:        [3]float32{2, 3, 4},
			SpinDegPerS:  30,
			PulseAmount:  0.25,
			PulsePeriodS: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%g, %g] is invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g must be in (0, 180)", c.Camera.FOVDegrees))
	}
	if c.DebugBox.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("debug_box.line_width %g must be positive", c.DebugBox.LineWidth))
	}
	switch c.DebugBox.ExtentPolicy {
	case "", "exact", "legacy":
	default:
		errs = append(errs, fmt.Errorf("debug_box.extent_policy %q must be exact or legacy", c.DebugBox.ExtentPolicy))
	}
	return errors.Join(errs...)
}
