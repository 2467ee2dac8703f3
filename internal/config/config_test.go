package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"

	"github.com/Faultbox/geoview/pkg/project"
	"github.com/Faultbox/geoview/pkg/viewport"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Viewport.Geospatial() {
		t.Fatal("expected default viewport to be geospatial")
	}
	if *cfg.Viewport.Longitude != -122.4 || *cfg.Viewport.Latitude != 37.8 {
		t.Errorf("expected center (-122.4, 37.8), got (%v, %v)", *cfg.Viewport.Longitude, *cfg.Viewport.Latitude)
	}
	if cfg.Viewport.Zoom != 12 {
		t.Errorf("expected zoom 12, got %v", cfg.Viewport.Zoom)
	}
	if cfg.Viewport.Width != 800 || cfg.Viewport.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.Uniforms.CoordinateSystem != project.CoordinateSystemDefault {
		t.Errorf("expected DEFAULT coordinate system, got %s", cfg.Uniforms.CoordinateSystem)
	}
	if cfg.Uniforms.DevicePixelRatio != 1 {
		t.Errorf("expected device pixel ratio 1, got %v", cfg.Uniforms.DevicePixelRatio)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestDefaultBuildsViewport(t *testing.T) {
	vp, err := Default().NewViewport()
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	if vp.Scale() != 4096 {
		t.Errorf("expected scale 4096, got %v", vp.Scale())
	}
	if vp.ProjectionMode() != viewport.ProjectionWebMercatorAutoOffset {
		t.Errorf("expected auto offset mode, got %s", vp.ProjectionMode())
	}

	u, err := project.GetUniforms(Default().Uniforms.Options(vp))
	if err != nil {
		t.Fatalf("GetUniforms: %v", err)
	}
	if u.CoordinateSystem != project.CoordinateSystemLngLat {
		t.Errorf("expected LNGLAT, got %s", u.CoordinateSystem)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewport:
  longitude: 2.35
  latitude: 48.85
  zoom: 15.5
  pitch: 45
  bearing: -20
  width: 1920
  height: 1080
  repeat: true

uniforms:
  coordinate_system: meter_offsets
  coordinate_origin: [2.35, 48.85]
  device_pixel_ratio: 2

shader:
  defines:
    PROJECT_OFFSET_THRESHOLD: "2048.0"

logging:
  level: "debug"
  format: "json"
  log_file: "geoview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if *cfg.Viewport.Longitude != 2.35 || *cfg.Viewport.Latitude != 48.85 {
		t.Errorf("expected center (2.35, 48.85), got (%v, %v)", *cfg.Viewport.Longitude, *cfg.Viewport.Latitude)
	}
	if cfg.Viewport.Zoom != 15.5 {
		t.Errorf("expected zoom 15.5, got %v", cfg.Viewport.Zoom)
	}
	if cfg.Viewport.Pitch != 45 || cfg.Viewport.Bearing != -20 {
		t.Errorf("expected pitch 45 bearing -20, got %v %v", cfg.Viewport.Pitch, cfg.Viewport.Bearing)
	}
	if cfg.Viewport.Width != 1920 || cfg.Viewport.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if !cfg.Viewport.Repeat {
		t.Error("expected repeat to be true")
	}
	// Untouched keys keep their defaults.
	if cfg.Viewport.Altitude != 1.5 {
		t.Errorf("expected default altitude 1.5, got %v", cfg.Viewport.Altitude)
	}

	if cfg.Uniforms.CoordinateSystem != project.CoordinateSystemMeterOffsets {
		t.Errorf("expected METER_OFFSETS, got %s", cfg.Uniforms.CoordinateSystem)
	}
	if len(cfg.Uniforms.CoordinateOrigin) != 2 {
		t.Errorf("expected 2-element origin, got %v", cfg.Uniforms.CoordinateOrigin)
	}
	if cfg.Uniforms.DevicePixelRatio != 2 {
		t.Errorf("expected dpr 2, got %v", cfg.Uniforms.DevicePixelRatio)
	}
	if cfg.Shader.Defines["PROJECT_OFFSET_THRESHOLD"] != "2048.0" {
		t.Errorf("expected define 2048.0, got %v", cfg.Shader.Defines)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Logging.LogFile != "geoview.log" {
		t.Errorf("expected log file 'geoview.log', got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should be valid: %v", err)
	}
}

func TestLoadFromFileNonGeospatial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "viewport:\n  longitude: null\n  latitude: null\n  zoom: 2\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Viewport.Geospatial() {
		t.Fatal("expected null center to clear the default")
	}

	vp, err := cfg.NewViewport()
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	if vp.IsGeospatial() {
		t.Error("expected non-geospatial viewport")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewport:
  zoom: not a number
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

func TestLoadFromFileUnknownCoordinateSystem(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("uniforms:\n  coordinate_system: globe\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := loadFromFile(Default(), configPath)
	if !errors.Is(err, project.ErrUnknownCoordinateSystem) {
		t.Errorf("expected ErrUnknownCoordinateSystem, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	lat := 95.0
	cfg.Viewport.Latitude = &lat
	cfg.Viewport.Width = 0
	cfg.Viewport.Pitch = 90
	cfg.Uniforms.CoordinateSystem = project.CoordinateSystemLngLatOffsets
	cfg.Uniforms.DevicePixelRatio = 0
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected *multierror.Error, got %T", err)
	}
	if len(merr.Errors) != 6 {
		t.Errorf("expected 6 problems, got %d: %v", len(merr.Errors), err)
	}
	for _, want := range []string{"latitude", "size", "pitch", "coordinate_origin", "device_pixel_ratio", "logging"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q: %v", want, err)
		}
	}
}

func TestValidateOrthographicFovy(t *testing.T) {
	cfg := Default()
	cfg.Viewport.Orthographic = true
	cfg.Viewport.Fovy = 360
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for 360 degree orthographic fovy")
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
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "geoview.yaml")
	if err := os.WriteFile(configPath, []byte("viewport:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find geoview.yaml in current directory")
	}
}

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return flags
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "center flags",
			args: []string{"--lng", "0", "--lat", "-33.9"},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg.Viewport.Longitude != 0 || *cfg.Viewport.Latitude != -33.9 {
					t.Errorf("expected center (0, -33.9), got (%v, %v)", *cfg.Viewport.Longitude, *cfg.Viewport.Latitude)
				}
			},
		},
		{
			name: "zoom zero is an override",
			args: []string{"-z", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewport.Zoom != 0 {
					t.Errorf("expected zoom 0, got %v", cfg.Viewport.Zoom)
				}
			},
		},
		{
			name: "unset flags keep defaults",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewport.Zoom != 12 || cfg.Viewport.Pitch != 0 {
					t.Errorf("expected defaults, got zoom %v pitch %v", cfg.Viewport.Zoom, cfg.Viewport.Pitch)
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"--width", "2560", "--height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewport.Width != 2560 || cfg.Viewport.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
				}
			},
		},
		{
			name: "coordinate system and dpr",
			args: []string{"--coordinate-system", "cartesian", "--dpr", "3"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Uniforms.CoordinateSystem != project.CoordinateSystemCartesian {
					t.Errorf("expected CARTESIAN, got %s", cfg.Uniforms.CoordinateSystem)
				}
				if cfg.Uniforms.DevicePixelRatio != 3 {
					t.Errorf("expected dpr 3, got %v", cfg.Uniforms.DevicePixelRatio)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := parseFlags(t, tt.args...).apply(cfg); err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsInvalidCoordinateSystem(t *testing.T) {
	flags := parseFlags(t, "--coordinate-system", "polar")
	if err := flags.apply(Default()); !errors.Is(err, project.ErrUnknownCoordinateSystem) {
		t.Errorf("expected ErrUnknownCoordinateSystem, got %v", err)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewport:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	flags := parseFlags(t, "--config", configPath, "--width", "1920")

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Viewport.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewport.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Viewport.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewport.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("viewport:\n  pitch: 120\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath, nil); err == nil {
		t.Error("expected invalid config to fail loading")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Uniforms.CoordinateSystem = project.CoordinateSystemLngLatOffsets
	cfg.Uniforms.CoordinateOrigin = []float64{1, 2}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "coordinate_system: LNGLAT_OFFSETS") {
		t.Errorf("expected coordinate system by name, got:\n%s", data)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Uniforms.CoordinateSystem != project.CoordinateSystemLngLatOffsets {
		t.Errorf("expected LNGLAT_OFFSETS after round trip, got %s", loaded.Uniforms.CoordinateSystem)
	}
}
