// Package config handles geoview configuration loading and management.
package config

import (
	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/pkg/project"
	"github.com/Faultbox/geoview/pkg/viewport"
)

// Config holds all geoview settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Uniforms UniformsConfig `yaml:"uniforms"`
	Shader   ShaderConfig   `yaml:"shader"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig describes the camera.
type ViewportConfig struct {
	// Longitude and Latitude anchor a geospatial viewport. Leave either
	// unset (or null) for a non-geospatial one.
	Longitude *float64 `yaml:"longitude,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty"`

	Zoom     float64 `yaml:"zoom"`
	Pitch    float64 `yaml:"pitch"`
	Bearing  float64 `yaml:"bearing"`
	Altitude float64 `yaml:"altitude"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`

	NearZMultiplier float64 `yaml:"near_z_multiplier"`
	FarZMultiplier  float64 `yaml:"far_z_multiplier"`
	Orthographic    bool    `yaml:"orthographic"`
	Fovy            float64 `yaml:"fovy,omitempty"` // degrees; 0 derives it

	WorldOffset       int     `yaml:"world_offset"`
	Repeat            bool    `yaml:"repeat"`
	ProjectOffsetZoom float64 `yaml:"project_offset_zoom"`
}

// UniformsConfig holds the uniform calculation inputs.
type UniformsConfig struct {
	CoordinateSystem  project.CoordinateSystem `yaml:"coordinate_system"`
	CoordinateOrigin  []float64                `yaml:"coordinate_origin,omitempty"`
	DevicePixelRatio  float64                  `yaml:"device_pixel_ratio"`
	AutoWrapLongitude bool                     `yaml:"auto_wrap_longitude"`
	Simplified        bool                     `yaml:"simplified"`
}

// ShaderConfig holds shader injection settings.
type ShaderConfig struct {
	// Defines are application defines. Absent means the library default.
	Defines  map[string]string `yaml:"defines,omitempty"`
	Vertex   string            `yaml:"vertex,omitempty"`
	Fragment string            `yaml:"fragment,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	lng, lat := -122.4, 37.8
	return &Config{
		Viewport: ViewportConfig{
			Longitude:         &lng,
			Latitude:          &lat,
			Zoom:              12,
			Altitude:          1.5,
			Width:             800,
			Height:            600,
			NearZMultiplier:   0.1,
			FarZMultiplier:    1.01,
			ProjectOffsetZoom: 12,
		},
		Uniforms: UniformsConfig{
			CoordinateSystem: project.CoordinateSystemDefault,
			DevicePixelRatio: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
	}
}

// Options converts the section into viewport options.
func (v ViewportConfig) Options() []viewport.Option {
	opts := []viewport.Option{
		viewport.WithSize(float64(v.Width), float64(v.Height)),
		viewport.WithZoom(v.Zoom),
		viewport.WithPitch(v.Pitch),
		viewport.WithBearing(v.Bearing),
		viewport.WithAltitude(v.Altitude),
		viewport.WithClipMultipliers(v.NearZMultiplier, v.FarZMultiplier),
		viewport.WithOrthographic(v.Orthographic),
		viewport.WithWorldOffset(v.WorldOffset),
		viewport.WithRepeat(v.Repeat),
		viewport.WithProjectOffsetZoom(v.ProjectOffsetZoom),
	}
	if v.Geospatial() {
		opts = append(opts, viewport.WithCenter(*v.Longitude, *v.Latitude))
	}
	if v.Fovy > 0 {
		opts = append(opts, viewport.WithFovy(v.Fovy))
	}
	return opts
}

// Geospatial reports whether both longitude and latitude are set.
func (v ViewportConfig) Geospatial() bool {
	return v.Longitude != nil && v.Latitude != nil
}

// NewViewport builds the configured viewport.
func (c *Config) NewViewport(extra ...viewport.Option) (*viewport.Viewport, error) {
	return viewport.New(append(c.Viewport.Options(), extra...)...)
}

// Options converts the section into calculator options for vp.
func (u UniformsConfig) Options(vp *viewport.Viewport) project.Options {
	opts := project.NewOptions(vp)
	opts.DevicePixelRatio = u.DevicePixelRatio
	opts.CoordinateSystem = u.CoordinateSystem
	opts.CoordinateOrigin = u.CoordinateOrigin
	opts.AutoWrapLongitude = u.AutoWrapLongitude
	opts.Simplified = u.Simplified
	return opts
}

// InitLogger configures the global logger from the section.
func (l LoggingConfig) InitLogger() error {
	opts := logger.Options{
		Level:   l.Level,
		Format:  l.Format,
		Console: true,
	}
	if l.LogFile != "" {
		opts.File = logger.DefaultFileConfig(l.LogFile)
	}
	return logger.InitWithOptions(opts)
}
