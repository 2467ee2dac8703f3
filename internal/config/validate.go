package config

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"github.com/Faultbox/geoview/internal/logger"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	v := c.Viewport
	if v.Width <= 0 || v.Height <= 0 {
		add("viewport: size must be positive, got %dx%d", v.Width, v.Height)
	}
	if v.Longitude != nil && (*v.Longitude < -180 || *v.Longitude > 180) {
		add("viewport: longitude %v out of range [-180, 180]", *v.Longitude)
	}
	if v.Latitude != nil && (*v.Latitude < -90 || *v.Latitude > 90) {
		add("viewport: latitude %v out of range [-90, 90]", *v.Latitude)
	}
	if (v.Longitude == nil) != (v.Latitude == nil) {
		add("viewport: longitude and latitude must be set together")
	}
	if math.IsNaN(v.Zoom) || math.IsInf(v.Zoom, 0) {
		add("viewport: zoom must be finite")
	}
	if v.Pitch < 0 || v.Pitch >= 90 {
		add("viewport: pitch %v out of range [0, 90)", v.Pitch)
	}
	if v.Altitude <= 0 {
		add("viewport: altitude must be positive, got %v", v.Altitude)
	}
	if v.NearZMultiplier <= 0 || v.FarZMultiplier <= 0 {
		add("viewport: clip multipliers must be positive")
	}
	if v.Orthographic && v.Fovy >= 360 {
		add("viewport: orthographic fovy %v must be below 360", v.Fovy)
	}

	u := c.Uniforms
	if !u.CoordinateSystem.Valid() {
		add("uniforms: unknown coordinate system %d", int(u.CoordinateSystem))
	}
	if u.CoordinateSystem.IsOffsets() && len(u.CoordinateOrigin) < 2 {
		add("uniforms: %s requires coordinate_origin", u.CoordinateSystem)
	}
	if n := len(u.CoordinateOrigin); n != 0 && n != 2 && n != 3 {
		add("uniforms: coordinate_origin needs 2 or 3 values, got %d", n)
	}
	if u.DevicePixelRatio <= 0 {
		add("uniforms: device_pixel_ratio must be positive, got %v", u.DevicePixelRatio)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		add("logging: %v", err)
	}
	switch c.Logging.Format {
	case "", logger.FormatConsole, logger.FormatJSON:
	default:
		add("logging: unknown format %q", c.Logging.Format)
	}

	return result.ErrorOrNil()
}
