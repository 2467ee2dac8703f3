package config

import (
	"github.com/spf13/pflag"

	"github.com/Faultbox/geoview/pkg/project"
)

// Flags holds command-line overrides. Only flags the user actually set
// override the file.
type Flags struct {
	fs *pflag.FlagSet

	config           string
	debug            bool
	longitude        float64
	latitude         float64
	zoom             float64
	pitch            float64
	bearing          float64
	width            int
	height           int
	orthographic     bool
	repeat           bool
	coordinateSystem string
	devicePixelRatio float64
	logLevel         string
	logFile          string
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.config, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.longitude, "lng", 0, "Viewport center longitude")
	fs.Float64Var(&f.latitude, "lat", 0, "Viewport center latitude")
	fs.Float64VarP(&f.zoom, "zoom", "z", 0, "Zoom level")
	fs.Float64Var(&f.pitch, "pitch", 0, "Camera pitch in degrees")
	fs.Float64Var(&f.bearing, "bearing", 0, "Map bearing in degrees")
	fs.IntVar(&f.width, "width", 0, "Viewport width in pixels")
	fs.IntVar(&f.height, "height", 0, "Viewport height in pixels")
	fs.BoolVar(&f.orthographic, "orthographic", false, "Use an orthographic projection")
	fs.BoolVar(&f.repeat, "repeat", false, "Wrap around the antimeridian")
	fs.StringVar(&f.coordinateSystem, "coordinate-system", "", "DEFAULT, CARTESIAN, LNGLAT, METER_OFFSETS or LNGLAT_OFFSETS")
	fs.Float64Var(&f.devicePixelRatio, "dpr", 0, "Device pixel ratio")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "Also log to this file")
	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.config
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("lng") {
		lng := f.longitude
		cfg.Viewport.Longitude = &lng
	}
	if f.changed("lat") {
		lat := f.latitude
		cfg.Viewport.Latitude = &lat
	}
	if f.changed("zoom") {
		cfg.Viewport.Zoom = f.zoom
	}
	if f.changed("pitch") {
		cfg.Viewport.Pitch = f.pitch
	}
	if f.changed("bearing") {
		cfg.Viewport.Bearing = f.bearing
	}
	if f.width > 0 {
		cfg.Viewport.Width = f.width
	}
	if f.height > 0 {
		cfg.Viewport.Height = f.height
	}
	if f.changed("orthographic") {
		cfg.Viewport.Orthographic = f.orthographic
	}
	if f.changed("repeat") {
		cfg.Viewport.Repeat = f.repeat
	}
	if f.changed("coordinate-system") {
		cs, err := project.ParseCoordinateSystem(f.coordinateSystem)
		if err != nil {
			return err
		}
		cfg.Uniforms.CoordinateSystem = cs
	}
	if f.devicePixelRatio > 0 {
		cfg.Uniforms.DevicePixelRatio = f.devicePixelRatio
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Logging.LogFile = f.logFile
	}
	return nil
}
