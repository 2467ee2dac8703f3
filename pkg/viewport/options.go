package viewport

import (
	"math"

	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/mercator"
)

// Option configures a Viewport during construction.
//
// Example:
//
//	vp, err := viewport.New(
//		viewport.WithCenter(-122.4, 37.8),
//		viewport.WithZoom(12),
//		viewport.WithSize(800, 600),
//	)
type Option func(*options)

type options struct {
	id     string
	x, y   float64
	width  float64
	height float64

	longitude float64
	latitude  float64
	zoom      float64
	pitch     float64
	bearing   float64
	altitude  float64

	nearZMultiplier float64
	farZMultiplier  float64
	orthographic    bool
	fovy            float64 // degrees; 0 derives it from altitude

	projectionMatrix *pmath.Mat4
	distanceScales   *mercator.DistanceScales
	position         *pmath.Vec3
	modelMatrix      *pmath.Mat4

	worldOffset       int
	projectOffsetZoom float64
	repeat            bool
}

func defaultOptions() options {
	return options{
		id:                "viewport",
		width:             1,
		height:            1,
		longitude:         math.NaN(),
		latitude:          math.NaN(),
		zoom:              11,
		altitude:          mercator.DefaultAltitude,
		nearZMultiplier:   0.1,
		farZMultiplier:    1.01,
		projectOffsetZoom: 12,
	}
}

// WithID names the viewport.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithSize sets the viewport size in pixels. Zero values become 1 so
// headless callers can construct measurement-only viewports.
func WithSize(width, height float64) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithScreenOffset places the viewport's top-left corner on the canvas.
// Only ContainsPixel uses it.
func WithScreenOffset(x, y float64) Option {
	return func(o *options) {
		o.x = x
		o.y = y
	}
}

// WithCenter anchors the viewport at a geographic location, making it
// geospatial. Non-finite values leave the viewport non-geospatial.
func WithCenter(longitude, latitude float64) Option {
	return func(o *options) {
		o.longitude = longitude
		o.latitude = latitude
	}
}

// WithZoom sets the zoom level. NaN derives it from the meter zoom at the
// anchor latitude (0 for non-geospatial viewports).
func WithZoom(zoom float64) Option {
	return func(o *options) {
		o.zoom = zoom
	}
}

// WithPitch sets the camera pitch in degrees.
func WithPitch(pitch float64) Option {
	return func(o *options) {
		o.pitch = pitch
	}
}

// WithBearing sets the map rotation in degrees.
func WithBearing(bearing float64) Option {
	return func(o *options) {
		o.bearing = bearing
	}
}

// WithAltitude sets the camera altitude in screen heights (minimum 0.75).
func WithAltitude(altitude float64) Option {
	return func(o *options) {
		o.altitude = altitude
	}
}

// WithClipMultipliers scales the derived near and far planes.
func WithClipMultipliers(near, far float64) Option {
	return func(o *options) {
		o.nearZMultiplier = near
		o.farZMultiplier = far
	}
}

// WithOrthographic switches to an orthographic projection.
func WithOrthographic(orthographic bool) Option {
	return func(o *options) {
		o.orthographic = orthographic
	}
}

// WithFovy overrides the derived vertical field of view, in degrees.
func WithFovy(degrees float64) Option {
	return func(o *options) {
		o.fovy = degrees
	}
}

// WithProjectionMatrix replaces the derived projection matrix.
func WithProjectionMatrix(m pmath.Mat4) Option {
	return func(o *options) {
		o.projectionMatrix = &m
	}
}

// WithDistanceScales supplies scales for a non-geospatial viewport.
// Geospatial viewports always compute their own.
func WithDistanceScales(s mercator.DistanceScales) Option {
	return func(o *options) {
		o.distanceScales = &s
	}
}

// WithPosition offsets the anchor by a position in meters. When modelMatrix
// is non-nil the position is transformed by it first.
func WithPosition(position pmath.Vec3, modelMatrix *pmath.Mat4) Option {
	return func(o *options) {
		o.position = &position
		if modelMatrix != nil {
			m := *modelMatrix
			o.modelMatrix = &m
		}
	}
}

// WithWorldOffset selects the copy of the world shifted by offset*512 units.
func WithWorldOffset(offset int) Option {
	return func(o *options) {
		o.worldOffset = offset
	}
}

// WithProjectOffsetZoom sets the zoom at which offset projection starts.
func WithProjectOffsetZoom(zoom float64) Option {
	return func(o *options) {
		o.projectOffsetZoom = zoom
	}
}

// WithRepeat enables SubViewports for antimeridian wrapping.
func WithRepeat(repeat bool) Option {
	return func(o *options) {
		o.repeat = repeat
	}
}
