// Package viewport implements a Web Mercator camera: it turns a map center,
// zoom, pitch and bearing into view and projection matrices and converts
// positions between geographic, world ("common space") and pixel
// coordinates.
//
// A Viewport is immutable once New returns. All of its methods are safe for
// concurrent use.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/logger"
	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/memo"
	"github.com/Faultbox/geoview/pkg/mercator"
)

const degToRad = math.Pi / 180

var (
	// ErrInvalidFieldOfView is returned for an orthographic viewport whose
	// vertical field of view is 360 degrees or more.
	ErrInvalidFieldOfView = errors.New("viewport: orthographic field of view must be below 360 degrees")

	// ErrNotInvertible is returned by operations that need the pixel
	// unprojection matrix when the pixel projection matrix is singular.
	ErrNotInvertible = errors.New("viewport: pixel projection matrix is not invertible")

	// ErrNotGeospatial is returned by operations that only make sense for a
	// viewport anchored at a longitude and latitude.
	ErrNotGeospatial = errors.New("viewport: viewport is not geospatial")
)

// ProjectionMode tells shaders how positions reach common space.
type ProjectionMode int

const (
	ProjectionIdentity              ProjectionMode = 0
	ProjectionWebMercator           ProjectionMode = 1
	ProjectionGlobe                 ProjectionMode = 2
	ProjectionWebMercatorAutoOffset ProjectionMode = 4
)

func (m ProjectionMode) String() string {
	switch m {
	case ProjectionIdentity:
		return "IDENTITY"
	case ProjectionWebMercator:
		return "WEB_MERCATOR"
	case ProjectionGlobe:
		return "GLOBE"
	case ProjectionWebMercatorAutoOffset:
		return "WEB_MERCATOR_AUTO_OFFSET"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", int(m))
	}
}

// Viewport is a fully derived camera.
type Viewport struct {
	opts options

	id            string
	x, y          float64
	width, height float64

	longitude, latitude float64
	zoom                float64
	pitch, bearing      float64
	altitude            float64
	scale               float64
	fovy                float64 // radians
	focalDistance       float64
	orthographic        bool
	geospatial          bool
	projectOffsetZoom   float64
	worldOffset         int

	distanceScales mercator.DistanceScales
	position       pmath.Vec3
	modelMatrix    *pmath.Mat4
	center         pmath.Vec3

	viewMatrixUncentered pmath.Mat4
	viewMatrix           pmath.Mat4
	viewMatrixInverse    pmath.Mat4
	projectionMatrix     pmath.Mat4
	viewProjectionMatrix pmath.Mat4
	viewportMatrix       pmath.Mat4
	pixelProjection      pmath.Mat4
	pixelUnprojection    pmath.Mat4
	invertible           bool
	cameraPosition       pmath.Vec3

	frustum      memo.Lazy[pmath.FrustumPlanes]
	subViewports memo.Lazy[[]*Viewport]
}

// New derives a viewport from the given options.
func New(opts ...Option) (*Viewport, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return build(o)
}

func build(o options) (*Viewport, error) {
	v := &Viewport{
		opts:              o,
		id:                o.id,
		x:                 o.x,
		y:                 o.y,
		width:             o.width,
		height:            o.height,
		longitude:         o.longitude,
		latitude:          o.latitude,
		pitch:             o.pitch,
		bearing:           o.bearing,
		orthographic:      o.orthographic,
		projectOffsetZoom: o.projectOffsetZoom,
		worldOffset:       o.worldOffset,
	}
	if v.width == 0 {
		v.width = 1
	}
	if v.height == 0 {
		v.height = 1
	}
	v.geospatial = isFinite(v.longitude) && isFinite(v.latitude)

	v.zoom = o.zoom
	if math.IsNaN(v.zoom) {
		if v.geospatial {
			v.zoom = mercator.GetMeterZoom(v.latitude) + math.Log2(focalDistanceFor(o))
		} else {
			v.zoom = 0
		}
	}
	v.scale = mercator.ZoomToScale(v.zoom)
	v.altitude = math.Max(0.75, o.altitude)

	proj := mercator.GetProjectionParameters(mercator.ProjectionParams{
		Width:           v.width,
		Height:          v.height,
		Pitch:           v.pitch,
		Altitude:        v.altitude,
		NearZMultiplier: o.nearZMultiplier,
		FarZMultiplier:  o.farZMultiplier,
	})
	v.fovy = proj.Fov
	if o.fovy > 0 {
		v.fovy = o.fovy * degToRad
	}
	v.focalDistance = 1
	if v.orthographic {
		v.focalDistance = proj.FocalDistance
	}

	v.viewMatrixUncentered = mercator.GetViewMatrix(mercator.ViewMatrixParams{
		Height:   v.height,
		Pitch:    v.pitch,
		Bearing:  v.bearing,
		Altitude: v.altitude,
		Scale:    v.scale,
	})
	if v.worldOffset != 0 {
		shift := float64(mercator.TileSize * v.worldOffset)
		v.viewMatrixUncentered = v.viewMatrixUncentered.Mul(pmath.Translate(shift, 0, 0))
	}

	switch {
	case v.geospatial:
		v.distanceScales = mercator.GetDistanceScales(v.longitude, v.latitude, false)
	case o.distanceScales != nil:
		v.distanceScales = *o.distanceScales
	default:
		v.distanceScales = mercator.IdentityDistanceScales()
	}

	var meterOffset pmath.Vec3
	if o.position != nil {
		v.position = *o.position
		meterOffset = v.position
		if o.modelMatrix != nil {
			m := *o.modelMatrix
			v.modelMatrix = &m
			meterOffset = m.TransformPoint(v.position)
		}
	}

	if v.geospatial {
		v.center = v.ProjectPosition([]float64{v.longitude, v.latitude, 0}).
			Add(meterOffset.Mul(v.distanceScales.UnitsPerMeter))
	} else {
		v.center = v.ProjectPosition(meterOffset[:])
	}
	v.viewMatrix = v.viewMatrixUncentered.Translate(v.center.Negate())

	switch {
	case o.projectionMatrix != nil:
		v.projectionMatrix = *o.projectionMatrix
	case v.orthographic:
		if v.fovy >= 2*math.Pi {
			return nil, fmt.Errorf("%w: fovy %.2f degrees", ErrInvalidFieldOfView, v.fovy/degToRad)
		}
		top := v.focalDistance * math.Tan(v.fovy/2)
		right := top * proj.Aspect
		v.projectionMatrix = pmath.Ortho(-right, right, -top, top, proj.Near, proj.Far)
	default:
		v.projectionMatrix = pmath.Perspective(v.fovy, proj.Aspect, proj.Near, proj.Far)
	}

	v.initPixelMatrices()
	return v, nil
}

func (v *Viewport) initPixelMatrices() {
	if inv, ok := v.viewMatrix.Inverse(); ok {
		v.viewMatrixInverse = inv
	} else {
		v.viewMatrixInverse = v.viewMatrix
	}
	v.cameraPosition = v.viewMatrixInverse.Translation()

	v.viewProjectionMatrix = v.projectionMatrix.Mul(v.viewMatrix)

	// Clip space to pixels, y down.
	v.viewportMatrix = pmath.Scale(v.width/2, -v.height/2, 1).Mul(pmath.Translate(1, -1, 0))
	v.pixelProjection = v.viewportMatrix.Mul(v.viewProjectionMatrix)

	v.pixelUnprojection, v.invertible = v.pixelProjection.Inverse()
	if !v.invertible {
		logger.Named("viewport").Warn("pixel projection matrix not invertible",
			zap.String("id", v.id),
			zap.Float64("width", v.width),
			zap.Float64("height", v.height),
			zap.Float64("zoom", v.zoom),
		)
	}
}

// focalDistanceFor mirrors the focal distance New derives, for callers that
// need it before the projection parameters exist.
func focalDistanceFor(o options) float64 {
	if o.orthographic {
		return math.Max(0.75, o.altitude)
	}
	return 1
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ID returns the viewport name.
func (v *Viewport) ID() string { return v.id }

// X returns the left edge of the viewport on the canvas.
func (v *Viewport) X() float64 { return v.x }

// Y returns the top edge of the viewport on the canvas.
func (v *Viewport) Y() float64 { return v.y }

// Width returns the viewport width in pixels.
func (v *Viewport) Width() float64 { return v.width }

// Height returns the viewport height in pixels.
func (v *Viewport) Height() float64 { return v.height }

// Longitude returns the anchor longitude, NaN if not geospatial.
func (v *Viewport) Longitude() float64 { return v.longitude }

// Latitude returns the anchor latitude, NaN if not geospatial.
func (v *Viewport) Latitude() float64 { return v.latitude }

func (v *Viewport) Zoom() float64     { return v.zoom }
func (v *Viewport) Pitch() float64    { return v.pitch }
func (v *Viewport) Bearing() float64  { return v.bearing }
func (v *Viewport) Altitude() float64 { return v.altitude }

// Scale returns 2^zoom.
func (v *Viewport) Scale() float64 { return v.scale }

// Fovy returns the vertical field of view in radians.
func (v *Viewport) Fovy() float64 { return v.fovy }

// FocalDistance is the altitude for orthographic viewports and 1 otherwise.
func (v *Viewport) FocalDistance() float64 { return v.focalDistance }

func (v *Viewport) Orthographic() bool { return v.orthographic }

// IsGeospatial reports whether the viewport is anchored at a finite
// longitude and latitude.
func (v *Viewport) IsGeospatial() bool { return v.geospatial }

func (v *Viewport) ProjectOffsetZoom() float64 { return v.projectOffsetZoom }
func (v *Viewport) WorldOffset() int           { return v.worldOffset }

// Center returns the anchor in common space.
func (v *Viewport) Center() pmath.Vec3 { return v.center }

// Position returns the meter offset passed to WithPosition.
func (v *Viewport) Position() pmath.Vec3 { return v.position }

// ModelMatrix returns the model matrix passed to WithPosition, if any.
func (v *Viewport) ModelMatrix() (pmath.Mat4, bool) {
	if v.modelMatrix == nil {
		return pmath.Identity(), false
	}
	return *v.modelMatrix, true
}

// DistanceScales returns the scales at the anchor.
func (v *Viewport) DistanceScales() mercator.DistanceScales { return v.distanceScales }

func (v *Viewport) ViewMatrix() pmath.Mat4           { return v.viewMatrix }
func (v *Viewport) ViewMatrixUncentered() pmath.Mat4 { return v.viewMatrixUncentered }
func (v *Viewport) ViewMatrixInverse() pmath.Mat4    { return v.viewMatrixInverse }
func (v *Viewport) ProjectionMatrix() pmath.Mat4     { return v.projectionMatrix }
func (v *Viewport) ViewProjectionMatrix() pmath.Mat4 { return v.viewProjectionMatrix }

// ViewportMatrix maps clip space to pixels.
func (v *Viewport) ViewportMatrix() pmath.Mat4 { return v.viewportMatrix }

// PixelProjectionMatrix maps common space to pixels.
func (v *Viewport) PixelProjectionMatrix() pmath.Mat4 { return v.pixelProjection }

// PixelUnprojectionMatrix maps pixels back to common space. ok is false
// when the pixel projection matrix is singular.
func (v *Viewport) PixelUnprojectionMatrix() (m pmath.Mat4, ok bool) {
	return v.pixelUnprojection, v.invertible
}

// CameraPosition returns the camera location in common space.
func (v *Viewport) CameraPosition() pmath.Vec3 { return v.cameraPosition }

// MetersPerPixel returns ground meters covered by one pixel at the anchor.
func (v *Viewport) MetersPerPixel() float64 {
	return v.distanceScales.MetersPerUnit[2] / v.scale
}

// ProjectionMode selects the shader projection for this viewport.
func (v *Viewport) ProjectionMode() ProjectionMode {
	switch {
	case !v.geospatial:
		return ProjectionIdentity
	case v.zoom < v.projectOffsetZoom:
		return ProjectionWebMercator
	default:
		return ProjectionWebMercatorAutoOffset
	}
}

// Equal reports whether both viewports have the same size, scale and
// matrices. Other parameters do not participate.
func (v *Viewport) Equal(other *Viewport) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	return v.width == other.width &&
		v.height == other.height &&
		v.scale == other.scale &&
		v.projectionMatrix.Equal(other.projectionMatrix) &&
		v.viewMatrix.Equal(other.viewMatrix)
}
