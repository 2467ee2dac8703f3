// Package project computes the uniforms of the project shader module for a
// viewport.
//
// At high zoom, common-space coordinates reach 512 * 2^zoom and float32
// shader arithmetic loses the low bits. Offset mode moves the large
// translation out of the shader: positions are expressed relative to an
// origin near the viewport center, the clip-space image of that origin is
// computed here in float64 (Uniforms.Center) and the view-projection matrix
// handed to the shader carries no translation.
package project

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/logger"
	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/viewport"
)

var (
	// ErrNilViewport is returned when Options has no viewport.
	ErrNilViewport = errors.New("project: viewport is required")

	// ErrMissingCoordinateOrigin is returned for an offsets coordinate
	// system without a coordinate origin.
	ErrMissingCoordinateOrigin = errors.New("project: coordinate origin is required for offset coordinate systems")

	// ErrUnknownCoordinateSystem is returned for undefined coordinate
	// system values and names.
	ErrUnknownCoordinateSystem = errors.New("project: unknown coordinate system")
)

// Options is the input of a uniform calculation.
type Options struct {
	Viewport *viewport.Viewport

	// DevicePixelRatio scales the viewport size. Zero means 1.
	DevicePixelRatio float64
	// ModelMatrix defaults to identity when nil.
	ModelMatrix *pmath.Mat4

	// CoordinateSystem of the positions. The zero value is Cartesian; set
	// CoordinateSystemDefault, or start from NewOptions, to pick by viewport.
	CoordinateSystem CoordinateSystem
	// CoordinateOrigin is [lng, lat] or [lng, lat, z]. Required for the
	// offsets coordinate systems, optional otherwise.
	CoordinateOrigin []float64

	AutoWrapLongitude bool

	// Simplified selects the single-threshold calculation: offset mode is
	// on exactly when the viewport zoom reaches ProjectOffsetZoom.
	//
	// Simplified results carry no project_uCoordinateSystem,
	// project_uProjectionMode or project_uWrapLongitude. The bundled project
	// shader module branches on the projection mode, which then reads as 0
	// (IDENTITY); pair simplified uniforms with a shader that does not
	// depend on those three.
	Simplified bool
	// ProjectOffsetZoom is the Simplified threshold. Nil uses the
	// viewport's own.
	ProjectOffsetZoom *float64
}

// NewOptions returns options for vp with the coordinate system chosen by
// the viewport: LNGLAT when it is geospatial, CARTESIAN otherwise.
func NewOptions(vp *viewport.Viewport) Options {
	return Options{
		Viewport:         vp,
		DevicePixelRatio: 1,
		CoordinateSystem: CoordinateSystemDefault,
	}
}

// resolve fills defaults and validates the options.
func (o Options) resolve() (Options, error) {
	if o.Viewport == nil {
		return o, ErrNilViewport
	}
	if !o.CoordinateSystem.Valid() {
		return o, fmt.Errorf("%w: %d", ErrUnknownCoordinateSystem, int(o.CoordinateSystem))
	}
	if o.CoordinateSystem == CoordinateSystemDefault {
		if o.Viewport.IsGeospatial() {
			o.CoordinateSystem = CoordinateSystemLngLat
		} else {
			o.CoordinateSystem = CoordinateSystemCartesian
		}
	}
	if o.CoordinateSystem.IsOffsets() && len(o.CoordinateOrigin) < 2 {
		return o, fmt.Errorf("%w: %s", ErrMissingCoordinateOrigin, o.CoordinateSystem)
	}
	// Own the slice and matrix so a cached key cannot change under us.
	o.CoordinateOrigin = append([]float64(nil), o.CoordinateOrigin...)
	if o.ModelMatrix != nil {
		m := *o.ModelMatrix
		o.ModelMatrix = &m
	}
	if o.DevicePixelRatio == 0 {
		o.DevicePixelRatio = 1
	}
	zoom := o.Viewport.ProjectOffsetZoom()
	if o.ProjectOffsetZoom != nil {
		zoom = *o.ProjectOffsetZoom
	}
	o.ProjectOffsetZoom = &zoom
	return o, nil
}

// origin returns the coordinate origin as a Vec3, zero when absent.
func (o Options) origin() pmath.Vec3 {
	var v pmath.Vec3
	copy(v[:], o.CoordinateOrigin)
	return v
}

// GetUniforms computes the uniforms without caching.
func GetUniforms(opts Options) (*Uniforms, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return calculate(resolved, logger.Named("project")), nil
}

type offsetOrigin struct {
	geospatial []float64
	shader     pmath.Vec3
	enabled    bool
}

// getOffsetOrigin decides whether offset mode applies and which origin the
// shader and the distance scales use.
func getOffsetOrigin(opts Options) offsetOrigin {
	vp := opts.Viewport
	cs := opts.CoordinateSystem
	coordinateOrigin := opts.origin()

	res := offsetOrigin{shader: coordinateOrigin, enabled: true}
	if cs.IsOffsets() {
		res.geospatial = coordinateOrigin[:]
	} else if vp.IsGeospatial() {
		res.geospatial = []float64{pmath.Fround(vp.Longitude()), pmath.Fround(vp.Latitude()), 0}
	}

	if opts.Simplified {
		res.enabled = vp.Zoom() >= *opts.ProjectOffsetZoom
		if res.geospatial != nil && !cs.IsOffsets() {
			copy(res.shader[:], res.geospatial)
		}
		return res
	}

	switch vp.ProjectionMode() {
	case viewport.ProjectionWebMercator:
		if cs == CoordinateSystemLngLat || cs == CoordinateSystemCartesian {
			res.enabled = false
		}

	case viewport.ProjectionWebMercatorAutoOffset:
		switch cs {
		case CoordinateSystemLngLat:
			copy(res.shader[:], res.geospatial)
		case CoordinateSystemCartesian:
			// Round the common-space center and keep the geospatial origin
			// on exactly that point.
			center := vp.Center()
			res.shader = pmath.Vec3{pmath.Fround(center[0]), pmath.Fround(center[1]), 0}
			geo := vp.UnprojectPosition(res.shader)
			res.geospatial = geo[:]
			res.shader = res.shader.Sub(coordinateOrigin)
		}

	case viewport.ProjectionIdentity:
		res.shader = vp.Position().Fround()

	default:
		res.enabled = false
	}
	return res
}

func calculate(opts Options, log *zap.Logger) *Uniforms {
	vp := opts.Viewport
	origin := getOffsetOrigin(opts)

	viewProjection := vp.ViewProjectionMatrix()
	cameraPosition := vp.CameraPosition()
	var center pmath.Vec4

	if origin.enabled {
		var positionCommon pmath.Vec3
		if origin.geospatial != nil {
			positionCommon = vp.ProjectPosition(origin.geospatial)
		} else {
			positionCommon = vp.ProjectPosition(origin.shader[:])
		}
		cameraPosition = cameraPosition.Sub(positionCommon)
		center = viewProjection.MulVec4(pmath.Vec4{positionCommon[0], positionCommon[1], positionCommon[2], 1})

		// The shader adds Center itself, so the matrix must not translate.
		viewProjection = vp.ProjectionMatrix().
			Mul(vp.ViewMatrixUncentered()).
			Mul(pmath.VectorToPoint())
	}

	scales := vp.DistanceScales()
	focalDistance := vp.FocalDistance()
	if focalDistance == 0 {
		focalDistance = 1
	}
	lng := vp.Longitude()
	if math.IsNaN(lng) {
		lng = 0
	}

	u := &Uniforms{
		CoordinateSystem:        opts.CoordinateSystem,
		ProjectionMode:          vp.ProjectionMode(),
		CoordinateOrigin:        origin.shader,
		Center:                  center,
		Antimeridian:            lng - 180,
		ViewportSize:            pmath.Vec2{vp.Width() * opts.DevicePixelRatio, vp.Height() * opts.DevicePixelRatio},
		DevicePixelRatio:        opts.DevicePixelRatio,
		FocalDistance:           focalDistance,
		CommonUnitsPerMeter:     scales.UnitsPerMeter,
		CommonUnitsPerWorldUnit: scales.UnitsPerMeter,
		Scale:                   vp.Scale(),
		ViewProjectionMatrix:    viewProjection,
		MetersPerPixel:          scales.MetersPerUnit[2] / vp.Scale(),
		CameraPosition:          cameraPosition,
		WrapLongitude:           opts.AutoWrapLongitude,
		ModelMatrix:             pmath.Identity(),
		OffsetMode:              origin.enabled,
		GeospatialOrigin:        origin.geospatial,
		Simplified:              opts.Simplified,
	}
	if opts.ModelMatrix != nil {
		u.ModelMatrix = *opts.ModelMatrix
	}

	if inv, ok := viewProjection.Inverse(); ok {
		u.InverseViewProjectionMatrix = &inv
	} else if !origin.enabled {
		log.Warn("view projection matrix not invertible", zap.String("viewport", vp.ID()))
	}

	if origin.geospatial != nil {
		atOrigin := vp.GetDistanceScales(origin.geospatial)
		switch opts.CoordinateSystem {
		case CoordinateSystemMeterOffsets:
			u.CommonUnitsPerWorldUnit = atOrigin.UnitsPerMeter
			u.CommonUnitsPerWorldUnit2 = atOrigin.UnitsPerMeter2
		case CoordinateSystemLngLat, CoordinateSystemLngLatOffsets:
			u.CommonUnitsPerWorldUnit = atOrigin.UnitsPerDegree
			u.CommonUnitsPerWorldUnit2 = atOrigin.UnitsPerDegree2
		case CoordinateSystemCartesian:
			u.CommonUnitsPerWorldUnit = pmath.Vec3{1, 1, atOrigin.UnitsPerMeter[2]}
			u.CommonUnitsPerWorldUnit2 = pmath.Vec3{0, 0, atOrigin.UnitsPerMeter2[2]}
		}
	}
	return u
}
