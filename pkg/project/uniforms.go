package project

import (
	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/viewport"
)

// Uniform names bound by the project shader module.
const (
	UniformCoordinateSystem            = "project_uCoordinateSystem"
	UniformProjectionMode              = "project_uProjectionMode"
	UniformCoordinateOrigin            = "project_uCoordinateOrigin"
	UniformCenter                      = "project_uCenter"
	UniformAntimeridian                = "project_uAntimeridian"
	UniformViewportSize                = "project_uViewportSize"
	UniformDevicePixelRatio            = "project_uDevicePixelRatio"
	UniformFocalDistance               = "project_uFocalDistance"
	UniformCommonUnitsPerMeter         = "project_uCommonUnitsPerMeter"
	UniformCommonUnitsPerWorldUnit     = "project_uCommonUnitsPerWorldUnit"
	UniformCommonUnitsPerWorldUnit2    = "project_uCommonUnitsPerWorldUnit2"
	UniformScale                       = "project_uScale"
	UniformViewProjectionMatrix        = "project_uViewProjectionMatrix"
	UniformInverseViewProjectionMatrix = "project_uInverseViewProjectionMatrix"
	UniformMetersPerPixel              = "project_metersPerPixel"
	UniformCameraPosition              = "project_uCameraPosition"
	UniformWrapLongitude               = "project_uWrapLongitude"
	UniformModelMatrix                 = "project_uModelMatrix"
)

// UniformKeys lists every uniform the full calculation produces.
func UniformKeys() []string {
	return []string{
		UniformCoordinateSystem,
		UniformProjectionMode,
		UniformCoordinateOrigin,
		UniformCenter,
		UniformAntimeridian,
		UniformViewportSize,
		UniformDevicePixelRatio,
		UniformFocalDistance,
		UniformCommonUnitsPerMeter,
		UniformCommonUnitsPerWorldUnit,
		UniformCommonUnitsPerWorldUnit2,
		UniformScale,
		UniformViewProjectionMatrix,
		UniformInverseViewProjectionMatrix,
		UniformMetersPerPixel,
		UniformCameraPosition,
		UniformWrapLongitude,
		UniformModelMatrix,
	}
}

// Uniforms is the shader state for one viewport and coordinate system.
// Values returned by a Calculator are shared with its cache and must be
// treated as read-only.
type Uniforms struct {
	CoordinateSystem CoordinateSystem
	ProjectionMode   viewport.ProjectionMode

	// CoordinateOrigin is the origin positions are expressed against in
	// the shader, already float32-rounded.
	CoordinateOrigin pmath.Vec3
	// Center is the clip-space image of the offset origin, computed in
	// float64. Zero when offset mode is off.
	Center pmath.Vec4

	Antimeridian     float64
	ViewportSize     pmath.Vec2 // device pixels
	DevicePixelRatio float64
	FocalDistance    float64

	CommonUnitsPerMeter      pmath.Vec3
	CommonUnitsPerWorldUnit  pmath.Vec3
	CommonUnitsPerWorldUnit2 pmath.Vec3

	Scale                float64
	ViewProjectionMatrix pmath.Mat4
	// InverseViewProjectionMatrix is nil when ViewProjectionMatrix is
	// singular, which is always the case in offset mode.
	InverseViewProjectionMatrix *pmath.Mat4
	MetersPerPixel              float64
	CameraPosition              pmath.Vec3
	WrapLongitude               bool
	ModelMatrix                 pmath.Mat4

	// OffsetMode reports whether the matrices were recentered.
	OffsetMode bool
	// GeospatialOrigin is the [lng, lat, z] the distance scales were taken
	// at, nil when there is none.
	GeospatialOrigin []float64
	// Simplified marks results of the single-threshold calculation, whose
	// uniform set has no coordinate system, projection mode or wrap flag.
	Simplified bool
}

// Map returns the uniforms keyed by shader name.
func (u *Uniforms) Map() map[string]any {
	m := map[string]any{
		UniformCoordinateOrigin:         u.CoordinateOrigin,
		UniformCenter:                   u.Center,
		UniformAntimeridian:             u.Antimeridian,
		UniformViewportSize:             u.ViewportSize,
		UniformDevicePixelRatio:         u.DevicePixelRatio,
		UniformFocalDistance:            u.FocalDistance,
		UniformCommonUnitsPerMeter:      u.CommonUnitsPerMeter,
		UniformCommonUnitsPerWorldUnit:  u.CommonUnitsPerWorldUnit,
		UniformCommonUnitsPerWorldUnit2: u.CommonUnitsPerWorldUnit2,
		UniformScale:                    u.Scale,
		UniformViewProjectionMatrix:     u.ViewProjectionMatrix,
		UniformMetersPerPixel:           u.MetersPerPixel,
		UniformCameraPosition:           u.CameraPosition,
		UniformModelMatrix:              u.ModelMatrix,
	}
	if u.InverseViewProjectionMatrix != nil {
		m[UniformInverseViewProjectionMatrix] = *u.InverseViewProjectionMatrix
	} else {
		m[UniformInverseViewProjectionMatrix] = nil
	}
	if !u.Simplified {
		m[UniformCoordinateSystem] = int(u.CoordinateSystem)
		m[UniformProjectionMode] = int(u.ProjectionMode)
		m[UniformWrapLongitude] = u.WrapLongitude
	}
	return m
}
