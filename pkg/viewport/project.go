package viewport

import (
	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/mercator"
)

// PixelOption adjusts Project and Unproject.
type PixelOption func(*pixelOptions)

type pixelOptions struct {
	topLeft bool
	targetZ *float64
}

func newPixelOptions(opts []PixelOption) pixelOptions {
	po := pixelOptions{topLeft: true}
	for _, opt := range opts {
		opt(&po)
	}
	return po
}

// BottomLeft measures pixel y from the bottom edge instead of the top.
func BottomLeft() PixelOption {
	return func(po *pixelOptions) {
		po.topLeft = false
	}
}

// AtTargetZ makes Unproject intersect the pixel ray with the plane at z
// meters when the pixel has no depth.
func AtTargetZ(z float64) PixelOption {
	return func(po *pixelOptions) {
		po.targetZ = &z
	}
}

// ProjectFlat maps [lng, lat] to world [x, y] for geospatial viewports. Other
// viewports return a copy of xyz unchanged.
func (v *Viewport) ProjectFlat(xyz []float64) []float64 {
	if v.geospatial {
		x, y := mercator.LngLatToWorld(xyz[0], xyz[1])
		return []float64{x, y}
	}
	return append([]float64(nil), xyz...)
}

// UnprojectFlat is the inverse of ProjectFlat.
func (v *Viewport) UnprojectFlat(xyz []float64) []float64 {
	if v.geospatial {
		lng, lat := mercator.WorldToLngLat(xyz[0], xyz[1])
		return []float64{lng, lat}
	}
	return append([]float64(nil), xyz...)
}

// ProjectPosition maps [lng, lat, z meters] (or [x, y, z] for non-geospatial
// viewports) to common space. A missing z is 0.
func (v *Viewport) ProjectPosition(xyz []float64) pmath.Vec3 {
	flat := v.ProjectFlat(xyz[:2])
	return pmath.Vec3{flat[0], flat[1], elem(xyz, 2) * v.distanceScales.UnitsPerMeter[2]}
}

// UnprojectPosition maps common space back to [lng, lat, z meters].
func (v *Viewport) UnprojectPosition(xyz pmath.Vec3) pmath.Vec3 {
	flat := v.UnprojectFlat(xyz[:2])
	return pmath.Vec3{flat[0], flat[1], xyz[2] * v.distanceScales.MetersPerUnit[2]}
}

// Project converts a position to pixels. The result has three elements when
// xyz does (the third is depth) and two otherwise.
func (v *Viewport) Project(xyz []float64, opts ...PixelOption) []float64 {
	po := newPixelOptions(opts)

	coord := mercator.WorldToPixels(v.ProjectPosition(xyz), v.pixelProjection)
	y := coord[1]
	if !po.topLeft {
		y = v.height - y
	}
	if len(xyz) == 2 {
		return []float64{coord[0], y}
	}
	return []float64{coord[0], y, coord[2]}
}

// Unproject converts pixels back to a position. A finite third element is
// used as depth and the result has three elements. Otherwise the pixel ray
// is intersected with the AtTargetZ plane (z = 0 by default) and the result
// has three elements only when a target z was given.
func (v *Viewport) Unproject(xyz []float64, opts ...PixelOption) ([]float64, error) {
	if !v.invertible {
		return nil, ErrNotInvertible
	}
	po := newPixelOptions(opts)

	x, y := xyz[0], xyz[1]
	if !po.topLeft {
		y = v.height - y
	}
	pixel := []float64{x, y}
	depth := len(xyz) > 2 && isFinite(xyz[2])
	if depth {
		pixel = append(pixel, xyz[2])
	}

	targetZWorld := 0.0
	if po.targetZ != nil {
		targetZWorld = *po.targetZ * v.distanceScales.UnitsPerMeter[2]
	}
	coord := mercator.PixelsToWorld(pixel, v.pixelUnprojection, targetZWorld)
	pos := v.UnprojectPosition(coord)

	switch {
	case depth:
		return pos[:], nil
	case po.targetZ != nil:
		return []float64{pos[0], pos[1], *po.targetZ}, nil
	default:
		return []float64{pos[0], pos[1]}, nil
	}
}

// GetDistanceScales returns high precision Mercator scales at origin
// ([lng, lat]), or the viewport's own scales when origin has fewer than two
// elements. A given origin is always treated as geographic, also on
// non-geospatial viewports.
func (v *Viewport) GetDistanceScales(origin []float64) mercator.DistanceScales {
	if len(origin) < 2 {
		return v.distanceScales
	}
	return mercator.GetDistanceScales(origin[0], origin[1], true)
}

// AddMetersToLngLat offsets lngLatZ by xyz meters. Non-geospatial viewports
// add the offset directly.
func (v *Viewport) AddMetersToLngLat(lngLatZ, xyz []float64) []float64 {
	if v.geospatial {
		return mercator.AddMetersToLngLat(lngLatZ, xyz)
	}
	n := max(len(lngLatZ), len(xyz))
	out := make([]float64, n)
	for i := range out {
		out[i] = elem(lngLatZ, i) + elem(xyz, i)
	}
	return out
}

func elem(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// ContainsPixel reports whether a width x height box at canvas position
// (x, y) intersects the viewport. Non-positive sizes count as 1.
func (v *Viewport) ContainsPixel(x, y, width, height float64) bool {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return x < v.x+v.width &&
		v.x < x+width &&
		y < v.y+v.height &&
		v.y < y+height
}

// unprojectOnFarPlane intersects the far clip plane edge at pixel column x
// with the plane at targetZ meters, for corners that look past the horizon.
func (v *Viewport) unprojectOnFarPlane(x, targetZ float64) []float64 {
	coord0 := v.pixelUnprojection.TransformVector(pmath.Vec4{x, 0, 1, 1})
	coord1 := v.pixelUnprojection.TransformVector(pmath.Vec4{x, v.height, 1, 1})

	z := targetZ * v.distanceScales.UnitsPerMeter[2]
	t := 0.0
	if coord1[2] != coord0[2] {
		t = (z - coord0[2]) / (coord1[2] - coord0[2])
	}
	xy := coord0.XYZ().XY().Lerp(coord1.XYZ().XY(), t)
	lngLat := v.UnprojectFlat(xy[:])
	return []float64{lngLat[0], lngLat[1], targetZ}
}
