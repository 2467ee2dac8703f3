package mercator

import (
	"math"

	pmath "github.com/Faultbox/geoview/pkg/math"
)

// ViewMatrixParams describes the camera for GetViewMatrix.
type ViewMatrixParams struct {
	Height   float64 // viewport height in pixels
	Pitch    float64 // degrees
	Bearing  float64 // degrees
	Altitude float64 // in screen heights
	Scale    float64 // 2^zoom

	// Center, when set, is translated to the origin. The viewport leaves it
	// nil and applies the center separately.
	Center *pmath.Vec3
}

// GetViewMatrix builds the camera transform looking down at the map plane
// from Altitude screen heights, rotated by pitch and bearing.
func GetViewMatrix(p ViewMatrixParams) pmath.Mat4 {
	scale := p.Scale / p.Height

	vm := pmath.Translate(0, 0, -p.Altitude).
		Mul(pmath.RotateX(-p.Pitch * degToRad)).
		Mul(pmath.RotateZ(p.Bearing * degToRad)).
		Mul(pmath.Scale(scale, scale, scale))

	if p.Center != nil {
		vm = vm.Translate(p.Center.Negate())
	}
	return vm
}

// ProjectionParams is the input of GetProjectionParameters.
type ProjectionParams struct {
	Width, Height   float64
	Pitch           float64 // degrees
	Altitude        float64
	NearZMultiplier float64
	FarZMultiplier  float64
}

// Projection holds the derived perspective parameters.
type Projection struct {
	Fov           float64 // vertical field of view, radians
	Aspect        float64
	FocalDistance float64
	Near          float64
	Far           float64
}

// GetProjectionParameters derives a field of view and clip planes that keep
// the ground plane in view at the given pitch. The far plane reaches the
// point where the top edge of the screen meets the ground.
func GetProjectionParameters(p ProjectionParams) Projection {
	pitchRadians := p.Pitch * degToRad
	halfFov := math.Atan(0.5 / p.Altitude)

	// Angle between the top frustum edge and the ground, kept away from 0
	// so a camera looking at the horizon still gets a finite far plane.
	groundAngle := math.Min(math.Max(math.Pi/2-pitchRadians-halfFov, 0.01), math.Pi-0.01)
	topHalfSurfaceDistance := math.Sin(halfFov) * p.Altitude / math.Sin(groundAngle)
	farZ := math.Sin(pitchRadians)*topHalfSurfaceDistance + p.Altitude

	return Projection{
		Fov:           2 * halfFov,
		Aspect:        p.Width / p.Height,
		FocalDistance: p.Altitude,
		Near:          p.NearZMultiplier,
		Far:           farZ * p.FarZMultiplier,
	}
}

// WorldToPixels projects a world position through a pixel projection matrix.
func WorldToPixels(xyz pmath.Vec3, pixelProjection pmath.Mat4) pmath.Vec3 {
	return pixelProjection.TransformVector(pmath.Vec4{xyz[0], xyz[1], xyz[2], 1}).XYZ()
}

// PixelsToWorld unprojects a pixel. When xyz carries a finite depth the
// point is transformed directly; otherwise the pixel ray is intersected with
// the plane z = targetZ (world units).
func PixelsToWorld(xyz []float64, pixelUnprojection pmath.Mat4, targetZ float64) pmath.Vec3 {
	x, y := xyz[0], xyz[1]
	if len(xyz) > 2 && !math.IsNaN(xyz[2]) && !math.IsInf(xyz[2], 0) {
		return pixelUnprojection.TransformVector(pmath.Vec4{x, y, xyz[2], 1}).XYZ()
	}

	coord0 := pixelUnprojection.TransformVector(pmath.Vec4{x, y, 0, 1})
	coord1 := pixelUnprojection.TransformVector(pmath.Vec4{x, y, 1, 1})

	z0, z1 := coord0[2], coord1[2]
	t := 0.0
	if z0 != z1 {
		t = (targetZ - z0) / (z1 - z0)
	}
	xy := coord0.XYZ().XY().Lerp(coord1.XYZ().XY(), t)
	return pmath.Vec3{xy[0], xy[1], targetZ}
}
