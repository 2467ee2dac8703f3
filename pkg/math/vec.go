// Package math provides the float64 vector and matrix types used by the
// projection packages.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 [2]float64

// Vec3 is a 3D vector.
type Vec3 [3]float64

// Vec4 is a 4-component vector.
type Vec4 [4]float64

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v[0] + other[0], v[1] + other[1]}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v[0] - other[0], v[1] - other[1]}
}

// Lerp interpolates between v and other by t.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{v[0] + t*(other[0]-v[0]), v[1] + t*(other[1]-v[1])}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v[0] * other[0], v[1] * other[1], v[2] * other[2]}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2]
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v[1]*other[2] - v[2]*other[1],
		v[2]*other[0] - v[0]*other[2],
		v[0]*other[1] - v[1]*other[0],
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// XY returns the first two components.
func (v Vec3) XY() Vec2 {
	return Vec2{v[0], v[1]}
}

// Fround rounds every component to float32 precision.
func (v Vec3) Fround() Vec3 {
	return Vec3{Fround(v[0]), Fround(v[1]), Fround(v[2])}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Fround rounds x to the nearest float32 and widens it back.
func Fround(x float64) float64 {
	return float64(float32(x))
}
