package math

import "math"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// Elements are float64 so that world-space translations at high zoom keep
// their precision on the host; call Float32 when handing a matrix to GL.
type Mat4 [16]float64

// vectorToPoint zeroes the w contribution of a transformed vector, which
// drops every translation applied after it.
var vectorToPoint = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 0,
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// VectorToPoint returns the matrix that keeps x, y, z and drops translation.
func VectorToPoint() Mat4 {
	return vectorToPoint
}

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovY/2.0)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Ortho returns an orthographic projection matrix.
// left, right, bottom, top define the view frustum boundaries.
// near and far define the depth range.
func Ortho(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Translate returns m * Translate(v).
func (m Mat4) Translate(v Vec3) Mat4 {
	return m.Mul(Translate(v[0], v[1], v[2]))
}

// Scale returns m * Scale(v).
func (m Mat4) Scale(v Vec3) Mat4 {
	return m.Mul(Scale(v[0], v[1], v[2]))
}

// MulVec4 multiplies the matrix by a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// TransformVector transforms v and divides every component by the resulting w.
func (m Mat4) TransformVector(v Vec4) Vec4 {
	r := m.MulVec4(v)
	w := r[3]
	return Vec4{r[0] / w, r[1] / w, r[2] / w, 1}
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Float32 converts the matrix for GPU upload.
func (m Mat4) Float32() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Inverse returns the inverse of the matrix.
// ok is false when the matrix is singular; the returned matrix is then zero.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	b00 := m[0]*m[5] - m[1]*m[4]
	b01 := m[0]*m[6] - m[2]*m[4]
	b02 := m[0]*m[7] - m[3]*m[4]
	b03 := m[1]*m[6] - m[2]*m[5]
	b04 := m[1]*m[7] - m[3]*m[5]
	b05 := m[2]*m[7] - m[3]*m[6]
	b06 := m[8]*m[13] - m[9]*m[12]
	b07 := m[8]*m[14] - m[10]*m[12]
	b08 := m[8]*m[15] - m[11]*m[12]
	b09 := m[9]*m[14] - m[10]*m[13]
	b10 := m[9]*m[15] - m[11]*m[13]
	b11 := m[10]*m[15] - m[11]*m[14]

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat4{}, false
	}
	invDet := 1.0 / det

	return Mat4{
		(m[5]*b11 - m[6]*b10 + m[7]*b09) * invDet,
		(m[2]*b10 - m[1]*b11 - m[3]*b09) * invDet,
		(m[13]*b05 - m[14]*b04 + m[15]*b03) * invDet,
		(m[10]*b04 - m[9]*b05 - m[11]*b03) * invDet,
		(m[6]*b08 - m[4]*b11 - m[7]*b07) * invDet,
		(m[0]*b11 - m[2]*b08 + m[3]*b07) * invDet,
		(m[14]*b02 - m[12]*b05 - m[15]*b01) * invDet,
		(m[8]*b05 - m[10]*b02 + m[11]*b01) * invDet,
		(m[4]*b10 - m[5]*b08 + m[7]*b06) * invDet,
		(m[1]*b08 - m[0]*b10 - m[3]*b06) * invDet,
		(m[12]*b04 - m[13]*b02 + m[15]*b00) * invDet,
		(m[9]*b02 - m[8]*b04 - m[11]*b00) * invDet,
		(m[5]*b07 - m[4]*b09 - m[6]*b06) * invDet,
		(m[0]*b09 - m[1]*b07 + m[2]*b06) * invDet,
		(m[13]*b01 - m[12]*b03 - m[14]*b00) * invDet,
		(m[8]*b03 - m[9]*b01 + m[10]*b00) * invDet,
	}, true
}
