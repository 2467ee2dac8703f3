package project

import pmath "github.com/Faultbox/geoview/pkg/math"

// UniformType is the GLSL type of a uniform.
type UniformType string

const (
	TypeInt   UniformType = "int"
	TypeBool  UniformType = "bool"
	TypeFloat UniformType = "float"
	TypeVec2  UniformType = "vec2"
	TypeVec3  UniformType = "vec3"
	TypeVec4  UniformType = "vec4"
	TypeMat4  UniformType = "mat4"
)

// Value is one uniform narrowed to the float32 data a GL upload takes.
// Int and bool uniforms carry their value in Data[0].
type Value struct {
	Name string
	Type UniformType
	Data []float32
}

// Values returns the uniforms ready for upload, in UniformKeys order. An
// absent inverse view-projection matrix is skipped, and so are the fields
// a simplified result does not define.
func (u *Uniforms) Values() []Value {
	vec := func(v ...float64) []float32 {
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out
	}
	mat := func(m pmath.Mat4) []float32 {
		f := m.Float32()
		return f[:]
	}
	boolean := func(b bool) []float32 {
		if b {
			return []float32{1}
		}
		return []float32{0}
	}

	var values []Value
	if !u.Simplified {
		values = append(values,
			Value{UniformCoordinateSystem, TypeInt, vec(float64(u.CoordinateSystem))},
			Value{UniformProjectionMode, TypeInt, vec(float64(u.ProjectionMode))},
		)
	}
	values = append(values,
		Value{UniformCoordinateOrigin, TypeVec3, vec(u.CoordinateOrigin[:]...)},
		Value{UniformCenter, TypeVec4, vec(u.Center[:]...)},
		Value{UniformAntimeridian, TypeFloat, vec(u.Antimeridian)},
		Value{UniformViewportSize, TypeVec2, vec(u.ViewportSize[:]...)},
		Value{UniformDevicePixelRatio, TypeFloat, vec(u.DevicePixelRatio)},
		Value{UniformFocalDistance, TypeFloat, vec(u.FocalDistance)},
		Value{UniformCommonUnitsPerMeter, TypeVec3, vec(u.CommonUnitsPerMeter[:]...)},
		Value{UniformCommonUnitsPerWorldUnit, TypeVec3, vec(u.CommonUnitsPerWorldUnit[:]...)},
		Value{UniformCommonUnitsPerWorldUnit2, TypeVec3, vec(u.CommonUnitsPerWorldUnit2[:]...)},
		Value{UniformScale, TypeFloat, vec(u.Scale)},
		Value{UniformViewProjectionMatrix, TypeMat4, mat(u.ViewProjectionMatrix)},
	)
	if u.InverseViewProjectionMatrix != nil {
		values = append(values, Value{UniformInverseViewProjectionMatrix, TypeMat4, mat(*u.InverseViewProjectionMatrix)})
	}
	values = append(values,
		Value{UniformMetersPerPixel, TypeFloat, vec(u.MetersPerPixel)},
		Value{UniformCameraPosition, TypeVec3, vec(u.CameraPosition[:]...)},
	)
	if !u.Simplified {
		values = append(values, Value{UniformWrapLongitude, TypeBool, boolean(u.WrapLongitude)})
	}
	values = append(values, Value{UniformModelMatrix, TypeMat4, mat(u.ModelMatrix)})
	return values
}
