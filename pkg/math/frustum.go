package math

// FrustumPlane is a clip plane in common space. Normals point out of the
// frustum; a point p is on the visible side when Normal·p <= Distance.
type FrustumPlane struct {
	Distance float64
	Normal   Vec3
}

// FrustumPlanes holds the six planes of a camera frustum.
type FrustumPlanes struct {
	Left   FrustumPlane
	Right  FrustumPlane
	Bottom FrustumPlane
	Top    FrustumPlane
	Near   FrustumPlane
	Far    FrustumPlane
}

// ExtractFrustumPlanes derives the clip planes of a view-projection matrix
// (Gribb/Hartmann row combination).
func ExtractFrustumPlanes(vp Mat4) FrustumPlanes {
	return FrustumPlanes{
		Left:   newFrustumPlane(vp[3]+vp[0], vp[7]+vp[4], vp[11]+vp[8], vp[15]+vp[12]),
		Right:  newFrustumPlane(vp[3]-vp[0], vp[7]-vp[4], vp[11]-vp[8], vp[15]-vp[12]),
		Bottom: newFrustumPlane(vp[3]+vp[1], vp[7]+vp[5], vp[11]+vp[9], vp[15]+vp[13]),
		Top:    newFrustumPlane(vp[3]-vp[1], vp[7]-vp[5], vp[11]-vp[9], vp[15]-vp[13]),
		Near:   newFrustumPlane(vp[3]+vp[2], vp[7]+vp[6], vp[11]+vp[10], vp[15]+vp[14]),
		Far:    newFrustumPlane(vp[3]-vp[2], vp[7]-vp[6], vp[11]-vp[10], vp[15]-vp[14]),
	}
}

func newFrustumPlane(a, b, c, d float64) FrustumPlane {
	l := Vec3{a, b, c}.Length()
	return FrustumPlane{
		Distance: d / l,
		Normal:   Vec3{-a / l, -b / l, -c / l},
	}
}

// All returns the planes in left, right, bottom, top, near, far order.
func (f FrustumPlanes) All() [6]FrustumPlane {
	return [6]FrustumPlane{f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far}
}

// ContainsPoint reports whether p lies inside all six planes.
func (f FrustumPlanes) ContainsPoint(p Vec3) bool {
	for _, plane := range f.All() {
		if p.Dot(plane.Normal) > plane.Distance {
			return false
		}
	}
	return true
}
