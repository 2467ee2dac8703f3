package mercator

import (
	"math"

	pmath "github.com/Faultbox/geoview/pkg/math"
)

// DistanceScales converts between meters or degrees and world units at one
// location. The *2 fields are first-order corrections (the rate of change of
// the scale along the north axis) and are only set when HighPrecision is true.
type DistanceScales struct {
	UnitsPerMeter  pmath.Vec3
	MetersPerUnit  pmath.Vec3
	UnitsPerDegree pmath.Vec3
	DegreesPerUnit pmath.Vec3

	HighPrecision   bool
	UnitsPerMeter2  pmath.Vec3
	MetersPerUnit2  pmath.Vec3
	UnitsPerDegree2 pmath.Vec3
}

// IdentityDistanceScales are the scales of a non-geospatial viewport.
func IdentityDistanceScales() DistanceScales {
	one := pmath.Vec3{1, 1, 1}
	return DistanceScales{
		UnitsPerMeter:  one,
		MetersPerUnit:  one,
		UnitsPerDegree: one,
		DegreesPerUnit: one,
	}
}

// GetDistanceScales computes the scales at (longitude, latitude). Longitude
// does not affect Web Mercator scales and is accepted for symmetry.
func GetDistanceScales(longitude, latitude float64, highPrecision bool) DistanceScales {
	lat := ClampLatitude(latitude)
	latCosine := math.Cos(lat * degToRad)

	unitsPerDegreeX := TileSize / 360
	unitsPerDegreeY := unitsPerDegreeX / latCosine
	altUnitsPerMeter := TileSize / EarthCircumference / latCosine

	s := DistanceScales{
		UnitsPerMeter:  pmath.Vec3{altUnitsPerMeter, altUnitsPerMeter, altUnitsPerMeter},
		MetersPerUnit:  pmath.Vec3{1 / altUnitsPerMeter, 1 / altUnitsPerMeter, 1 / altUnitsPerMeter},
		UnitsPerDegree: pmath.Vec3{unitsPerDegreeX, unitsPerDegreeY, altUnitsPerMeter},
		DegreesPerUnit: pmath.Vec3{1 / unitsPerDegreeX, 1 / unitsPerDegreeY, 1 / altUnitsPerMeter},
	}

	if highPrecision {
		latCosine2 := degToRad * math.Tan(lat*degToRad) / latCosine
		unitsPerDegreeY2 := unitsPerDegreeX * latCosine2 / 2
		altUnitsPerDegree2 := TileSize / EarthCircumference * latCosine2
		altUnitsPerMeter2 := altUnitsPerDegree2 / unitsPerDegreeY * altUnitsPerMeter

		s.HighPrecision = true
		s.UnitsPerDegree2 = pmath.Vec3{0, unitsPerDegreeY2, altUnitsPerDegree2}
		s.UnitsPerMeter2 = pmath.Vec3{altUnitsPerMeter2, 0, altUnitsPerMeter2}
		// d(1/u) = -du / u²
		m := -altUnitsPerMeter2 / (altUnitsPerMeter * altUnitsPerMeter)
		s.MetersPerUnit2 = pmath.Vec3{m, 0, m}
	}
	return s
}

// AddMetersToLngLat offsets lngLatZ by xyz meters (east, north, up) using a
// linear approximation around the base point. The error grows with the
// offset, roughly 1% per 100 km. lngLatZ and xyz may have 2 or 3 elements;
// the result has 3 elements when either has a Z.
func AddMetersToLngLat(lngLatZ, xyz []float64) []float64 {
	lng, lat := lngLatZ[0], lngLatZ[1]
	x, y := xyz[0], xyz[1]

	scales := GetDistanceScales(lng, lat, true)
	wx, wy := LngLatToWorld(lng, lat)
	wx += x * (scales.UnitsPerMeter[0] + scales.UnitsPerMeter2[0]*y)
	wy += y * (scales.UnitsPerMeter[1] + scales.UnitsPerMeter2[1]*y)

	newLng, newLat := WorldToLngLat(wx, wy)
	if len(lngLatZ) < 3 && len(xyz) < 3 {
		return []float64{newLng, newLat}
	}

	z := 0.0
	if len(lngLatZ) > 2 {
		z += lngLatZ[2]
	}
	if len(xyz) > 2 {
		z += xyz[2]
	}
	return []float64{newLng, newLat, z}
}
