// Package mercator implements the spherical Web Mercator projection in the
// 512x512 "world" space used by the viewport, plus distance scales and the
// camera matrix helpers built on top of it.
package mercator

import "math"

const (
	// TileSize is the width of the whole world at zoom 0, in world units.
	TileSize = 512.0

	// EarthCircumference is the equatorial circumference used for meter scales.
	EarthCircumference = 40.03e6

	// MaxLatitude is the latitude at which Web Mercator becomes square
	// (arctan(sinh(π))). Latitudes are clamped to ±MaxLatitude before projection.
	MaxLatitude = 85.051128779806604

	// DefaultAltitude is the camera altitude in screen heights.
	DefaultAltitude = 1.5

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
	piOver4  = math.Pi / 4
)

// ZoomToScale returns 2^zoom.
func ZoomToScale(zoom float64) float64 {
	return math.Pow(2, zoom)
}

// ScaleToZoom returns log2(scale).
func ScaleToZoom(scale float64) float64 {
	return math.Log2(scale)
}

// ClampLatitude limits lat to the square Web Mercator range.
func ClampLatitude(lat float64) float64 {
	if lat > MaxLatitude {
		return MaxLatitude
	}
	if lat < -MaxLatitude {
		return -MaxLatitude
	}
	return lat
}

// LngLatToWorld projects [lng, lat] in degrees onto the 512x512 world at
// zoom 0. Y grows northwards. Latitude is clamped so the poles never produce
// infinite coordinates.
func LngLatToWorld(lng, lat float64) (x, y float64) {
	lambda := lng * degToRad
	phi := ClampLatitude(lat) * degToRad

	x = TileSize * (lambda + math.Pi) / (2 * math.Pi)
	y = TileSize * (math.Pi + math.Log(math.Tan(piOver4+phi*0.5))) / (2 * math.Pi)
	return x, y
}

// WorldToLngLat is the inverse of LngLatToWorld.
func WorldToLngLat(x, y float64) (lng, lat float64) {
	lambda := (x/TileSize)*(2*math.Pi) - math.Pi
	phi := 2 * (math.Atan(math.Exp((y/TileSize)*(2*math.Pi)-math.Pi)) - piOver4)
	return lambda * radToDeg, phi * radToDeg
}

// GetMeterZoom returns the zoom at which one pixel covers about one meter at
// the given latitude.
func GetMeterZoom(latitude float64) float64 {
	latCosine := math.Cos(latitude * degToRad)
	return ScaleToZoom(EarthCircumference*latCosine) - 9
}
