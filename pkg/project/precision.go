package project

import "math"

// HighPrecisionLngLat returns, for each [lng, lat] pair found every stride
// elements starting at offset, the difference between the float64 value and
// its float32 rounding. Shaders add the residual back to the rounded
// coordinate to recover precision lost in the upload.
//
// A stride below 2 is treated as 2. A trailing pair missing its latitude
// gets a zero residual for it.
func HighPrecisionLngLat(lngLat []float64, offset, stride int) []float32 {
	if stride < 2 {
		stride = 2
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(lngLat) {
		return []float32{}
	}

	n := int(math.Ceil(float64(len(lngLat)-offset) / float64(stride)))
	residuals := make([]float32, n*2)
	for i := 0; i < n; i++ {
		src := offset + i*stride
		residuals[i*2] = residual(lngLat[src])
		if src+1 < len(lngLat) {
			residuals[i*2+1] = residual(lngLat[src+1])
		}
	}
	return residuals
}

func residual(v float64) float32 {
	return float32(v - float64(float32(v)))
}
