package mercator

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// MaxTileZoom caps TileZoom; deeper levels are never requested from tile sources.
const MaxTileZoom = 24

// TileZoom returns the integer tile zoom whose tiles of tileSize pixels are
// closest to one screen pixel per tile pixel at the given map zoom. The map
// zoom is expressed against TileSize world units, so a 256 pixel tile source
// sits one level deeper.
func TileZoom(zoom float64, tileSize int) maptile.Zoom {
	if tileSize <= 0 {
		tileSize = int(TileSize)
	}
	z := math.Round(zoom + math.Log2(TileSize/float64(tileSize)))
	if z < 0 {
		z = 0
	}
	if z > MaxTileZoom {
		z = MaxTileZoom
	}
	return maptile.Zoom(z)
}

// TilesInBound enumerates the tiles at zoom z that overlap a lng/lat bound.
// Longitudes outside [-180, 180] wrap onto the existing tile columns.
func TilesInBound(b orb.Bound, z maptile.Zoom) maptile.Tiles {
	minLat := ClampLatitude(b.Min[1])
	maxLat := ClampLatitude(b.Max[1])

	// North-west corner has the smallest tile x/y.
	nw := maptile.At(orb.Point{clampLng(b.Min[0]), maxLat}, z)
	se := maptile.At(orb.Point{clampLng(b.Max[0]), minLat}, z)

	n := uint32(1) << uint32(z)
	var tiles maptile.Tiles
	for x := nw.X; x <= se.X && x < n; x++ {
		for y := nw.Y; y <= se.Y && y < n; y++ {
			tiles = append(tiles, maptile.New(x, y, z))
		}
	}
	return tiles
}

func clampLng(lng float64) float64 {
	if lng < -180 {
		return -180
	}
	if lng >= 180 {
		// maptile.At maps exactly 180 to the column after the last one.
		return math.Nextafter(180, 0)
	}
	return lng
}
