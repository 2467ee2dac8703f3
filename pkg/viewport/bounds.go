package viewport

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/logger"
	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/mercator"
)

// Corners returns the bottom-left, bottom-right, top-right and top-left
// screen corners unprojected onto the plane at z meters. When the top edge
// looks past the horizon the top corners come from the far clip plane.
func (v *Viewport) Corners(z float64) ([4][]float64, error) {
	var corners [4][]float64
	if !v.invertible {
		return corners, ErrNotInvertible
	}
	at := AtTargetZ(z)

	var err error
	if corners[0], err = v.Unproject([]float64{0, v.height}, at); err != nil {
		return corners, err
	}
	if corners[1], err = v.Unproject([]float64{v.width, v.height}, at); err != nil {
		return corners, err
	}

	halfFov := v.fovy / 2
	angleToGround := (90 - v.pitch) * degToRad
	if halfFov > angleToGround-0.01 {
		corners[2] = v.unprojectOnFarPlane(v.width, z)
		corners[3] = v.unprojectOnFarPlane(0, z)
		return corners, nil
	}
	if corners[2], err = v.Unproject([]float64{v.width, 0}, at); err != nil {
		return corners, err
	}
	if corners[3], err = v.Unproject([]float64{0, 0}, at); err != nil {
		return corners, err
	}
	return corners, nil
}

// GetBounds returns the [west, south] - [east, north] box covering the
// visible area of the plane at z meters. For non-geospatial viewports the
// box is in world units.
func (v *Viewport) GetBounds(z float64) (orb.Bound, error) {
	corners, err := v.Corners(z)
	if err != nil {
		return orb.Bound{}, err
	}

	b := orb.Bound{
		Min: orb.Point{math.Inf(1), math.Inf(1)},
		Max: orb.Point{math.Inf(-1), math.Inf(-1)},
	}
	for _, c := range corners {
		b.Min[0] = math.Min(b.Min[0], c[0])
		b.Min[1] = math.Min(b.Min[1], c[1])
		b.Max[0] = math.Max(b.Max[0], c[0])
		b.Max[1] = math.Max(b.Max[1], c[1])
	}
	return b, nil
}

// SubViewports returns one viewport per world copy the visible area
// touches, for rendering across the antimeridian. The copy at offset 0 is
// the viewport itself. Without WithRepeat it returns nil.
func (v *Viewport) SubViewports() []*Viewport {
	if !v.opts.repeat {
		return nil
	}
	return v.subViewports.Get(v.buildSubViewports)
}

func (v *Viewport) buildSubViewports() []*Viewport {
	log := logger.Named("viewport")

	bounds, err := v.GetBounds(0)
	if err != nil {
		log.Warn("cannot compute sub viewports", zap.String("id", v.id), zap.Error(err))
		return []*Viewport{v}
	}

	minOffset := int(math.Floor((bounds.Min[0] + 180) / 360))
	maxOffset := int(math.Ceil((bounds.Max[0] - 180) / 360))

	subs := make([]*Viewport, 0, maxOffset-minOffset+1)
	for x := minOffset; x <= maxOffset; x++ {
		if x == 0 {
			subs = append(subs, v)
			continue
		}
		o := v.opts
		o.worldOffset = x
		o.repeat = false
		sub, err := build(o)
		if err != nil {
			log.Warn("cannot build sub viewport", zap.Int("worldOffset", x), zap.Error(err))
			continue
		}
		subs = append(subs, sub)
	}
	log.Debug("sub viewports",
		zap.String("id", v.id),
		zap.Int("minOffset", minOffset),
		zap.Int("maxOffset", maxOffset),
	)
	return subs
}

// GetFrustumPlanes returns the six clip planes of the view-projection
// matrix. They are computed once.
func (v *Viewport) GetFrustumPlanes() pmath.FrustumPlanes {
	return v.frustum.Get(func() pmath.FrustumPlanes {
		return pmath.ExtractFrustumPlanes(v.viewProjectionMatrix)
	})
}

// GetMapCenterByLngLatPosition returns the map center that places lngLat
// at screen position pos.
func (v *Viewport) GetMapCenterByLngLatPosition(lngLat orb.Point, pos pmath.Vec2) (orb.Point, error) {
	if !v.invertible {
		return orb.Point{}, ErrNotInvertible
	}
	from := mercator.PixelsToWorld(pos[:], v.pixelUnprojection, 0).XY()

	to := v.ProjectFlat(lngLat[:])
	newCenter := v.center.XY().Add(pmath.Vec2{to[0], to[1]}.Sub(from))

	c := v.UnprojectFlat(newCenter[:])
	return orb.Point{c[0], c[1]}, nil
}

// CoveringTiles lists the map tiles of tileSize pixels needed to fill the
// visible area at the ground plane.
func (v *Viewport) CoveringTiles(tileSize int) (maptile.Tiles, error) {
	if !v.geospatial {
		return nil, ErrNotGeospatial
	}
	bounds, err := v.GetBounds(0)
	if err != nil {
		return nil, err
	}
	return mercator.TilesInBound(bounds, mercator.TileZoom(v.zoom, tileSize)), nil
}
