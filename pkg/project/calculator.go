package project

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/pkg/memo"
)

// Calculator computes uniforms and remembers the last result. Calling it
// again with equal Options returns the same *Uniforms; any difference
// recomputes. Viewports compare by identity since they are immutable.
//
// A Calculator is not safe for concurrent use. Give each render loop its
// own.
type Calculator struct {
	cache *memo.Last[Options, *Uniforms]
	log   *zap.Logger
}

// NewCalculator returns an empty Calculator.
func NewCalculator() *Calculator {
	c := &Calculator{log: logger.Named("project")}
	c.cache = memo.NewLast(equalOptions, func(opts Options) (*Uniforms, error) {
		return calculate(opts, c.log), nil
	})
	return c
}

// Uniforms returns the uniforms for opts, from the cache when possible.
func (c *Calculator) Uniforms(opts Options) (*Uniforms, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	u, hit, err := c.cache.Get(resolved)
	if err != nil {
		return nil, err
	}
	if ce := c.log.Check(zap.DebugLevel, "uniforms"); ce != nil {
		ce.Write(
			zap.String("viewport", resolved.Viewport.ID()),
			zap.Stringer("coordinateSystem", resolved.CoordinateSystem),
			zap.Bool("cached", hit),
			zap.Bool("offsetMode", u.OffsetMode),
		)
	}
	return u, nil
}

// Reset drops the cached result.
func (c *Calculator) Reset() {
	c.cache.Reset()
}

func equalOptions(a, b Options) bool {
	return a.Viewport == b.Viewport &&
		a.DevicePixelRatio == b.DevicePixelRatio &&
		a.CoordinateSystem == b.CoordinateSystem &&
		memo.EqualFloats(a.CoordinateOrigin, b.CoordinateOrigin) &&
		equalMatrix(a, b) &&
		a.AutoWrapLongitude == b.AutoWrapLongitude &&
		a.Simplified == b.Simplified &&
		equalFloatPtr(a.ProjectOffsetZoom, b.ProjectOffsetZoom)
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalMatrix(a, b Options) bool {
	if a.ModelMatrix == nil || b.ModelMatrix == nil {
		return a.ModelMatrix == b.ModelMatrix
	}
	return *a.ModelMatrix == *b.ModelMatrix
}
