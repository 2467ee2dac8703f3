package project

import (
	"fmt"
	"strings"
)

// CoordinateSystem tags how the positions of a draw call are expressed. The
// integer values are shared with the shader and must not change.
type CoordinateSystem int

const (
	// CoordinateSystemDefault resolves to LngLat for geospatial viewports
	// and Cartesian otherwise.
	CoordinateSystemDefault CoordinateSystem = -1
	// CoordinateSystemCartesian positions are already in common space.
	CoordinateSystemCartesian CoordinateSystem = 0
	// CoordinateSystemLngLat positions are [lng, lat, meters].
	CoordinateSystemLngLat CoordinateSystem = 1
	// CoordinateSystemMeterOffsets positions are meter offsets from the
	// coordinate origin.
	CoordinateSystemMeterOffsets CoordinateSystem = 2
	// CoordinateSystemLngLatOffsets positions are degree offsets from the
	// coordinate origin.
	CoordinateSystemLngLatOffsets CoordinateSystem = 3
)

var coordinateSystemNames = map[CoordinateSystem]string{
	CoordinateSystemDefault:       "DEFAULT",
	CoordinateSystemCartesian:     "CARTESIAN",
	CoordinateSystemLngLat:        "LNGLAT",
	CoordinateSystemMeterOffsets:  "METER_OFFSETS",
	CoordinateSystemLngLatOffsets: "LNGLAT_OFFSETS",
}

func (c CoordinateSystem) String() string {
	if name, ok := coordinateSystemNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CoordinateSystem(%d)", int(c))
}

// Valid reports whether c is one of the defined systems.
func (c CoordinateSystem) Valid() bool {
	_, ok := coordinateSystemNames[c]
	return ok
}

// IsOffsets reports whether positions are relative to a coordinate origin.
func (c CoordinateSystem) IsOffsets() bool {
	return c == CoordinateSystemMeterOffsets || c == CoordinateSystemLngLatOffsets
}

// ParseCoordinateSystem accepts the names printed by String, case
// insensitive, with "-" allowed in place of "_".
func ParseCoordinateSystem(s string) (CoordinateSystem, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if name == "" {
		return CoordinateSystemDefault, nil
	}
	for c, n := range coordinateSystemNames {
		if n == name {
			return c, nil
		}
	}
	return CoordinateSystemDefault, fmt.Errorf("%w: %q", ErrUnknownCoordinateSystem, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c CoordinateSystem) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CoordinateSystem) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinateSystem(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
