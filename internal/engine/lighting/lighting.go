// Package lighting provides the light and colour values fed to the surface shader.
package lighting

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/surfview/pkg/math"
)

// ErrBadColor is returned for strings that are not #rrggbb.
var ErrBadColor = errors.New("invalid colour")

// Color is an RGB triple in [0,1].
type Color [3]float32

// ParseHex parses "#rrggbb" (the '#' is optional). Channels are divided by
// 256, so "#ffffff" maps to 255/256 rather than exactly 1.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var c Color
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		c[i] = float32(v) / 256
	}
	return c, nil
}

// MustParseHex is ParseHex for compile-time constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", the inverse of ParseHex.
func (c Color) Hex() string {
	var b [3]uint8
	for i, f := range c.Clamp() {
		v := math32.Round(f * 256)
		if v > 255 {
			v = 255
		}
		b[i] = uint8(v)
	}
	return fmt.Sprintf("#%02x%02x%02x", b[0], b[1], b[2])
}

// Clamp limits every channel to [0,1].
func (c Color) Clamp() Color {
	for i := range c {
		if c[i] > 1 {
			c[i] = 1
		}
		if c[i] < 0 {
			c[i] = 0
		}
	}
	return c
}

// RGBA appends an alpha channel.
func (c Color) RGBA(a float32) [4]float32 {
	return [4]float32{c[0], c[1], c[2], a}
}

// Direction converts azimuth/elevation in degrees to a unit vector pointing
// towards the light. Azimuth turns around Y, elevation is measured from the
// XZ plane.
func Direction(azimuth, elevation float32) math.Vec3 {
	lonRad := azimuth * math32.Pi / 180
	latRad := elevation * math32.Pi / 180

	sl, cl := math32.Sincos(latRad)
	sa, ca := math32.Sincos(lonRad)
	return math.Vec3{X: cl * sa, Y: sl, Z: cl * ca}
}

// Light is the single light of a scene.
type Light struct {
	Azimuth   float32 // degrees
	Elevation float32 // degrees
	Position  math.Vec3
	Color     Color
}

// Direction returns the unit vector towards the light.
func (l Light) Direction() math.Vec3 {
	return Direction(l.Azimuth, l.Elevation)
}
