// Package frame holds the per-frame parameters that drive tessellation and
// transform composition, and hands out consistent snapshots of them.
package frame

import (
	"github.com/Faultbox/surfview/internal/engine/lighting"
	"github.com/Faultbox/surfview/internal/engine/tessellate"
	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/pkg/math"
	"github.com/Faultbox/surfview/pkg/surface"
)

// Grid density bounds, in cells per axis.
const (
	MinGrid = 4
	MaxGrid = 400
)

// Params is every knob an input handler may change between frames.
type Params struct {
	Family surface.Family
	// Grid is the cell count per axis; 0 keeps the family's natural steps.
	Grid int
	// ClampDegenerate keeps rebuilding when a sample has no normal.
	ClampDegenerate bool

	Projection transform.Projection

	Light      lighting.Light
	LightOrbit transform.Orbit
	ShowLight  bool

	SurfaceColor lighting.Color
	Angle        float32
	Diffusion    float32

	UseTexture bool
	TexOffset  math.Vec2

	// Cursor is a normalized (u,v) position within the domain.
	Cursor     math.Vec2
	ShowCursor bool
}

// DefaultParams is the pseudosphere in a [-2,2] box lit from (1,1,1).
func DefaultParams() Params {
	return Params{
		Family:     surface.FamilyPseudosphere,
		Projection: transform.SymmetricOrtho(2),
		Light: lighting.Light{
			Azimuth:   45,
			Elevation: 35,
			Position:  math.Vec3{X: 1, Y: 1, Z: 1},
			Color:     lighting.MustParseHex("#ffffff"),
		},
		LightOrbit:   transform.Orbit{Radius: 1.5, Speed: 1, Z: 1},
		ShowLight:    true,
		SurfaceColor: lighting.MustParseHex("#3c8cdc"),
		Angle:        1.2,
		Diffusion:    0.8,
		Cursor:       math.Vec2{X: 0.5, Y: 0.5},
		ShowCursor:   true,
	}
}

// MeshKey captures the parameters a tessellation depends on.
// A mesh is rebuilt exactly when its key changes.
type MeshKey struct {
	Family surface.Family
	Grid   int
	Clamp  bool
}

// MeshKey returns the tessellation-relevant subset of p.
func (p Params) MeshKey() MeshKey {
	return MeshKey{Family: p.Family, Grid: p.Grid, Clamp: p.ClampDegenerate}
}

// Domain returns the family's natural domain resampled to Grid cells.
func (p Params) Domain(s surface.Surface) surface.Domain {
	d := s.Domain()
	if p.Grid > 0 {
		d = d.WithCells(p.Grid, p.Grid)
	}
	return d
}

// BuildOptions maps the degenerate-normal knob onto tessellation options.
func (p Params) BuildOptions() tessellate.Options {
	if p.ClampDegenerate {
		return tessellate.Options{Degenerate: tessellate.ClampDegenerate}
	}
	return tessellate.Options{}
}

// SetGrid sets the grid density, clamped to [MinGrid, MaxGrid]; 0 restores
// the natural steps.
func (p *Params) SetGrid(n int) {
	switch {
	case n <= 0:
		p.Grid = 0
	case n < MinGrid:
		p.Grid = MinGrid
	case n > MaxGrid:
		p.Grid = MaxGrid
	default:
		p.Grid = n
	}
}

// MoveCursor shifts the cursor and keeps it inside the unit square.
func (p *Params) MoveCursor(du, dv float32) {
	p.Cursor = math.Vec2{X: p.Cursor.X + du, Y: p.Cursor.Y + dv}.Clamp01()
}

// CursorUV maps the normalized cursor onto d's full bounds, the same mapping
// mesh texcoords use.
func (p Params) CursorUV(d surface.Domain) (u, v float64) {
	return d.Lerp(float64(p.Cursor.X), float64(p.Cursor.Y))
}
