// Package viewer composes one frame: it rebuilds meshes when their parameters
// change and turns a parameter snapshot, a view matrix and a time into draw
// calls for a graphics backend.
package viewer

import (
	"github.com/Faultbox/surfview/internal/engine/lighting"
	"github.com/Faultbox/surfview/internal/engine/tessellate"
	"github.com/Faultbox/surfview/pkg/math"
)

// Slot names a mesh held by the backend.
type Slot int

const (
	SlotSurface Slot = iota
	SlotMarker
)

func (s Slot) String() string {
	if s == SlotMarker {
		return "marker"
	}
	return "surface"
}

// DrawCall is everything the backend needs to draw one mesh once.
type DrawCall struct {
	Slot Slot

	MVP          math.Mat4
	ModelView    math.Mat4
	NormalMatrix [9]float32

	Color      [4]float32
	LightColor lighting.Color
	LightDir   [3]float32 // towards the light, eye space
	LightPos   [3]float32 // eye space
	Angle      float32
	Diffusion  float32

	TexOffset  [2]float32
	UseTexture bool
	// Unlit draws Color flat, used for the light and cursor markers.
	Unlit bool
}

// Backend owns GPU resources. Upload must replace a slot's buffers only once
// the new ones are complete, so a draw never sees a partial mesh.
type Backend interface {
	Upload(slot Slot, m *tessellate.Mesh) error
	Draw(dc DrawCall)
}

// ViewProvider supplies the view matrix for a frame, typically a trackball.
type ViewProvider interface {
	ViewMatrix() math.Mat4
}
