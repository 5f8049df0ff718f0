package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/internal/viewer"
	"github.com/Faultbox/surfview/pkg/surface"
)

// Requests are one-shot commands raised by panel buttons.
type Requests struct {
	OpenTexture bool
	Screenshot  bool
	ResetView   bool
	TogglePause bool
}

// Panel edits frame parameters with ImGui widgets.
type Panel struct {
	grid int32
}

// NewPanel creates a panel.
func NewPanel() *Panel { return &Panel{} }

// Draw renders the widgets for p inside the current window. It reports
// whether p changed and which buttons were pressed.
func (pn *Panel) Draw(p *frame.Params, stats viewer.Stats) (bool, Requests) {
	var req Requests
	changed := false

	if imgui.TreeNodeExStrV("Surface", imgui.TreeNodeFlagsDefaultOpen) {
		for _, f := range surface.Families {
			if imgui.SelectableBoolV(f.String(), p.Family == f, 0, imgui.NewVec2(0, 0)) && p.Family != f {
				p.Family = f
				p.Grid = 0
				changed = true
			}
		}
		pn.grid = int32(gridValue(p))
		if imgui.SliderIntV("Grid", &pn.grid, frame.MinGrid, frame.MaxGrid, "%d", imgui.SliderFlagsNone) {
			p.SetGrid(int(pn.grid))
			changed = true
		}
		if imgui.Checkbox("Clamp degenerate normals", &p.ClampDegenerate) {
			changed = true
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Material", imgui.TreeNodeFlagsDefaultOpen) {
		if imgui.ColorEdit3("Colour", (*[3]float32)(&p.SurfaceColor)) {
			changed = true
		}
		if imgui.SliderFloatV("Diffusion", &p.Diffusion, 0, 1, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.Checkbox("Texture", &p.UseTexture) {
			changed = true
		}
		imgui.SameLine()
		if imgui.Button("Open...") {
			req.OpenTexture = true
		}
		if imgui.SliderFloatV("Offset U", &p.TexOffset.X, -1, 1, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.SliderFloatV("Offset V", &p.TexOffset.Y, -1, 1, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Light", imgui.TreeNodeFlagsDefaultOpen) {
		if imgui.ColorEdit3("Light colour", (*[3]float32)(&p.Light.Color)) {
			changed = true
		}
		if imgui.SliderFloatV("Azimuth", &p.Light.Azimuth, 0, 360, "%.0f deg", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.SliderFloatV("Elevation", &p.Light.Elevation, -90, 90, "%.0f deg", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.SliderFloatV("Spot angle", &p.Angle, 0, 3.14, "%.2f rad", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.Checkbox("Orbiting light", &p.ShowLight) {
			changed = true
		}
		if imgui.SliderFloatV("Orbit radius", &p.LightOrbit.Radius, 0.1, 5, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.SliderFloatV("Orbit speed", &p.LightOrbit.Speed, -5, 5, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Cursor", imgui.TreeNodeFlagsNone) {
		if imgui.Checkbox("Show cursor", &p.ShowCursor) {
			changed = true
		}
		if imgui.SliderFloatV("Cursor U", &p.Cursor.X, 0, 1, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		if imgui.SliderFloatV("Cursor V", &p.Cursor.Y, 0, 1, "%.2f", imgui.SliderFlagsNone) {
			changed = true
		}
		imgui.TreePop()
	}

	imgui.Separator()
	if imgui.Button(projectionLabel(p)) {
		viewer.Apply(p, viewer.ActionToggleProjection)
		changed = true
	}
	imgui.SameLine()
	req.ResetView = imgui.Button("Reset view")
	imgui.SameLine()
	req.TogglePause = imgui.Button("Pause")
	imgui.SameLine()
	req.Screenshot = imgui.Button("Screenshot")

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Triangles: %d", stats.Triangles))
	imgui.Text(fmt.Sprintf("Rebuilds: %d  Draws: %d", stats.Rebuilds, stats.DrawCalls))
	if stats.Clamped > 0 {
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0.2, 1), fmt.Sprintf("Clamped normals: %d", stats.Clamped))
	}
	if stats.LastError != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), stats.LastError.Error())
	}

	return changed, req
}

// gridValue is the slider position for p: the explicit grid, or the natural
// cell count of the family's domain.
func gridValue(p *frame.Params) int {
	if p.Grid > 0 {
		return p.Grid
	}
	s, err := surface.New(p.Family)
	if err != nil {
		return frame.MinGrid
	}
	nu, _ := s.Domain().Cells()
	return min(max(nu, frame.MinGrid), frame.MaxGrid)
}

func projectionLabel(p *frame.Params) string {
	return fmt.Sprintf("Projection: %s", p.Projection.Kind)
}
