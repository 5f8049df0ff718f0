package viewer

import (
	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/pkg/surface"
)

// Action is a discrete user command, independent of the input device.
type Action int

const (
	ActionNone Action = iota
	ActionCursorLeft
	ActionCursorRight
	ActionCursorUp
	ActionCursorDown
	ActionGridFiner
	ActionGridCoarser
	ActionNextSurface
	ActionToggleProjection
	ActionToggleLight
	ActionToggleCursor
	ActionToggleTexture
	ActionToggleClamp

	// Handled by the host loop, not by Apply.
	ActionResetView
	ActionTogglePause
	ActionScreenshot
	ActionQuit
)

// CursorStep is how far one cursor key press moves in normalized (u,v).
const CursorStep = 0.02

// gridStep is the change in cells per axis for one grid key press.
const gridStep = 10

// Apply mutates p for parameter actions and reports whether it did.
func Apply(p *frame.Params, a Action) bool {
	switch a {
	case ActionCursorLeft:
		p.MoveCursor(-CursorStep, 0)
	case ActionCursorRight:
		p.MoveCursor(CursorStep, 0)
	case ActionCursorUp:
		p.MoveCursor(0, CursorStep)
	case ActionCursorDown:
		p.MoveCursor(0, -CursorStep)
	case ActionGridFiner:
		p.SetGrid(currentGrid(p) + gridStep)
	case ActionGridCoarser:
		p.SetGrid(max(currentGrid(p)-gridStep, frame.MinGrid))
	case ActionNextSurface:
		p.Family = nextPrimary(p.Family)
		p.Grid = 0
	case ActionToggleProjection:
		p.Projection = toggleProjection(p.Projection)
	case ActionToggleLight:
		p.ShowLight = !p.ShowLight
	case ActionToggleCursor:
		p.ShowCursor = !p.ShowCursor
	case ActionToggleTexture:
		p.UseTexture = !p.UseTexture
	case ActionToggleClamp:
		p.ClampDegenerate = !p.ClampDegenerate
	default:
		return false
	}
	return true
}

// currentGrid is the effective cells-per-axis, resolving 0 to the natural grid.
func currentGrid(p *frame.Params) int {
	if p.Grid > 0 {
		return p.Grid
	}
	s, err := surface.New(p.Family)
	if err != nil {
		return frame.MinGrid
	}
	cu, _ := s.Domain().Cells()
	return cu
}

// nextPrimary cycles through the families meant as the main surface.
// The sphere is only a marker.
func nextPrimary(f surface.Family) surface.Family {
	if f == surface.FamilyPseudosphere {
		return surface.FamilyKleinBottle
	}
	return surface.FamilyPseudosphere
}

// DefaultPerspective is used when switching from orthographic.
var DefaultPerspective = transform.PerspectiveProjection(0.8, 1, 0.1, 100)

func toggleProjection(p transform.Projection) transform.Projection {
	if p.Kind == transform.Perspective {
		return transform.SymmetricOrtho(2)
	}
	return DefaultPerspective
}
