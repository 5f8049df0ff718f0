package viewer

import (
	"testing"

	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/pkg/surface"
)

func TestApplyCursor(t *testing.T) {
	p := frame.DefaultParams()
	start := p.Cursor
	Apply(&p, ActionCursorRight)
	Apply(&p, ActionCursorUp)
	if p.Cursor.X <= start.X || p.Cursor.Y <= start.Y {
		t.Errorf("cursor %v did not move right and up from %v", p.Cursor, start)
	}
	for i := 0; i < 200; i++ {
		Apply(&p, ActionCursorLeft)
	}
	if p.Cursor.X != 0 {
		t.Errorf("cursor X = %g, want clamped to 0", p.Cursor.X)
	}
}

func TestApplyGrid(t *testing.T) {
	p := frame.DefaultParams()
	Apply(&p, ActionGridFiner)
	if p.Grid != 110 {
		t.Errorf("grid after finer = %d, want 110 (natural 100 + 10)", p.Grid)
	}
	p.SetGrid(frame.MinGrid + 2)
	Apply(&p, ActionGridCoarser)
	if p.Grid != frame.MinGrid {
		t.Errorf("grid = %d, want clamped to %d", p.Grid, frame.MinGrid)
	}
}

func TestApplyToggles(t *testing.T) {
	p := frame.DefaultParams()

	Apply(&p, ActionNextSurface)
	if p.Family != surface.FamilyKleinBottle {
		t.Errorf("next surface = %v", p.Family)
	}
	Apply(&p, ActionNextSurface)
	if p.Family != surface.FamilyPseudosphere {
		t.Errorf("next surface = %v", p.Family)
	}

	Apply(&p, ActionToggleProjection)
	if p.Projection.Kind != transform.Perspective {
		t.Error("projection not toggled to perspective")
	}
	Apply(&p, ActionToggleProjection)
	if p.Projection != transform.SymmetricOrtho(2) {
		t.Error("projection not toggled back to ortho")
	}

	light, cursor, tex, clamp := p.ShowLight, p.ShowCursor, p.UseTexture, p.ClampDegenerate
	Apply(&p, ActionToggleLight)
	Apply(&p, ActionToggleCursor)
	Apply(&p, ActionToggleTexture)
	Apply(&p, ActionToggleClamp)
	if p.ShowLight == light || p.ShowCursor == cursor || p.UseTexture == tex || p.ClampDegenerate == clamp {
		t.Error("toggle actions did not flip their flags")
	}
}

func TestApplyIgnoresHostActions(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionQuit, ActionScreenshot, ActionResetView, ActionTogglePause} {
		p := frame.DefaultParams()
		if Apply(&p, a) {
			t.Errorf("Apply(%d) reported handling a host action", a)
		}
		if p != frame.DefaultParams() {
			t.Errorf("Apply(%d) modified params", a)
		}
	}
}
