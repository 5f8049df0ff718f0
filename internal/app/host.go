// Package app runs the surfview frame loop: it owns the window, the renderer
// and the input devices, and routes user commands to the shared parameters,
// the camera and the clock.
package app

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/config"
	"github.com/Faultbox/surfview/internal/engine/camera"
	"github.com/Faultbox/surfview/internal/engine/texture"
	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/viewer"
	"github.com/Faultbox/surfview/pkg/math"
)

// Controller is a view-matrix provider driven by pointer input.
type Controller interface {
	viewer.ViewProvider
	HandleDrag(deltaX, deltaY float32)
	HandleZoom(delta float32)
	Reset()
	SetPerspective(on bool)
}

// NewController returns the camera for kind.
func NewController(kind config.Controller) Controller {
	if kind == config.ControllerOrbit {
		return camera.NewOrbitCamera()
	}
	return camera.NewTrackball()
}

// Command is what the loop must do after an action, beyond state changes.
type Command int

const (
	CommandNone Command = iota
	CommandScreenshot
	CommandQuit
)

// Host applies actions to the shared state, camera and clock. Both viewers
// use it so keyboard and panel behave the same.
type Host struct {
	State  *frame.State
	Camera Controller
	Clock  *frame.Clock
	log    *zap.Logger
}

// NewHost creates a host for p and syncs the camera to its projection.
func NewHost(p frame.Params, cam Controller, clock *frame.Clock) *Host {
	h := &Host{
		State:  frame.NewState(p),
		Camera: cam,
		Clock:  clock,
		log:    logger.Named("app"),
	}
	h.SyncCamera(p)
	return h
}

// Handle performs a.
func (h *Host) Handle(a viewer.Action) Command {
	switch a {
	case viewer.ActionNone:
	case viewer.ActionResetView:
		h.Camera.Reset()
	case viewer.ActionTogglePause:
		h.Clock.TogglePause()
		h.log.Debug("clock", zap.Bool("paused", h.Clock.Paused()))
	case viewer.ActionScreenshot:
		return CommandScreenshot
	case viewer.ActionQuit:
		return CommandQuit
	default:
		var p frame.Params
		changed := false
		h.State.Update(func(dst *frame.Params) {
			changed = viewer.Apply(dst, a)
			p = *dst
		})
		if changed && a == viewer.ActionToggleProjection {
			h.SyncCamera(p)
			h.log.Info("projection changed", zap.Stringer("kind", p.Projection.Kind))
		}
	}
	return CommandNone
}

// SyncCamera moves the eye to suit p's projection.
func (h *Host) SyncCamera(p frame.Params) {
	h.Camera.SetPerspective(p.Projection.Kind == transform.Perspective)
}

// Texture handles a finished texture load. upload is called with the image
// on success, after which texturing is switched on.
func (h *Host) Texture(res texture.Result, upload func(*image.RGBA)) {
	if res.Err != nil {
		h.log.Warn("texture load failed", zap.String("path", res.Path), zap.Error(res.Err))
		return
	}
	upload(res.Image)
	h.State.Update(func(p *frame.Params) { p.UseTexture = true })
	h.log.Info("texture loaded", zap.String("path", res.Path))
}

// Picker maps a viewport position to a normalized cursor position.
type Picker interface {
	Pick(p frame.Params, view math.Mat4, x, y, width, height float32) (math.Vec2, bool)
}

// PlaceCursor moves the cursor to the surface point under (x, y), if any,
// and shows it.
func (h *Host) PlaceCursor(pk Picker, x, y, width, height float32) bool {
	snap := h.State.Snapshot()
	c, ok := pk.Pick(snap.Params, h.Camera.ViewMatrix(), x, y, width, height)
	if !ok {
		return false
	}
	h.State.Update(func(p *frame.Params) {
		p.Cursor = c
		p.ShowCursor = true
	})
	return true
}
