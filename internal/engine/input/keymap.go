package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/surfview/internal/viewer"
)

// Keymap binds scancodes to viewer actions.
type Keymap map[sdl.Scancode]viewer.Action

// DefaultKeymap is the surfview keyboard layout.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.SCANCODE_LEFT:     viewer.ActionCursorLeft,
		sdl.SCANCODE_RIGHT:    viewer.ActionCursorRight,
		sdl.SCANCODE_UP:       viewer.ActionCursorUp,
		sdl.SCANCODE_DOWN:     viewer.ActionCursorDown,
		sdl.SCANCODE_EQUALS:   viewer.ActionGridFiner,
		sdl.SCANCODE_KP_PLUS:  viewer.ActionGridFiner,
		sdl.SCANCODE_MINUS:    viewer.ActionGridCoarser,
		sdl.SCANCODE_KP_MINUS: viewer.ActionGridCoarser,
		sdl.SCANCODE_TAB:      viewer.ActionNextSurface,
		sdl.SCANCODE_P:        viewer.ActionToggleProjection,
		sdl.SCANCODE_L:        viewer.ActionToggleLight,
		sdl.SCANCODE_C:        viewer.ActionToggleCursor,
		sdl.SCANCODE_T:        viewer.ActionToggleTexture,
		sdl.SCANCODE_D:        viewer.ActionToggleClamp,
		sdl.SCANCODE_R:        viewer.ActionResetView,
		sdl.SCANCODE_SPACE:    viewer.ActionTogglePause,
		sdl.SCANCODE_F12:      viewer.ActionScreenshot,
		sdl.SCANCODE_ESCAPE:   viewer.ActionQuit,
	}
}

// repeatable actions fire on key auto-repeat; the rest only on the first press.
func repeatable(a viewer.Action) bool {
	switch a {
	case viewer.ActionCursorLeft, viewer.ActionCursorRight,
		viewer.ActionCursorUp, viewer.ActionCursorDown,
		viewer.ActionGridFiner, viewer.ActionGridCoarser:
		return true
	}
	return false
}

// Actions translates key-down events into actions in event order.
func (k Keymap) Actions(events []Event) []viewer.Action {
	var out []viewer.Action
	for _, e := range events {
		if e.Type != EventKeyDown {
			continue
		}
		a, ok := k[e.Key]
		if !ok {
			continue
		}
		if e.Repeat && !repeatable(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}
