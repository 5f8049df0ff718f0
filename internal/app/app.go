package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/config"
	"github.com/Faultbox/surfview/internal/engine/debug"
	"github.com/Faultbox/surfview/internal/engine/input"
	"github.com/Faultbox/surfview/internal/engine/renderer"
	"github.com/Faultbox/surfview/internal/engine/texture"
	"github.com/Faultbox/surfview/internal/engine/window"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/viewer"
)

// App is the keyboard-driven surface viewer.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	keymap   input.Keymap

	host   *Host
	viewer *viewer.Viewer
	loader *texture.Loader
	shots  *debug.ScreenshotCapture
}

// New creates the window, GL renderer and viewer described by cfg.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	controller, err := cfg.ControllerKind()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		input:  input.New(),
		keymap: input.DefaultKeymap(),
		loader: texture.NewLoader(),
		shots:  debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}
	format, err := debug.ParseFormat(cfg.Screenshots.Format)
	if err != nil {
		return nil, err
	}
	a.shots.SetFormat(format)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      "surfview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: cfg.BackgroundColor(),
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.host = NewHost(params, NewController(controller), frame.NewClock())
	a.viewer = viewer.New(a.renderer)
	a.viewer.SetViewport(w, h)

	if cfg.Material.Texture != "" {
		a.loader.Load(cfg.Material.Texture)
	}

	log.Info("viewer initialized",
		zap.Stringer("surface", params.Family),
		zap.Stringer("projection", params.Projection.Kind),
		zap.String("controller", string(controller)))
	return a, nil
}

// Run runs the frame loop until the window closes or Quit is pressed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()
	lastRev := uint64(0)

	a.log.Info("starting frame loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		screenshot := a.handleEvents()

		for res, ok := a.loader.Poll(); ok; res, ok = a.loader.Poll() {
			a.host.Texture(res, a.renderer.SetTexture)
		}

		snap := a.host.State.Snapshot()
		a.renderer.Begin()
		if err := a.viewer.Frame(snap, a.host.Camera.ViewMatrix(), a.host.Clock.Elapsed()); err != nil {
			// Rebuild failures keep the previous mesh on screen.
			a.log.Warn("frame", zap.Error(err))
		}
		if screenshot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		if snap.Revision != lastRev {
			lastRev = snap.Revision
			a.window.SetTitle(title(snap.Params, a.viewer.Stats()))
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Int("draws", a.viewer.Stats().DrawCalls))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.loader.Wait()
	return nil
}

func (a *App) handleEvents() (screenshot bool) {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
			a.viewer.SetViewport(w, h)
		case input.EventMouseMove:
			if a.input.Dragging() {
				a.host.Camera.HandleDrag(float32(e.DX), float32(e.DY))
			}
			if a.input.Placing() {
				a.placeCursor(e.MouseX, e.MouseY)
			}
		case input.EventMouseDown:
			if e.Button == input.ButtonRight {
				a.placeCursor(e.MouseX, e.MouseY)
			}
		case input.EventMouseWheel:
			a.host.Camera.HandleZoom(e.Wheel)
		case input.EventDropFile:
			a.loader.Load(e.Path)
		}
	}

	for _, action := range a.keymap.Actions(a.input.Events()) {
		switch a.host.Handle(action) {
		case CommandScreenshot:
			screenshot = true
		case CommandQuit:
			a.running = false
		}
	}
	return screenshot
}

// placeCursor moves the cursor to the surface point under a window position.
func (a *App) placeCursor(x, y int) {
	ww, wh := a.window.GetSize()
	a.host.PlaceCursor(a.viewer, float32(x), float32(y), float32(ww), float32(wh))
}

func (a *App) screenshot() {
	w, h := a.renderer.Size()
	name, err := a.shots.CaptureFromPixels(a.renderer.ReadPixels(), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", name))
}

// Close releases GL and window resources.
func (a *App) Close() {
	a.log.Info("closing viewer")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// SaveSettings persists the current parameters to the config directory.
func (a *App) SaveSettings() error {
	a.cfg.SetParams(a.host.State.Snapshot().Params)
	return a.cfg.Save()
}

func title(p frame.Params, s viewer.Stats) string {
	return fmt.Sprintf("surfview - %s, %d triangles, %s", p.Family, s.Triangles, p.Projection.Kind)
}
