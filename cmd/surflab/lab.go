package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/app"
	"github.com/Faultbox/surfview/internal/config"
	"github.com/Faultbox/surfview/internal/engine/debug"
	"github.com/Faultbox/surfview/internal/engine/framebuffer"
	"github.com/Faultbox/surfview/internal/engine/renderer"
	"github.com/Faultbox/surfview/internal/engine/texture"
	"github.com/Faultbox/surfview/internal/engine/ui"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/viewer"
)

const (
	panelWidth     = float32(320)
	previewSize    = 768
	statusDuration = 3 * time.Second
)

// Lab is the surflab application state. Everything except the file dialog
// goroutine runs on the imgui render thread.
type Lab struct {
	cfg *config.Config
	log *zap.Logger

	backend  *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	panel    *ui.Panel

	host   *app.Host
	viewer *viewer.Viewer
	loader *texture.Loader
	shots  *debug.ScreenshotCapture

	// Dragging over the preview rotates the camera.
	lastMouse imgui.Vec2

	status     string
	statusTime time.Time
}

// NewLab creates the window, GL resources and panel.
func NewLab(cfg *config.Config) (*Lab, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	controller, err := cfg.ControllerKind()
	if err != nil {
		return nil, err
	}
	format, err := debug.ParseFormat(cfg.Screenshots.Format)
	if err != nil {
		return nil, err
	}

	l := &Lab{
		cfg:    cfg,
		log:    logger.Named("surflab"),
		panel:  ui.NewPanel(),
		loader: texture.NewLoader(),
		shots:  debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}
	l.shots.SetFormat(format)

	l.backend, err = ui.NewBackend("surflab", cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, err
	}
	l.renderer, err = renderer.New(renderer.Config{
		Width:      previewSize,
		Height:     previewSize,
		Background: cfg.BackgroundColor(),
	})
	if err != nil {
		return nil, err
	}
	l.fb, err = framebuffer.New(previewSize, previewSize)
	if err != nil {
		return nil, err
	}

	l.host = app.NewHost(params, app.NewController(controller), frame.NewClock())
	l.viewer = viewer.New(l.renderer)
	l.viewer.SetViewport(previewSize, previewSize)

	if cfg.Material.Texture != "" {
		l.loader.Load(cfg.Material.Texture)
	}
	return l, nil
}

// Run starts the imgui loop.
func (l *Lab) Run() {
	l.backend.Run(l.render)
}

// Close releases GL resources and saves the current parameters.
func (l *Lab) Close() {
	l.loader.Wait()
	if l.fb != nil {
		l.fb.Destroy()
	}
	if l.renderer != nil {
		l.renderer.Close()
	}
	if l.host != nil {
		l.cfg.SetParams(l.host.State.Snapshot().Params)
		if err := l.cfg.Save(); err != nil {
			l.log.Warn("could not save settings", zap.Error(err))
		}
	}
}

func (l *Lab) render() {
	for res, ok := l.loader.Poll(); ok; res, ok = l.loader.Poll() {
		l.host.Texture(res, l.renderer.SetTexture)
	}

	l.renderPreview()

	x, y, w, h := l.backend.GetViewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, h))
	if imgui.BeginV("Parameters", nil, flags) {
		l.renderPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+panelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-panelWidth, h))
	if imgui.BeginV("Preview", nil, flags|imgui.WindowFlagsNoScrollbar) {
		l.renderImage()
	}
	imgui.End()

	l.handleKeys()
}

// renderPreview draws the current frame into the offscreen framebuffer.
func (l *Lab) renderPreview() {
	restore := l.fb.BindWithViewport()
	defer restore()

	l.renderer.Begin()
	snap := l.host.State.Snapshot()
	if err := l.viewer.Frame(snap, l.host.Camera.ViewMatrix(), l.host.Clock.Elapsed()); err != nil {
		l.log.Warn("frame", zap.Error(err))
		l.setStatus(err.Error())
	}
}

func (l *Lab) renderPanel() {
	snap := l.host.State.Snapshot()
	p := snap.Params
	changed, req := l.panel.Draw(&p, l.viewer.Stats())
	if changed {
		l.host.State.Set(p)
		l.host.SyncCamera(p)
	}
	if req.ResetView {
		l.host.Handle(viewer.ActionResetView)
	}
	if req.TogglePause {
		l.host.Handle(viewer.ActionTogglePause)
	}
	if req.Screenshot {
		l.screenshot()
	}
	if req.OpenTexture {
		l.openTextureDialog()
	}

	if l.status != "" && time.Since(l.statusTime) < statusDuration {
		imgui.Separator()
		imgui.TextWrapped(l.status)
	}
}

func (l *Lab) renderImage() {
	avail := imgui.ContentRegionAvail()
	side := min(avail.X, avail.Y)
	if side <= 0 {
		return
	}
	origin := imgui.CursorScreenPos()
	ui.Image(l.fb.ColorTexture(), side, side)

	if imgui.IsItemHovered() {
		mouse := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			l.host.Camera.HandleDrag(mouse.X-l.lastMouse.X, mouse.Y-l.lastMouse.Y)
		}
		l.lastMouse = mouse
		if imgui.IsMouseDown(imgui.MouseButtonRight) {
			l.host.PlaceCursor(l.viewer, mouse.X-origin.X, mouse.Y-origin.Y, side, side)
		}
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			l.host.Camera.HandleZoom(wheel)
		}
	}
}

// labKeys mirrors the surfview keyboard layout for the keys imgui does not
// consume.
var labKeys = map[imgui.Key]viewer.Action{
	imgui.KeyLeftArrow:  viewer.ActionCursorLeft,
	imgui.KeyRightArrow: viewer.ActionCursorRight,
	imgui.KeyUpArrow:    viewer.ActionCursorUp,
	imgui.KeyDownArrow:  viewer.ActionCursorDown,
	imgui.KeyF12:        viewer.ActionScreenshot,
}

func (l *Lab) handleKeys() {
	if imgui.CurrentIO().WantCaptureKeyboard() {
		return
	}
	for key, action := range labKeys {
		if !ui.IsKeyPressed(key) {
			continue
		}
		if l.host.Handle(action) == app.CommandScreenshot {
			l.screenshot()
		}
	}
}

func (l *Lab) screenshot() {
	name, err := l.shots.CaptureFromImage(l.fb.ReadImage())
	if err != nil {
		l.log.Warn("screenshot failed", zap.Error(err))
		l.setStatus(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	l.log.Info("screenshot saved", zap.String("path", name))
	l.setStatus("Saved " + name)
}

// openTextureDialog shows a native file dialog. The result is handed to the
// texture loader, whose output is collected on the render thread.
func (l *Lab) openTextureDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "bmp", "tga").
			Filter("All Files", "*").
			Title("Open Texture").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				l.log.Warn("file dialog", zap.Error(err))
			}
			return
		}
		l.loader.Load(filename)
	}()
}

func (l *Lab) setStatus(msg string) {
	l.status = msg
	l.statusTime = time.Now()
}
