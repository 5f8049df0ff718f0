package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/engine/lighting"
	"github.com/Faultbox/surfview/internal/engine/picking"
	"github.com/Faultbox/surfview/internal/engine/tessellate"
	"github.com/Faultbox/surfview/internal/engine/transform"
	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/pkg/math"
	"github.com/Faultbox/surfview/pkg/surface"
)

// CursorColor is the fill of the cursor marker.
var CursorColor = lighting.MustParseHex("#f0d020")

// Stats describes the state after the most recent frame.
type Stats struct {
	Revision  uint64
	Triangles int
	Clamped   int
	Rebuilds  int
	DrawCalls int
	// LastError is the most recent rebuild failure, nil once a rebuild succeeds.
	LastError error
}

// Viewer turns snapshots into draw calls. It is not safe for concurrent use;
// call it from the frame loop only.
type Viewer struct {
	backend Backend
	log     *zap.Logger

	aspect float32

	key     frame.MeshKey
	keyed   bool
	surf    surface.Surface
	domain  surface.Domain
	mesh    *tessellate.Mesh
	markers bool

	stats Stats
}

// New creates a viewer drawing through b.
func New(b Backend) *Viewer {
	return &Viewer{backend: b, log: logger.Named("viewer"), aspect: 1}
}

// SetViewport records the output size so projections keep their aspect.
func (v *Viewer) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		v.aspect = float32(width) / float32(height)
	}
}

// Mesh returns the surface mesh currently uploaded, or nil.
func (v *Viewer) Mesh() *tessellate.Mesh { return v.mesh }

// Stats returns the statistics of the last frame.
func (v *Viewer) Stats() Stats { return v.stats }

// Frame draws one frame. The result depends only on (snap, view, t) and the
// meshes built from earlier snapshots.
//
// A failed rebuild is returned as an error, but the previous mesh keeps
// being drawn and the same parameters are not retried.
func (v *Viewer) Frame(snap frame.Snapshot, view math.Mat4, t float64) error {
	v.stats.Revision = snap.Revision
	v.stats.DrawCalls = 0

	if !v.markers {
		if err := v.buildMarker(); err != nil {
			return err
		}
	}

	var rebuildErr error
	if key := snap.MeshKey(); !v.keyed || key != v.key {
		v.key, v.keyed = key, true
		rebuildErr = v.rebuild(snap.Params)
		v.stats.LastError = rebuildErr
	}

	if err := v.draw(snap.Params, view, t); err != nil {
		return err
	}
	return rebuildErr
}

func (v *Viewer) buildMarker() error {
	s := surface.NewSphere(surface.DefaultMarkerRadius)
	m, err := tessellate.Build(s, s.Domain(), tessellate.Options{})
	if err != nil {
		return fmt.Errorf("marker mesh: %w", err)
	}
	if err := v.backend.Upload(SlotMarker, m); err != nil {
		return fmt.Errorf("marker upload: %w", err)
	}
	v.markers = true
	return nil
}

func (v *Viewer) rebuild(p frame.Params) error {
	s, err := surface.New(p.Family)
	if err != nil {
		v.log.Warn("surface rejected", zap.Error(err))
		return err
	}
	d := p.Domain(s)
	m, err := tessellate.Build(s, d, p.BuildOptions())
	if err != nil {
		v.log.Warn("mesh rebuild failed, keeping previous mesh",
			zap.Stringer("family", p.Family),
			zap.Stringer("domain", d),
			zap.Error(err))
		return err
	}
	if err := v.backend.Upload(SlotSurface, m); err != nil {
		return fmt.Errorf("surface upload: %w", err)
	}

	v.surf, v.domain, v.mesh = s, d, m
	v.stats.Rebuilds++
	v.stats.Triangles = m.Triangles()
	v.stats.Clamped = m.Clamped
	v.log.Info("mesh rebuilt",
		zap.Stringer("family", p.Family),
		zap.Int("triangles", m.Triangles()),
		zap.Int("clamped", m.Clamped))
	return nil
}

func (v *Viewer) draw(p frame.Params, view math.Mat4, t float64) error {
	pl := transform.NewPipeline(p.Projection.WithAspect(v.aspect))
	if err := pl.Projection.Validate(); err != nil {
		return err
	}

	// Lights live in eye space relative to the model origin; the orbiting
	// light aims its cone at the origin.
	origin := pl.ModelView(view, transform.Static()).TransformVec3(math.Vec3{})
	lightPos, lightDir := p.Light.Position, p.Light.Direction()
	if p.ShowLight {
		lightPos = p.LightOrbit.Position(t)
		if lightPos.Length() > 0 {
			lightDir = lightPos.Normalize()
		}
	}
	base := DrawCall{
		NormalMatrix: pl.NormalMatrix(view),
		LightColor:   p.Light.Color,
		LightDir:     lightDir.Array(),
		LightPos:     lightPos.Add(origin).Array(),
		Angle:        p.Angle,
		Diffusion:    p.Diffusion,
	}

	if v.mesh != nil {
		dc := base
		dc.Slot = SlotSurface
		dc.Color = p.SurfaceColor.RGBA(1)
		dc.TexOffset = [2]float32{p.TexOffset.X, p.TexOffset.Y}
		dc.UseTexture = p.UseTexture
		v.emit(pl, view, transform.Static(), t, dc)
	}

	if p.ShowLight {
		dc := base
		dc.Slot = SlotMarker
		dc.Color = p.Light.Color.RGBA(1)
		dc.Unlit = true
		v.emit(pl, view, transform.Orbiting(p.LightOrbit), t, dc)
	}

	if p.ShowCursor && v.surf != nil {
		u, w := p.CursorUV(v.domain)
		pt := v.surf.Eval(u, w)
		dc := base
		dc.Slot = SlotMarker
		dc.Color = CursorColor.RGBA(1)
		dc.Unlit = true
		at := transform.At(math.Vec3{X: float32(pt.X), Y: float32(pt.Y), Z: float32(pt.Z)})
		v.emit(pl, view, at, t, dc)
	}
	return nil
}

func (v *Viewer) emit(pl transform.Pipeline, view math.Mat4, at transform.Placement, t float64, dc DrawCall) {
	mvp, err := pl.Compose(view, at, t)
	if err != nil {
		// Projection was validated for this frame.
		return
	}
	dc.MVP = mvp
	dc.ModelView = pl.ModelView(view, at)
	v.backend.Draw(dc)
	v.stats.DrawCalls++
}

// Pick returns the normalized cursor position of the surface point under
// pixel (x, y) of a width×height viewport, as drawn with p and view. The hit's
// texcoord is already a fraction of the domain bounds, as CursorUV expects.
func (v *Viewer) Pick(p frame.Params, view math.Mat4, x, y, width, height float32) (math.Vec2, bool) {
	if v.mesh == nil || width <= 0 || height <= 0 {
		return math.Vec2{}, false
	}
	pl := transform.NewPipeline(p.Projection.WithAspect(v.aspect))
	mvp, err := pl.Compose(view, transform.Static(), 0)
	if err != nil {
		return math.Vec2{}, false
	}
	inv, ok := mvp.Inverse()
	if !ok {
		return math.Vec2{}, false
	}
	hit, ok := picking.PickMesh(picking.ScreenToRay(x, y, width, height, inv), v.mesh)
	if !ok {
		return math.Vec2{}, false
	}
	return math.Vec2{X: hit.TexCoord[0], Y: hit.TexCoord[1]}.Clamp01(), true
}
