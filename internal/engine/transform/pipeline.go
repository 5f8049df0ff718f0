package transform

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/surfview/pkg/math"
)

// ReferenceAxis and ReferenceAngle define the fixed rotation that aligns
// every surface to the same starting pose.
var (
	ReferenceAxis  = math.Vec3{X: 0.707, Y: 0.707, Z: 0}
	ReferenceAngle = float32(0.7)
)

// DefaultRotation is RotateAxis(ReferenceAxis, ReferenceAngle).
func DefaultRotation() math.Mat4 {
	return math.RotateAxis(ReferenceAxis, ReferenceAngle)
}

// Orbit moves a placement around the z axis at angular speed Speed (rad/s).
type Orbit struct {
	Radius float32
	Speed  float32
	Z      float32
}

// Position is (r·cos ωt, r·sin ωt, z). It depends only on t.
func (o Orbit) Position(t float64) math.Vec3 {
	s, c := math32.Sincos(float32(t) * o.Speed)
	return math.Vec3{X: o.Radius * c, Y: o.Radius * s, Z: o.Z}
}

// Placement positions one drawn object.
type Placement struct {
	// Translation is applied after rotation and view unless Orbit is set.
	Translation math.Vec3
	// Orbit, when non-nil, replaces Translation with Orbit.Position(t).
	Orbit *Orbit
	// Offset moves the object in model space before anything else, e.g. a
	// marker placed at a point on the surface.
	Offset math.Vec3
}

// Static is a placement with no translation or offset.
func Static() Placement { return Placement{} }

// At places an object at a model-space point.
func At(p math.Vec3) Placement { return Placement{Offset: p} }

// Orbiting places an object on orbit o.
func Orbiting(o Orbit) Placement { return Placement{Orbit: &o} }

// TranslationAt returns the translation in effect at time t.
func (p Placement) TranslationAt(t float64) math.Vec3 {
	if p.Orbit != nil {
		return p.Orbit.Position(t)
	}
	return p.Translation
}

// Pipeline composes MVP = Projection × Translation × Rotation × View × Model.
type Pipeline struct {
	Projection Projection
	Rotation   math.Mat4
}

// NewPipeline returns a pipeline using DefaultRotation.
func NewPipeline(p Projection) Pipeline {
	return Pipeline{Projection: p, Rotation: DefaultRotation()}
}

// Compose returns the MVP for one placement at elapsed time t (seconds).
// view is read, never modified.
func (p Pipeline) Compose(view math.Mat4, pl Placement, t float64) (math.Mat4, error) {
	proj, err := p.Projection.Matrix()
	if err != nil {
		return math.Mat4{}, err
	}
	return math.Compose(
		proj,
		math.TranslateVec3(pl.TranslationAt(t)),
		p.Rotation,
		view,
		math.TranslateVec3(pl.Offset),
	), nil
}

// ModelView returns Rotation × View × Model, the space lighting is done in.
// Orbit translations live in the same space, so an orbiting light's position
// can be used directly.
func (p Pipeline) ModelView(view math.Mat4, pl Placement) math.Mat4 {
	return math.Compose(p.Rotation, view, math.TranslateVec3(pl.Offset))
}

// NormalMatrix returns the rotation part of Rotation × View, which carries
// normals into the space the light is expressed in.
func (p Pipeline) NormalMatrix(view math.Mat4) [9]float32 {
	return p.Rotation.Mul(view).Mat3()
}
