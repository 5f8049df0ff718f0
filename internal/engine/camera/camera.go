// Package camera provides the pointer-driven view controllers for the surface viewers.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/surfview/pkg/math"
)

// PerspectiveDistance is the eye distance used once a perspective projection
// is selected.
const PerspectiveDistance = 5

// Trackball rotates the scene with a quaternion accumulated from drags.
// Drag axes are taken in view space, so motion always follows the pointer.
type Trackball struct {
	Rotation math.Quat

	// Distance pushes the scene away from the eye; keep it 0 for
	// orthographic projections whose box is centred on the origin.
	Distance    float32
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32
}

// NewTrackball creates a trackball with no rotation.
func NewTrackball() *Trackball {
	return &Trackball{
		Rotation:        math.QuatIdentity(),
		MinDistance:     1,
		MaxDistance:     50,
		DragSensitivity: 0.01,
		ZoomSensitivity: 0.1,
	}
}

// ViewMatrix returns Translate(0,0,-Distance) × Rotation.
func (c *Trackball) ViewMatrix() math.Mat4 {
	return math.Translate(0, 0, -c.Distance).Mul(c.Rotation.ToMat4())
}

// HandleDrag rotates by a pointer delta in pixels (y grows downwards).
func (c *Trackball) HandleDrag(deltaX, deltaY float32) {
	axis := math.Vec3{X: deltaY, Y: deltaX}
	l := axis.Length()
	if l == 0 {
		return
	}
	step := math.QuatFromAxisAngle(axis.Scale(1/l), l*c.DragSensitivity)
	c.Rotation = step.Mul(c.Rotation).Normalize()
}

// HandleZoom changes Distance by a scroll delta. Has no effect while
// Distance is 0 (orthographic).
func (c *Trackball) HandleZoom(delta float32) {
	if c.Distance == 0 {
		return
	}
	c.Distance = zoom(c.Distance, delta, c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Reset clears the accumulated rotation.
func (c *Trackball) Reset() {
	c.Rotation = math.QuatIdentity()
}

// SetPerspective moves the eye back for perspective and onto the origin for
// orthographic projection.
func (c *Trackball) SetPerspective(on bool) {
	c.Distance = eyeDistance(c.Distance, on)
}

// OrbitCamera orbits the origin using yaw and pitch angles.
type OrbitCamera struct {
	// Spherical coordinates
	Distance  float32 // Distance from center, 0 for orthographic
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		RotationX:       0.3,
		MinDistance:     1,
		MaxDistance:     50,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// ViewMatrix returns Translate(0,0,-Distance) × Rx(pitch) × Ry(yaw).
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.Compose(
		math.Translate(0, 0, -c.Distance),
		math.RotateAxis(math.Vec3{X: 1}, c.RotationX),
		math.RotateAxis(math.Vec3{Y: 1}, c.RotationY),
	)
}

// Position returns the eye position in scene space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.RotationX)
	sy, cy := math32.Sincos(c.RotationY)
	return math.Vec3{
		X: -c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY += deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if c.Distance == 0 {
		return
	}
	c.Distance = zoom(c.Distance, delta, c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds picks a distance that keeps a box of the given size in view.
func (c *OrbitCamera) FitToBounds(size [3]float32) {
	maxSize := size[0]
	for _, s := range size[1:] {
		if s > maxSize {
			maxSize = s
		}
	}
	c.Distance = maxSize * 1.5
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
}

// Reset restores the default pose.
func (c *OrbitCamera) Reset() {
	c.RotationX, c.RotationY = 0.3, 0
}

// SetPerspective behaves like Trackball.SetPerspective.
func (c *OrbitCamera) SetPerspective(on bool) {
	c.Distance = eyeDistance(c.Distance, on)
}

func eyeDistance(d float32, perspective bool) float32 {
	if !perspective {
		return 0
	}
	if d == 0 {
		return PerspectiveDistance
	}
	return d
}

func zoom(d, delta, sens, lo, hi float32) float32 {
	d -= delta * d * sens
	if d < lo {
		d = lo
	}
	if d > hi {
		d = hi
	}
	return d
}
