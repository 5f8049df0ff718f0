// Package transform composes projection, view and model matrices into the
// single MVP matrix each draw call needs.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/surfview/pkg/math"
)

// ErrInvalidProjection reports projection parameters that cannot form a matrix.
var ErrInvalidProjection = errors.New("invalid projection")

// ProjectionKind selects orthographic or perspective projection.
type ProjectionKind int

const (
	Orthographic ProjectionKind = iota
	Perspective
)

func (k ProjectionKind) String() string {
	if k == Perspective {
		return "perspective"
	}
	return "orthographic"
}

// ParseProjectionKind accepts "ortho", "orthographic" or "perspective".
func ParseProjectionKind(s string) (ProjectionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ortho", "orthographic":
		return Orthographic, nil
	case "perspective", "persp":
		return Perspective, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidProjection, s)
}

// Projection describes either an orthographic box or a perspective frustum.
// Only the fields of the active Kind are read.
type Projection struct {
	Kind ProjectionKind

	// Orthographic box bounds.
	Left, Right, Bottom, Top float32
	// Near and Far are shared by both kinds.
	Near, Far float32

	// Perspective frustum.
	FovY   float32 // radians
	Aspect float32
}

// OrthoProjection returns an orthographic projection of the given box.
func OrthoProjection(left, right, bottom, top, near, far float32) Projection {
	return Projection{
		Kind: Orthographic,
		Left: left, Right: right,
		Bottom: bottom, Top: top,
		Near: near, Far: far,
	}
}

// SymmetricOrtho returns the cube [-p,p]³.
func SymmetricOrtho(p float32) Projection {
	return OrthoProjection(-p, p, -p, p, -p, p)
}

// PerspectiveProjection returns a frustum with vertical field of view fovY.
func PerspectiveProjection(fovY, aspect, near, far float32) Projection {
	return Projection{Kind: Perspective, FovY: fovY, Aspect: aspect, Near: near, Far: far}
}

// WithAspect returns p adjusted to a viewport's width/height ratio.
// Orthographic boxes widen horizontally so the vertical extent is kept.
func (p Projection) WithAspect(aspect float32) Projection {
	if aspect <= 0 || math32.IsNaN(aspect) {
		return p
	}
	switch p.Kind {
	case Perspective:
		p.Aspect = aspect
	case Orthographic:
		cx := (p.Left + p.Right) / 2
		half := (p.Top - p.Bottom) / 2 * aspect
		p.Left, p.Right = cx-half, cx+half
	}
	return p
}

// Validate checks that the projection yields a finite, invertible matrix.
func (p Projection) Validate() error {
	switch p.Kind {
	case Orthographic:
		if p.Right == p.Left || p.Top == p.Bottom || p.Far == p.Near {
			return fmt.Errorf("%w: zero-width ortho box [%g,%g]x[%g,%g]x[%g,%g]",
				ErrInvalidProjection, p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
		}
	case Perspective:
		if p.FovY <= 0 || p.FovY >= math32.Pi {
			return fmt.Errorf("%w: fovY %g outside (0,π)", ErrInvalidProjection, p.FovY)
		}
		if p.Aspect <= 0 {
			return fmt.Errorf("%w: aspect %g", ErrInvalidProjection, p.Aspect)
		}
		if p.Near <= 0 || p.Far <= p.Near {
			return fmt.Errorf("%w: need 0 < near < far, got near=%g far=%g", ErrInvalidProjection, p.Near, p.Far)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidProjection, int(p.Kind))
	}
	return nil
}

// Matrix validates p and builds its projection matrix.
func (p Projection) Matrix() (math.Mat4, error) {
	if err := p.Validate(); err != nil {
		return math.Mat4{}, err
	}
	if p.Kind == Perspective {
		return math.Perspective(p.FovY, p.Aspect, p.Near, p.Far), nil
	}
	return math.Ortho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far), nil
}
