// Package surface defines the parametric surface families, their parameter
// domains, and the finite-difference normal estimator used to mesh them.
//
// Points are computed in float64 (gonum r3) and only narrowed to float32 when
// written into GPU buffers.
package surface

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Func maps a (u,v) parameter pair to a point in space.
type Func interface {
	Eval(u, v float64) r3.Vec
}

// FuncOf adapts a plain function to Func.
type FuncOf func(u, v float64) r3.Vec

// Eval implements Func.
func (f FuncOf) Eval(u, v float64) r3.Vec { return f(u, v) }

// Surface is a Func plus everything needed to mesh it safely.
type Surface interface {
	Func

	// Family identifies the surface.
	Family() Family
	// Domain is the natural (u,v) rectangle and grid for this surface.
	Domain() Domain
	// Singularities lists where the parameterization degenerates.
	Singularities() []Singularity
	// Epsilon is the forward-difference step for normal estimation.
	Epsilon() float64
	// Orientation is +1 or -1; it multiplies dU x dV so normals face outward.
	Orientation() float64
}

// Family is the closed set of supported surfaces.
type Family int

const (
	FamilyPseudosphere Family = iota
	FamilyKleinBottle
	FamilySphere
)

// Families lists every family in declaration order.
var Families = []Family{FamilyPseudosphere, FamilyKleinBottle, FamilySphere}

func (f Family) String() string {
	switch f {
	case FamilyPseudosphere:
		return "pseudosphere"
	case FamilyKleinBottle:
		return "klein"
	case FamilySphere:
		return "sphere"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily accepts the names produced by Family.String (case-insensitive).
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pseudosphere":
		return FamilyPseudosphere, nil
	case "klein", "kleinbottle", "klein-bottle":
		return FamilyKleinBottle, nil
	case "sphere":
		return FamilySphere, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// New returns the surface for a family with its default constants.
func New(f Family) (Surface, error) {
	switch f {
	case FamilyPseudosphere:
		return Pseudosphere{}, nil
	case FamilyKleinBottle:
		return NewKleinBottle(), nil
	case FamilySphere:
		return NewSphere(1), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFamily, f)
}
