package surface

import "gonum.org/v1/gonum/spatial/r3"

// Pseudosphere is the rational pseudosphere-like surface with z = u.
// The shared denominator 6(u²+v²) vanishes at the origin.
type Pseudosphere struct{}

// Eval implements Func.
func (Pseudosphere) Eval(u, v float64) r3.Vec {
	u2, v2 := u*u, v*v
	u3, v3 := u2*u, v2*v
	u4, v4 := u2*u2, v2*v2
	den := 6 * (u2 + v2)

	x := (-3*u - u4*u + 2*u3*v2 + 3*u*v4) / den
	y := (-3*v - 3*u4*v - 2*u2*v3 + v4*v) / den
	return r3.Vec{X: x, Y: y, Z: u}
}

// Family implements Surface.
func (Pseudosphere) Family() Family { return FamilyPseudosphere }

// Domain is u in [-1,1), v in [0.2,1) on a 100x100 grid.
// v stays clear of the singular origin.
func (Pseudosphere) Domain() Domain {
	return Domain{UMin: -1, UMax: 1, VMin: 0.2, VMax: 1, UStep: 0.02, VStep: 0.008}
}

// Singularities implements Surface.
func (Pseudosphere) Singularities() []Singularity {
	return []Singularity{Point{U: 0, V: 0}}
}

// Epsilon implements Surface.
func (Pseudosphere) Epsilon() float64 { return 1e-3 }

// Orientation keeps the parameter orientation ∂f/∂u × ∂f/∂v. The surface is
// open and crosses itself, so it has no inside and no outward side to match.
func (Pseudosphere) Orientation() float64 { return 1 }
