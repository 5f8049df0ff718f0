package surface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// KleinBottle is the figure-8 immersion of the Klein bottle.
//
// The tube angle of the figure-8 form only closes after 4π, so u is mapped
// onto it as θ = 2u. Over u, v in [0,2π) the parameterization is periodic in
// both directions and covers the bottle twice.
type KleinBottle struct {
	A     float64 // tube centre radius
	Scale float64 // uniform output scale
}

// NewKleinBottle returns a bottle sized to fit a [-2,2] view box.
func NewKleinBottle() KleinBottle {
	return KleinBottle{A: 3, Scale: 0.4}
}

// Eval implements Func.
func (k KleinBottle) Eval(u, v float64) r3.Vec {
	theta := 2 * u
	sh, ch := math.Sincos(theta / 2)
	sv, s2v := math.Sin(v), math.Sin(2*v)

	r := k.A + ch*sv - sh*s2v
	st, ct := math.Sincos(theta)
	return r3.Scale(k.Scale, r3.Vec{
		X: r * ct,
		Y: r * st,
		Z: sh*sv + ch*s2v,
	})
}

// Family implements Surface.
func (KleinBottle) Family() Family { return FamilyKleinBottle }

// Domain is u, v in [0°,360°) with a 10° increment (36x36 cells).
func (KleinBottle) Domain() Domain {
	return DomainDegrees(0, 360, 0, 360, 10, 10)
}

// Singularities implements Surface. The immersion is regular everywhere.
func (KleinBottle) Singularities() []Singularity { return nil }

// Epsilon implements Surface.
func (KleinBottle) Epsilon() float64 { return 1e-4 }

// Orientation implements Surface. The bottle is non-orientable; dU x dV is
// used unchanged so the sign is at least uniform across the grid.
func (KleinBottle) Orientation() float64 { return 1 }
