package surface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMarkerRadius is the radius of light and cursor marker spheres.
const DefaultMarkerRadius = 0.05

// Sphere is a sphere about the origin: u is the polar angle, v the
// longitude. In that order dU x dV points away from the centre. The light
// and cursor markers are spheres of DefaultMarkerRadius.
type Sphere struct {
	Radius float64
}

// NewSphere returns a sphere of radius r.
func NewSphere(r float64) Sphere {
	return Sphere{Radius: r}
}

// Eval implements Func.
func (s Sphere) Eval(u, v float64) r3.Vec {
	su, cu := math.Sincos(u)
	sv, cv := math.Sincos(v)
	return r3.Vec{
		X: s.Radius * su * cv,
		Y: s.Radius * su * sv,
		Z: s.Radius * cu,
	}
}

// Family implements Surface.
func (Sphere) Family() Family { return FamilySphere }

// Domain covers the polar band [5°,175°) and all longitudes.
func (Sphere) Domain() Domain {
	return DomainDegrees(5, 175, 0, 360, 10, 15)
}

// Singularities are the two poles, where the longitude tangent vanishes.
func (Sphere) Singularities() []Singularity {
	return []Singularity{ULine{U: 0}, ULine{U: math.Pi}}
}

// Epsilon implements Surface.
func (Sphere) Epsilon() float64 { return 1e-4 }

// Orientation implements Surface.
func (Sphere) Orientation() float64 { return 1 }
