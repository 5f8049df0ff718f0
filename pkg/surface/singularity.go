package surface

import (
	"fmt"
	"math"
)

// Singularity is a place in (u,v) where a parameterization degenerates.
type Singularity interface {
	// Distance is the parameter-space distance from the singularity to r,
	// zero when r contains it.
	Distance(r Rect) float64
	fmt.Stringer
}

// Point is an isolated singular (u,v).
type Point struct {
	U, V float64
}

// Distance implements Singularity.
func (p Point) Distance(r Rect) float64 {
	du := gap(p.U, r.UMin, r.UMax)
	dv := gap(p.V, r.VMin, r.VMax)
	return math.Hypot(du, dv)
}

func (p Point) String() string { return fmt.Sprintf("point(u=%g, v=%g)", p.U, p.V) }

// ULine is singular for every v at a fixed u, like a sphere pole.
type ULine struct {
	U float64
}

// Distance implements Singularity.
func (l ULine) Distance(r Rect) float64 { return gap(l.U, r.UMin, r.UMax) }

func (l ULine) String() string { return fmt.Sprintf("line(u=%g)", l.U) }

// VLine is singular for every u at a fixed v.
type VLine struct {
	V float64
}

// Distance implements Singularity.
func (l VLine) Distance(r Rect) float64 { return gap(l.V, r.VMin, r.VMax) }

func (l VLine) String() string { return fmt.Sprintf("line(v=%g)", l.V) }

// gap is the distance from x to the interval [lo,hi].
func gap(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo - x
	case x > hi:
		return x - hi
	}
	return 0
}
