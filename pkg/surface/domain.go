package surface

import (
	"fmt"
	"math"
)

// cellTolerance absorbs float error when a step evenly divides its span,
// e.g. 2π / (π/18) evaluating to 35.999999999.
const cellTolerance = 1e-9

// Domain is a (u,v) rectangle sampled with a fixed step per axis.
// Sampling starts at the minimum corner; the maximum edge is reached only when
// the step tiles the span exactly.
type Domain struct {
	UMin, UMax float64
	VMin, VMax float64
	UStep      float64
	VStep      float64
}

// DomainDegrees builds a domain from bounds and increments given in degrees.
func DomainDegrees(uMin, uMax, vMin, vMax, incU, incV float64) Domain {
	rad := math.Pi / 180
	return Domain{
		UMin: uMin * rad, UMax: uMax * rad,
		VMin: vMin * rad, VMax: vMax * rad,
		UStep: incU * rad, VStep: incV * rad,
	}
}

// WithCells keeps the bounds and picks steps that give nu x nv cells.
func (d Domain) WithCells(nu, nv int) Domain {
	if nu > 0 {
		d.UStep = (d.UMax - d.UMin) / float64(nu)
	}
	if nv > 0 {
		d.VStep = (d.VMax - d.VMin) / float64(nv)
	}
	return d
}

// Cells returns floor(span/step) per axis.
func (d Domain) Cells() (cu, cv int) {
	return cells(d.UMax-d.UMin, d.UStep), cells(d.VMax-d.VMin, d.VStep)
}

func cells(span, step float64) int {
	if step <= 0 || span <= 0 {
		return 0
	}
	n := span / step
	return int(math.Floor(n + n*cellTolerance))
}

// Triangles is the number of triangles a tessellation of d emits.
func (d Domain) Triangles() int {
	cu, cv := d.Cells()
	return 2 * cu * cv
}

// U returns the i-th sample coordinate along u, computed without accumulation.
func (d Domain) U(i int) float64 { return d.UMin + float64(i)*d.UStep }

// V returns the j-th sample coordinate along v.
func (d Domain) V(j int) float64 { return d.VMin + float64(j)*d.VStep }

// Fraction maps (u,v) to its position within the full bounds, (0,0) at the
// minimum corner and (1,1) at UMax, VMax.
func (d Domain) Fraction(u, v float64) (s, t float64) {
	return (u - d.UMin) / (d.UMax - d.UMin), (v - d.VMin) / (d.VMax - d.VMin)
}

// Lerp is the inverse of Fraction.
func (d Domain) Lerp(s, t float64) (u, v float64) {
	return d.UMin + s*(d.UMax-d.UMin), d.VMin + t*(d.VMax-d.VMin)
}

// Validate rejects non-finite bounds, non-positive steps, empty spans and
// steps larger than their span.
func (d Domain) Validate() error {
	for _, f := range [...]float64{d.UMin, d.UMax, d.VMin, d.VMax, d.UStep, d.VStep} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound or step in %v", ErrDomain, d)
		}
	}
	if d.UStep <= 0 || d.VStep <= 0 {
		return fmt.Errorf("%w: steps must be positive (du=%g, dv=%g)", ErrDomain, d.UStep, d.VStep)
	}
	if d.UMax <= d.UMin || d.VMax <= d.VMin {
		return fmt.Errorf("%w: empty span u=[%g,%g) v=[%g,%g)", ErrDomain, d.UMin, d.UMax, d.VMin, d.VMax)
	}
	cu, cv := d.Cells()
	if cu == 0 || cv == 0 {
		return fmt.Errorf("%w: step exceeds span (cells %dx%d)", ErrDomain, cu, cv)
	}
	return nil
}

// Sampled returns the rectangle actually touched when meshing d with the
// forward-difference step eps: the grid corners plus one eps beyond each.
func (d Domain) Sampled(eps float64) Rect {
	cu, cv := d.Cells()
	return Rect{
		UMin: d.UMin, UMax: d.U(cu) + eps,
		VMin: d.VMin, VMax: d.V(cv) + eps,
	}
}

func (d Domain) String() string {
	return fmt.Sprintf("u=[%g,%g) step %g, v=[%g,%g) step %g",
		d.UMin, d.UMax, d.UStep, d.VMin, d.VMax, d.VStep)
}

// Rect is a closed (u,v) rectangle.
type Rect struct {
	UMin, UMax float64
	VMin, VMax float64
}

// CheckDomain validates d and verifies that meshing s over it never samples
// within Epsilon of a declared singularity.
func CheckDomain(s Surface, d Domain) error {
	if err := d.Validate(); err != nil {
		return err
	}
	eps := s.Epsilon()
	r := d.Sampled(eps)
	for _, sg := range s.Singularities() {
		if dist := sg.Distance(r); dist <= eps {
			return fmt.Errorf("%w: %v is %.3g from sampled region (guard %g)", ErrSingularity, sg, dist, eps)
		}
	}
	return nil
}
