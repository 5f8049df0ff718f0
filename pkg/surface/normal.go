package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// collinearTol is the relative |dU x dV| below which tangents count as parallel.
const collinearTol = 1e-12

// Estimator derives unit normals from forward differences of a Surface.
type Estimator struct {
	s    Surface
	eps  float64
	sign float64
}

// NewEstimator uses the surface's own epsilon and orientation.
func NewEstimator(s Surface) *Estimator {
	return &Estimator{s: s, eps: s.Epsilon(), sign: s.Orientation()}
}

// Epsilon returns the difference step in use.
func (e *Estimator) Epsilon() float64 { return e.eps }

// Normal returns the unit normal at (u,v).
func (e *Estimator) Normal(u, v float64) (r3.Vec, error) {
	_, n, err := e.Sample(u, v)
	return n, err
}

// Sample returns both the point and its unit normal at (u,v).
//
//	dU = (P - f(u+ε,v)) / ε
//	dV = (P - f(u,v+ε)) / ε
//	n  = sign * normalize(dU x dV)
func (e *Estimator) Sample(u, v float64) (p, n r3.Vec, err error) {
	p = e.s.Eval(u, v)
	pu := e.s.Eval(u+e.eps, v)
	pv := e.s.Eval(u, v+e.eps)
	if !finite(p) || !finite(pu) || !finite(pv) {
		return p, r3.Vec{}, fmt.Errorf("%w: non-finite sample at (u=%g, v=%g)", ErrDomain, u, v)
	}

	inv := 1 / e.eps
	dU := r3.Scale(inv, r3.Sub(p, pu))
	dV := r3.Scale(inv, r3.Sub(p, pv))

	lu, lv := r3.Norm(dU), r3.Norm(dV)
	if lu == 0 || lv == 0 {
		return p, r3.Vec{}, fmt.Errorf("%w: zero tangent at (u=%g, v=%g)", ErrDegenerateNormal, u, v)
	}
	c := r3.Cross(dU, dV)
	lc := r3.Norm(c)
	if lc <= collinearTol*lu*lv {
		return p, r3.Vec{}, fmt.Errorf("%w: collinear tangents at (u=%g, v=%g)", ErrDegenerateNormal, u, v)
	}
	return p, r3.Scale(e.sign/lc, c), nil
}

func finite(v r3.Vec) bool {
	for _, f := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
