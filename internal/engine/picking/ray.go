// Package picking casts rays from the screen into a tessellated surface.
package picking

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/surfview/internal/engine/tessellate"
	"github.com/Faultbox/surfview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// ScreenToRay converts pixel coordinates (y grows downwards) into a ray in
// the space invMVP maps clip coordinates back to.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invMVP math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := unproject(invMVP, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invMVP, math.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near).Normalize()
	return Ray{Origin: near.Array(), Direction: dir.Array()}
}

func unproject(inv math.Mat4, v math.Vec4) math.Vec3 {
	r := inv.MulVec4(v)
	if r[3] != 0 {
		r[0] /= r[3]
		r[1] /= r[3]
		r[2] /= r[3]
	}
	return math.Vec3{X: r[0], Y: r[1], Z: r[2]}
}

// IntersectBounds tests the ray against an axis-aligned box with the slab
// method. It returns the entry distance, or the exit distance if the ray
// starts inside.
func (r Ray) IntersectBounds(b tessellate.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for i := 0; i < 3; i++ {
		if r.Direction[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[i] - r.Origin[i]) / r.Direction[i]
		t2 := (b.Max[i] - r.Origin[i]) / r.Direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to triangle (a,b,c) and the
// barycentric weights of b and c at the hit. Both faces are hit.
func (r Ray) IntersectTriangle(a, b, c [3]float32) (t, wb, wc float32, hit bool) {
	const eps = 1e-7
	o, d := vec(r.Origin), vec(r.Direction)
	va := vec(a)
	e1 := vec(b).Sub(va)
	e2 := vec(c).Sub(va)

	p := d.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, 0, 0, false
	}
	inv := 1 / det

	s := o.Sub(va)
	wb = s.Dot(p) * inv
	if wb < 0 || wb > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(e1)
	wc = d.Dot(q) * inv
	if wc < 0 || wb+wc > 1 {
		return 0, 0, 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, 0, 0, false
	}
	return t, wb, wc, true
}

func vec(v [3]float32) math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// Hit is the nearest intersection of a ray with a mesh.
type Hit struct {
	T        float32
	Triangle int
	Point    [3]float32
	TexCoord [2]float32
}

// PickMesh returns the nearest triangle of m hit by r, with texture
// coordinates interpolated at the hit point.
func PickMesh(r Ray, m *tessellate.Mesh) (Hit, bool) {
	if m == nil || m.VertexCount == 0 {
		return Hit{}, false
	}
	if _, ok := r.IntersectBounds(m.Bounds); !ok {
		return Hit{}, false
	}

	best := Hit{T: gomath.MaxFloat32, Triangle: -1}
	for tri := 0; tri < m.Triangles(); tri++ {
		i := tri * 3
		t, wb, wc, ok := r.IntersectTriangle(m.Position(i), m.Position(i+1), m.Position(i+2))
		if !ok || t >= best.T {
			continue
		}
		ta, tb, tc := m.TexCoord(i), m.TexCoord(i+1), m.TexCoord(i+2)
		wa := 1 - wb - wc
		best = Hit{
			T:        t,
			Triangle: tri,
			Point:    r.At(t),
			TexCoord: [2]float32{
				wa*ta[0] + wb*tb[0] + wc*tc[0],
				wa*ta[1] + wb*tb[1] + wc*tc[1],
			},
		}
	}
	return best, best.Triangle >= 0
}
