// Package tessellate turns a parametric surface into flat triangle buffers
// ready for GPU upload.
package tessellate

import "github.com/Faultbox/surfview/pkg/surface"

// DegeneratePolicy selects what happens when a grid sample has no usable normal.
type DegeneratePolicy int

const (
	// FailOnDegenerate aborts the build; callers keep their previous mesh.
	FailOnDegenerate DegeneratePolicy = iota
	// ClampDegenerate reuses the most recent valid normal for the sample.
	ClampDegenerate
)

func (p DegeneratePolicy) String() string {
	if p == ClampDegenerate {
		return "clamp"
	}
	return "fail"
}

// Options contains options for mesh building.
type Options struct {
	Degenerate DegeneratePolicy
}

// Mesh is a non-indexed triangle list. Positions and Normals hold three
// floats per vertex, TexCoords two, all in the same vertex order.
type Mesh struct {
	Positions   []float32
	Normals     []float32
	TexCoords   []float32
	VertexCount int
	Bounds      Bounds

	Family surface.Family
	Domain surface.Domain
	// Clamped counts grid samples whose normal was borrowed under ClampDegenerate.
	Clamped int
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int { return m.VertexCount / 3 }

// Position returns vertex i's position.
func (m *Mesh) Position(i int) [3]float32 {
	return [3]float32{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
}

// Normal returns vertex i's normal.
func (m *Mesh) Normal(i int) [3]float32 {
	return [3]float32{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
}

// TexCoord returns vertex i's texture coordinate.
func (m *Mesh) TexCoord(i int) [2]float32 {
	return [2]float32{m.TexCoords[2*i], m.TexCoords[2*i+1]}
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
