package tessellate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/surfview/pkg/surface"
)

// Build meshes s over d with two triangles per cell.
//
// For the cell with corner (u,v):
//
//	T1 = (u,v) (u+Δu,v) (u,v+Δv)
//	T2 = (u,v+Δv) (u+Δu,v) (u+Δu,v+Δv)
//
// The domain is checked before any sampling, so a rejected domain never
// yields a partial mesh.
func Build(s surface.Surface, d surface.Domain, opts Options) (*Mesh, error) {
	if err := surface.CheckDomain(s, d); err != nil {
		return nil, fmt.Errorf("tessellate %v: %w", s.Family(), err)
	}
	cu, cv := d.Cells()

	g, err := sampleGrid(s, d, cu, cv, opts.Degenerate)
	if err != nil {
		return nil, fmt.Errorf("tessellate %v: %w", s.Family(), err)
	}

	n := 2 * cu * cv * 3
	m := &Mesh{
		Positions:   make([]float32, 0, 3*n),
		Normals:     make([]float32, 0, 3*n),
		TexCoords:   make([]float32, 0, 2*n),
		VertexCount: n,
		Bounds:      emptyBounds(),
		Family:      s.Family(),
		Domain:      d,
		Clamped:     g.clamped,
	}
	g.tex = make([][2]float32, len(g.pts))
	for i := 0; i <= cu; i++ {
		for j := 0; j <= cv; j++ {
			s, t := d.Fraction(d.U(i), d.V(j))
			g.tex[g.at(i, j)] = [2]float32{float32(s), float32(t)}
		}
	}

	for i := 0; i < cu; i++ {
		for j := 0; j < cv; j++ {
			m.add(g, i, j)
			m.add(g, i+1, j)
			m.add(g, i, j+1)

			m.add(g, i, j+1)
			m.add(g, i+1, j)
			m.add(g, i+1, j+1)
		}
	}
	return m, nil
}

// grid holds every (i,j) sample of a domain, evaluated once. Texcoords are
// the sample's fraction of the full domain bounds, so a step that does not
// tile the span leaves the far edge short of 1.
type grid struct {
	cu, cv  int
	pts     []r3.Vec
	normals []r3.Vec
	tex     [][2]float32
	clamped int
}

func (g *grid) at(i, j int) int { return i*(g.cv+1) + j }

func sampleGrid(s surface.Surface, d surface.Domain, cu, cv int, policy DegeneratePolicy) (*grid, error) {
	est := surface.NewEstimator(s)
	g := &grid{
		cu:      cu,
		cv:      cv,
		pts:     make([]r3.Vec, (cu+1)*(cv+1)),
		normals: make([]r3.Vec, (cu+1)*(cv+1)),
	}

	var last r3.Vec
	var pending []int // clamped before any valid normal was seen
	valid := false

	for i := 0; i <= cu; i++ {
		for j := 0; j <= cv; j++ {
			k := g.at(i, j)
			p, n, err := est.Sample(d.U(i), d.V(j))
			switch {
			case err == nil:
				if !valid {
					for _, pk := range pending {
						g.normals[pk] = n
					}
					pending = nil
					valid = true
				}
				last = n
			case policy == ClampDegenerate && errors.Is(err, surface.ErrDegenerateNormal):
				g.clamped++
				if valid {
					n = last
				} else {
					pending = append(pending, k)
				}
			default:
				return nil, err
			}
			g.pts[k] = p
			g.normals[k] = n
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: no valid normal anywhere in %v", surface.ErrDegenerateNormal, d)
	}
	return g, nil
}

func (m *Mesh) add(g *grid, i, j int) {
	k := g.at(i, j)
	p, n := g.pts[k], g.normals[k]

	pos := [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	updateBounds(&m.Bounds, pos)

	m.Positions = append(m.Positions, pos[0], pos[1], pos[2])
	m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	m.TexCoords = append(m.TexCoords, g.tex[k][0], g.tex[k][1])
}
