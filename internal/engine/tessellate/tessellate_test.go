package tessellate

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/surfview/pkg/surface"
)

// cone has a degenerate normal along its apex row u=0.
type cone struct{}

func (cone) Eval(u, v float64) r3.Vec {
	s, c := math.Sincos(v)
	return r3.Vec{X: u * c, Y: u * s, Z: u}
}
func (cone) Family() surface.Family { return surface.FamilySphere }
func (cone) Domain() surface.Domain {
	return surface.Domain{UMin: 0, UMax: 1, VMin: 0, VMax: 1, UStep: 0.25, VStep: 0.25}
}
func (cone) Singularities() []surface.Singularity { return nil }
func (cone) Epsilon() float64                     { return 1e-4 }
func (cone) Orientation() float64                 { return 1 }

func mustBuild(t *testing.T, f surface.Family) *Mesh {
	t.Helper()
	s, err := surface.New(f)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Build(s, s.Domain(), Options{})
	if err != nil {
		t.Fatalf("Build(%v): %v", f, err)
	}
	return m
}

func TestBuildCounts(t *testing.T) {
	tests := []struct {
		family    surface.Family
		triangles int
	}{
		{surface.FamilyPseudosphere, 20000},
		{surface.FamilyKleinBottle, 2592},
		{surface.FamilySphere, 2 * 17 * 24},
	}
	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			m := mustBuild(t, tt.family)
			if m.Triangles() != tt.triangles {
				t.Errorf("Triangles() = %d, want %d", m.Triangles(), tt.triangles)
			}
			if m.VertexCount != 3*tt.triangles {
				t.Errorf("VertexCount = %d, want %d", m.VertexCount, 3*tt.triangles)
			}
			if len(m.Positions) != 3*m.VertexCount || len(m.Normals) != len(m.Positions) {
				t.Errorf("len(Positions)=%d len(Normals)=%d, want %d", len(m.Positions), len(m.Normals), 3*m.VertexCount)
			}
			if len(m.TexCoords) != 2*m.VertexCount {
				t.Errorf("len(TexCoords) = %d, want %d", len(m.TexCoords), 2*m.VertexCount)
			}
			if cap(m.Positions) != len(m.Positions) {
				t.Errorf("position buffer grew past its preallocation: cap %d len %d", cap(m.Positions), len(m.Positions))
			}
		})
	}
}

func TestReferenceGrid(t *testing.T) {
	m := mustBuild(t, surface.FamilyPseudosphere)
	if m.Triangles() != 20000 || m.VertexCount != 60000 || len(m.Positions) != 180000 {
		t.Errorf("got %d triangles, %d vertices, %d floats; want 20000, 60000, 180000",
			m.Triangles(), m.VertexCount, len(m.Positions))
	}
}

func TestFirstCellLayout(t *testing.T) {
	s := surface.Pseudosphere{}
	d := s.Domain()
	m := mustBuild(t, surface.FamilyPseudosphere)

	corners := [6][2]int{{0, 0}, {1, 0}, {0, 1}, {0, 1}, {1, 0}, {1, 1}}
	for k, c := range corners {
		p := s.Eval(d.U(c[0]), d.V(c[1]))
		want := [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
		if got := m.Position(k); got != want {
			t.Errorf("vertex %d = %v, want corner %v = %v", k, got, c, want)
		}
		wantUV := [2]float32{float32(c[0]) / 100, float32(c[1]) / 100}
		if got := m.TexCoord(k); math.Abs(float64(got[0]-wantUV[0])) > 1e-6 || math.Abs(float64(got[1]-wantUV[1])) > 1e-6 {
			t.Errorf("texcoord %d = %v, want %v", k, got, wantUV)
		}
	}
}

func TestTexCoordsFollowDomainBounds(t *testing.T) {
	// 0.3 tiles neither span: 6x2 cells stop at u=0.8, v=0.8.
	d := surface.Domain{UMin: -1, UMax: 1, VMin: 0.2, VMax: 1, UStep: 0.3, VStep: 0.3}
	s := surface.Pseudosphere{}
	m, err := Build(s, d, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Triangles() != 24 {
		t.Fatalf("triangles = %d, want 24", m.Triangles())
	}

	tests := []struct {
		name   string
		vertex int
		want   [2]float32
	}{
		{"first corner", 0, [2]float32{0, 0}},
		{"far corner", m.VertexCount - 1, [2]float32{0.9, 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.TexCoord(tt.vertex)
			if math.Abs(float64(got[0]-tt.want[0])) > 1e-6 || math.Abs(float64(got[1]-tt.want[1])) > 1e-6 {
				t.Errorf("texcoord = %v, want %v", got, tt.want)
			}
		})
	}

	// Every texcoord maps back onto the parameters of its vertex.
	for k := 0; k < m.VertexCount; k++ {
		tc := m.TexCoord(k)
		u, v := d.Lerp(float64(tc[0]), float64(tc[1]))
		p := s.Eval(u, v)
		got := m.Position(k)
		if math.Abs(p.X-float64(got[0])) > 1e-4 || math.Abs(p.Y-float64(got[1])) > 1e-4 || math.Abs(p.Z-float64(got[2])) > 1e-4 {
			t.Fatalf("vertex %d at %v, texcoord %v evaluates to %v", k, got, tc, p)
		}
	}
}

func TestTexCoordsInUnitSquare(t *testing.T) {
	m := mustBuild(t, surface.FamilyKleinBottle)
	for i, f := range m.TexCoords {
		if f < 0 || f > 1 {
			t.Fatalf("TexCoords[%d] = %g outside [0,1]", i, f)
		}
	}
}

func TestUniformWinding(t *testing.T) {
	for _, f := range surface.Families {
		t.Run(f.String(), func(t *testing.T) {
			m := mustBuild(t, f)
			for tri := 0; tri < m.Triangles(); tri++ {
				a, b, c := m.TexCoord(3*tri), m.TexCoord(3*tri+1), m.TexCoord(3*tri+2)
				area := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
				if area <= 0 {
					t.Fatalf("triangle %d has parameter-space area %g", tri, area)
				}
			}
		})
	}
}

func TestFaceNormalsMatchVertexNormals(t *testing.T) {
	for _, f := range surface.Families {
		t.Run(f.String(), func(t *testing.T) {
			m := mustBuild(t, f)
			for tri := 0; tri < m.Triangles(); tri++ {
				p0, p1, p2 := vec(m.Position(3*tri)), vec(m.Position(3*tri+1)), vec(m.Position(3*tri+2))
				face := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
				for k := 0; k < 3; k++ {
					if r3.Dot(face, vec(m.Normal(3*tri+k))) <= 0 {
						t.Fatalf("triangle %d vertex %d normal opposes the winding", tri, k)
					}
				}
			}
		})
	}
}

func TestNormalsAreUnit(t *testing.T) {
	m := mustBuild(t, surface.FamilyPseudosphere)
	for i := 0; i < m.VertexCount; i++ {
		if l := r3.Norm(vec(m.Normal(i))); math.Abs(l-1) > 1e-4 {
			t.Fatalf("|n[%d]| = %g", i, l)
		}
	}
}

func TestBounds(t *testing.T) {
	m := mustBuild(t, surface.FamilySphere)
	r := float32(1)
	for i := 0; i < 3; i++ {
		if m.Bounds.Min[i] < -r || m.Bounds.Max[i] > r {
			t.Errorf("axis %d bounds [%g,%g] exceed radius %g", i, m.Bounds.Min[i], m.Bounds.Max[i], r)
		}
	}
	c := m.Bounds.Center()
	if math.Abs(float64(c[0])) > 0.01 || math.Abs(float64(c[2])) > 0.01 {
		t.Errorf("Center() = %v, want near origin", c)
	}
}

func TestBuildRejectsDomainBeforeSampling(t *testing.T) {
	tests := []struct {
		name string
		d    surface.Domain
		want error
	}{
		{"zero step", surface.Domain{UMin: -1, UMax: 1, VMin: 0.2, VMax: 1, UStep: 0, VStep: 0.1}, surface.ErrDomain},
		{"crosses origin", surface.Domain{UMin: -1, UMax: 1, VMin: -1, VMax: 1, UStep: 0.02, VStep: 0.02}, surface.ErrSingularity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(surface.Pseudosphere{}, tt.d, Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("Build() returned a mesh alongside an error")
			}
		})
	}
}

func TestDegeneratePolicy(t *testing.T) {
	d := cone{}.Domain()

	if _, err := Build(cone{}, d, Options{}); !errors.Is(err, surface.ErrDegenerateNormal) {
		t.Fatalf("FailOnDegenerate: error = %v, want ErrDegenerateNormal", err)
	}

	m, err := Build(cone{}, d, Options{Degenerate: ClampDegenerate})
	if err != nil {
		t.Fatalf("ClampDegenerate: %v", err)
	}
	if m.Clamped != 5 {
		t.Errorf("Clamped = %d, want 5 (apex row)", m.Clamped)
	}
	for i := 0; i < m.VertexCount; i++ {
		if l := r3.Norm(vec(m.Normal(i))); math.Abs(l-1) > 1e-4 {
			t.Fatalf("clamped mesh normal %d has length %g", i, l)
		}
	}
}

func vec(a [3]float32) r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}
