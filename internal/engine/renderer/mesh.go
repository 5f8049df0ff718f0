package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/surfview/internal/engine/tessellate"
)

// Vertex attribute locations, matching surface.vert.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
)

// gpuMesh is one uploaded mesh: a VAO with a buffer per attribute.
type gpuMesh struct {
	vao   uint32
	vbos  [3]uint32
	count int32
}

func uploadMesh(m *tessellate.Mesh) (*gpuMesh, error) {
	if m == nil || m.VertexCount == 0 {
		return nil, fmt.Errorf("upload: empty mesh")
	}
	if len(m.Positions) != 3*m.VertexCount || len(m.Normals) != 3*m.VertexCount || len(m.TexCoords) != 2*m.VertexCount {
		return nil, fmt.Errorf("upload: buffer lengths %d/%d/%d do not match %d vertices",
			len(m.Positions), len(m.Normals), len(m.TexCoords), m.VertexCount)
	}

	g := &gpuMesh{count: int32(m.VertexCount)}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(int32(len(g.vbos)), &g.vbos[0])

	attribute(g.vbos[0], attribPosition, 3, m.Positions)
	attribute(g.vbos[1], attribNormal, 3, m.Normals)
	attribute(g.vbos[2], attribTexCoord, 2, m.TexCoords)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g, nil
}

func attribute(vbo, loc uint32, size int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, size*4, 0)
}

func (g *gpuMesh) delete() {
	gl.DeleteBuffers(int32(len(g.vbos)), &g.vbos[0])
	gl.DeleteVertexArrays(1, &g.vao)
	g.vao, g.count = 0, 0
}
