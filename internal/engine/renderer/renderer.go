// Package renderer draws tessellated surfaces with OpenGL 4.1 core.
package renderer

import (
	_ "embed"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/engine/shader"
	"github.com/Faultbox/surfview/internal/engine/tessellate"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/viewer"
)

//go:embed shaders/surface.vert
var vertexSrc string

//go:embed shaders/surface.frag
var fragmentSrc string

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [4]float32
}

// Renderer owns the GL program, the mesh buffers for each slot and the
// surface texture. It implements viewer.Backend.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program
	meshes  map[viewer.Slot]*gpuMesh
	texture uint32
}

var _ viewer.Backend = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[viewer.Slot]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.program, err = shader.New(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for slot, m := range r.meshes {
		m.delete()
		delete(r.meshes, slot)
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) { return r.config.Width, r.config.Height }

// Begin clears the current framebuffer.
func (r *Renderer) Begin() {
	bg := r.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Upload implements viewer.Backend. New buffers are filled completely before
// they replace the slot's old ones, which are then deleted.
func (r *Renderer) Upload(slot viewer.Slot, m *tessellate.Mesh) error {
	next, err := uploadMesh(m)
	if err != nil {
		return err
	}
	prev := r.meshes[slot]
	r.meshes[slot] = next
	if prev != nil {
		prev.delete()
	}
	r.log.Debug("mesh uploaded",
		zap.Stringer("slot", slot),
		zap.Int("vertices", m.VertexCount))
	return nil
}

// Draw implements viewer.Backend.
func (r *Renderer) Draw(dc viewer.DrawCall) {
	m := r.meshes[dc.Slot]
	if m == nil {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4("uMVP", dc.MVP)
	p.SetMat4("uModelView", dc.ModelView)
	p.SetMat3("uNormalMatrix", dc.NormalMatrix)
	p.SetVec4("uColor", dc.Color)
	p.SetVec3("uLightColor", dc.LightColor)
	p.SetVec3("uLightDir", dc.LightDir)
	p.SetVec3("uLightPos", dc.LightPos)
	p.SetFloat("uAngle", dc.Angle)
	p.SetFloat("uDiffusion", dc.Diffusion)
	p.SetVec2("uTexOffset", dc.TexOffset[0], dc.TexOffset[1])
	p.SetBool("uUnlit", dc.Unlit)

	useTex := dc.UseTexture && r.texture != 0
	p.SetBool("uUseTexture", useTex)
	if useTex {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
		p.SetInt("uTexture", 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// SetTexture uploads img as the surface texture, replacing any previous one.
func (r *Renderer) SetTexture(img *image.RGBA) {
	if img == nil || len(img.Pix) == 0 {
		return
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	r.texture = id
	r.log.Info("texture uploaded", zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
}

// HasTexture reports whether a surface texture is loaded.
func (r *Renderer) HasTexture() bool { return r.texture != 0 }

// ReadPixels reads the bound framebuffer as bottom-up RGBA bytes.
func (r *Renderer) ReadPixels() []byte {
	w, h := int32(r.config.Width), int32(r.config.Height)
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
