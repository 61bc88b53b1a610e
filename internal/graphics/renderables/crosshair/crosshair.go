package crosshair

import (
	"path/filepath"

	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/gl/v4.3-core/gl"
)

const (
	ShadersDir = "assets/shaders/crosshair"
)

var (
	VertShader = filepath.Join(ShadersDir, "crosshair.vert")
	FragShader = filepath.Join(ShadersDir, "crosshair.frag")
)

var Vertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Crosshair marks the screen centre for the free-fly camera
type Crosshair struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

func (c *Crosshair) Init() error {
	var err error
	c.shader, err = graphics.NewShader(VertShader, FragShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(Vertices)*4, gl.Ptr(Vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (c *Crosshair) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderCrosshair")()

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	c.shader.Use()
	c.shader.SetFloat("aspectRatio", ctx.Camera.AspectRatio)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.LINES, 0, 4)
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (c *Crosshair) Dispose() {
	if c.shader != nil {
		c.shader.Delete()
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
}

func (c *Crosshair) SetViewport(width, height int) {}
