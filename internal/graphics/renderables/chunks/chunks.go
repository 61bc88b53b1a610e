package chunks

import (
	"errors"
	"fmt"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/culling"
	"mini-voxel/internal/graphics/geometry"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Options configures the chunk renderable.
type Options struct {
	ShadersDir   string
	TextureFiles []string
	LayerSize    int
	BufferBytes  uint32
	MaxCommands  int
	Metrics      *metrics.Metrics // optional
}

// Chunks draws every uploaded chunk with one indirect multi-draw per frame.
type Chunks struct {
	opts Options

	shader   *graphics.Shader
	textures *graphics.TextureArray
	vao      uint32
	ibo      uint32
	quads    *quadBuffer
	indirect *indirectBuffer

	alloc   *geometry.BumpAllocator
	store   *geometry.Store
	batcher *culling.Batcher
	last    culling.FrameStats
}

// NewChunks creates the renderable; GL resources are created in Init.
func NewChunks(opts Options) *Chunks {
	return &Chunks{opts: opts}
}

// Init compiles the shader and creates the buffers and texture array
func (c *Chunks) Init() error {
	vert, frag := shaderPaths(c.opts.ShadersDir)
	var err error
	c.shader, err = graphics.NewShader(vert, frag)
	if err != nil {
		return err
	}

	c.textures, err = graphics.LoadTextureArray(c.opts.TextureFiles, c.opts.LayerSize)
	if err != nil {
		return err
	}

	// One direction of one chunk is the largest single draw
	c.vao, c.ibo = newQuadVAO(world.ChunkVolume)
	c.quads = newQuadBuffer(c.opts.BufferBytes)
	c.indirect = newIndirectBuffer(c.vao, c.opts.MaxCommands)

	c.alloc = geometry.NewBumpAllocator(c.opts.BufferBytes)
	c.store = geometry.NewStore(c.alloc, c.quads)
	c.batcher = culling.NewBatcher()

	if m := c.opts.Metrics; m != nil {
		m.ObserveGeometry(c.alloc.Used(), c.alloc.Capacity())
	}

	c.shader.Use()
	c.shader.SetInt("blockTextures", textureUnit)
	return nil
}

// Upload copies a meshed chunk into the geometry buffer and registers its
// draw commands. It must run on the GL thread after Init.
func (c *Chunks) Upload(grid *world.Chunk, mesh *meshing.Mesh) error {
	defer profiling.Track("chunks.Upload")()

	cmds, err := geometry.UploadMesh(c.store, grid.Position, mesh)
	if m := c.opts.Metrics; m != nil {
		m.ObserveUpload(mesh.QuadCount(), errors.Is(err, geometry.ErrAllocationExhausted))
		m.ObserveGeometry(c.alloc.Used(), c.alloc.Capacity())
	}
	if err != nil {
		return fmt.Errorf("upload chunk: %w", err)
	}
	if len(cmds) == 0 {
		return nil
	}
	rc, err := culling.NewRenderChunk(grid, cmds)
	if err != nil {
		return err
	}
	c.batcher.Add(rc)
	return nil
}

// Render draws all visible chunk faces
func (c *Chunks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderChunks")()

	// Apply wireframe polygon mode if toggled, then always reset to FILL
	if config.GetWireframe() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	c.batcher.SetFaceFilter(config.GetFaceFilter())

	viewProj := ctx.ViewProj()
	c.shader.Use()
	c.shader.SetMatrix4("viewProj", &viewProj[0])
	c.textures.Bind(textureUnit)
	c.quads.bind(quadBinding)
	gl.BindVertexArray(c.vao)

	c.last = c.batcher.Frame(viewProj, ctx.Camera.Position, c.indirect)
	gl.BindVertexArray(0)
}

// Stats returns the last frame's batching result.
func (c *Chunks) Stats() culling.FrameStats {
	return c.last
}

// Allocator exposes the geometry allocator for reporting.
func (c *Chunks) Allocator() geometry.Allocator {
	return c.alloc
}

// Dispose cleans up OpenGL resources
func (c *Chunks) Dispose() {
	if c.shader != nil {
		c.shader.Delete()
	}
	if c.textures != nil {
		c.textures.Delete()
	}
	if c.indirect != nil {
		c.indirect.delete()
	}
	if c.quads != nil {
		c.quads.delete()
	}
	if c.ibo != 0 {
		gl.DeleteBuffers(1, &c.ibo)
		c.ibo = 0
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// SetViewport is a no-op; the projection comes from the camera
func (c *Chunks) SetViewport(width, height int) {}
