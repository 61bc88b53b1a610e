package renderer

import (
	"mini-voxel/internal/graphics/camera"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *camera.Camera
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// ViewProj returns Proj*View.
func (c RenderContext) ViewProj() mgl32.Mat4 {
	return c.Proj.Mul4(c.View)
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
