package culling

import (
	"fmt"

	"mini-voxel/internal/graphics/geometry"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderChunk is the render-facing chunk: its grid plus at most one draw
// command per face direction that produced quads.
type RenderChunk struct {
	Position world.ChunkPosition
	Grid     *world.Chunk
	Commands []geometry.FaceCommand
}

// NewRenderChunk validates the command list of a freshly uploaded chunk.
func NewRenderChunk(grid *world.Chunk, commands []geometry.FaceCommand) (*RenderChunk, error) {
	if len(commands) > world.DirectionCount {
		return nil, fmt.Errorf("chunk %+v: %d draw commands, at most %d allowed", grid.Position, len(commands), world.DirectionCount)
	}
	var seen [world.DirectionCount]bool
	for _, fc := range commands {
		if !fc.Direction.Valid() || seen[fc.Direction] {
			return nil, fmt.Errorf("chunk %+v: bad or repeated direction %v", grid.Position, fc.Direction)
		}
		seen[fc.Direction] = true
	}
	return &RenderChunk{Position: grid.Position, Grid: grid, Commands: commands}, nil
}

// FacesCamera reports whether faces pointing in dir inside chunk can be seen
// from a camera in chunk cam. Positive directions need the camera at or past
// the chunk on that axis and negative ones at or before it, so a camera in
// the chunk's own slab keeps both sides.
func FacesCamera(dir world.Direction, chunk, cam world.ChunkPosition) bool {
	axis := dir.Info().Axis
	if dir.Positive() {
		return cam.Axis(axis) >= chunk.Axis(axis)
	}
	return cam.Axis(axis) <= chunk.Axis(axis)
}

// CommandSink receives one frame's batched draw commands. The slice is only
// valid for the duration of the call.
type CommandSink interface {
	Submit(commands []geometry.DrawCommand)
}

// FrameStats summarizes one batched frame.
type FrameStats struct {
	Chunks   int
	Visible  int
	Commands int
}

// Batcher turns the set of uploaded chunks into one indirect draw per frame.
// It is not safe for concurrent use; it belongs to the render thread.
type Batcher struct {
	chunks     []*RenderChunk
	pending    []geometry.DrawCommand
	faceFilter bool
}

// NewBatcher creates an empty batcher with the camera-side filter enabled.
func NewBatcher() *Batcher {
	return &Batcher{
		pending:    make([]geometry.DrawCommand, 0, 1024),
		faceFilter: true,
	}
}

// Add registers a chunk for drawing.
func (b *Batcher) Add(c *RenderChunk) {
	if c == nil || len(c.Commands) == 0 {
		return
	}
	b.chunks = append(b.chunks, c)
}

// Chunks returns the number of registered chunks.
func (b *Batcher) Chunks() int {
	return len(b.chunks)
}

// SetFaceFilter enables or disables the camera-side direction filter.
func (b *Batcher) SetFaceFilter(on bool) {
	b.faceFilter = on
}

// FaceFilter reports whether the camera-side filter is active.
func (b *Batcher) FaceFilter() bool {
	return b.faceFilter
}

// Frame culls, classifies and batches every chunk against the camera, then
// hands the batch to sink. Submit is not called for an empty batch, and the
// batch is cleared afterwards either way.
func (b *Batcher) Frame(viewProj mgl32.Mat4, camera mgl32.Vec3, sink CommandSink) FrameStats {
	stats := FrameStats{Chunks: len(b.chunks)}

	func() {
		defer profiling.Track("culling.cullClassify")()
		frustum := NewFrustum(viewProj)
		camChunk := world.PositionOf(camera)
		for _, c := range b.chunks {
			min, max := c.Position.Bounds()
			if !frustum.TestAABB(min, max) {
				continue
			}
			stats.Visible++
			for _, fc := range c.Commands {
				if b.faceFilter && !FacesCamera(fc.Direction, c.Position, camChunk) {
					continue
				}
				b.pending = append(b.pending, fc.Command)
			}
		}
	}()

	stats.Commands = len(b.pending)
	if len(b.pending) > 0 {
		stop := profiling.Track("culling.submit")
		sink.Submit(b.pending)
		stop()
	}
	b.pending = b.pending[:0]
	return stats
}

// Pending returns the number of commands batched but not yet submitted. It is zero
// between frames.
func (b *Batcher) Pending() int {
	return len(b.pending)
}
