package chunks

import (
	"log"
	"unsafe"

	"mini-voxel/internal/graphics/geometry"
	"mini-voxel/internal/meshing"

	"github.com/go-gl/gl/v4.3-core/gl"
)

func glCheckError(label string) {
	if err := gl.GetError(); err != gl.NO_ERROR {
		log.Printf("gl error %s: 0x%x", label, err)
	}
}

// quadBuffer is the geometry SSBO. Its storage is immutable in size; slots
// are written with BufferSubData as chunks are uploaded.
type quadBuffer struct {
	id       uint32
	capacity uint32
}

var _ geometry.QuadBuffer = (*quadBuffer)(nil)

func newQuadBuffer(capacityBytes uint32) *quadBuffer {
	b := &quadBuffer{capacity: capacityBytes}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)
	gl.BufferStorage(gl.SHADER_STORAGE_BUFFER, int(capacityBytes), nil, gl.DYNAMIC_STORAGE_BIT)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	glCheckError("quadBuffer.storage")
	return b
}

func (b *quadBuffer) WriteQuads(firstQuad uint32, quads []meshing.Quad) {
	if len(quads) == 0 {
		return
	}
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)
	gl.BufferSubData(
		gl.SHADER_STORAGE_BUFFER,
		int(firstQuad)*meshing.QuadStride,
		len(quads)*meshing.QuadStride,
		gl.Ptr(&quads[0]),
	)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

func (b *quadBuffer) bind(index uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, index, b.id)
}

func (b *quadBuffer) delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// indirectBuffer uploads a frame's commands and issues the multi-draw.
type indirectBuffer struct {
	id       uint32
	vao      uint32
	capacity int // commands
}

func newIndirectBuffer(vao uint32, capacity int) *indirectBuffer {
	b := &indirectBuffer{vao: vao}
	gl.GenBuffers(1, &b.id)
	b.reserve(capacity)
	return b
}

func (b *indirectBuffer) reserve(commands int) {
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.id)
	gl.BufferData(gl.DRAW_INDIRECT_BUFFER, commands*geometry.DrawCommandSize, nil, gl.STREAM_DRAW)
	b.capacity = commands
}

// Submit implements culling.CommandSink.
func (b *indirectBuffer) Submit(commands []geometry.DrawCommand) {
	if len(commands) == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	if len(commands) > b.capacity {
		grow := b.capacity * 2
		for grow < len(commands) {
			grow *= 2
		}
		log.Printf("chunks: growing indirect buffer to %d commands", grow)
		b.reserve(grow)
	} else {
		gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, b.id)
	}
	gl.BufferSubData(gl.DRAW_INDIRECT_BUFFER, 0, len(commands)*geometry.DrawCommandSize, unsafe.Pointer(&commands[0]))
	gl.MultiDrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT, nil, int32(len(commands)), 0)
}

func (b *indirectBuffer) delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// newQuadVAO creates the attribute-less VAO with the shared quad index list.
// Vertices are fetched from the SSBO in the shader, so only the element
// buffer is bound.
func newQuadVAO(maxQuads int) (vao, ibo uint32) {
	indices := geometry.QuadIndices(maxQuads)
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	glCheckError("newQuadVAO")
	return vao, ibo
}
