package geometry

import (
	"fmt"

	"mini-voxel/internal/meshing"
)

// QuadBuffer is the GPU-side storage the allocator carves up.
type QuadBuffer interface {
	// WriteQuads copies quads into the buffer starting at quad index firstQuad.
	WriteQuads(firstQuad uint32, quads []meshing.Quad)
}

// MemoryQuadBuffer is a CPU copy of the geometry buffer, used by tests and
// headless tools.
type MemoryQuadBuffer struct {
	Quads []meshing.Quad
}

// NewMemoryQuadBuffer allocates room for capacityBytes of quads.
func NewMemoryQuadBuffer(capacityBytes uint32) *MemoryQuadBuffer {
	return &MemoryQuadBuffer{Quads: make([]meshing.Quad, capacityBytes/meshing.QuadStride)}
}

func (b *MemoryQuadBuffer) WriteQuads(firstQuad uint32, quads []meshing.Quad) {
	copy(b.Quads[firstQuad:], quads)
}

// Store pairs an allocator with the buffer it manages.
type Store struct {
	alloc  Allocator
	buffer QuadBuffer
}

// NewStore creates a store.
func NewStore(alloc Allocator, buffer QuadBuffer) *Store {
	return &Store{alloc: alloc, buffer: buffer}
}

// Allocator returns the store's allocator.
func (s *Store) Allocator() Allocator {
	return s.alloc
}

// Allocate reserves space for quads.
func (s *Store) Allocate(quads uint32) (Slot, error) {
	return s.alloc.Allocate(quads)
}

// Upload copies quads into slot. The write offset comes only from the slot's
// start, in quad units; the quad count must match the slot exactly.
func (s *Store) Upload(slot Slot, quads []meshing.Quad) error {
	if uint32(len(quads)) != slot.Quads() {
		return fmt.Errorf("upload of %d quads into a %d-quad slot", len(quads), slot.Quads())
	}
	if slot.End() > s.alloc.Capacity() {
		return fmt.Errorf("slot [%d,%d) outside buffer of %d bytes", slot.Start, slot.End(), s.alloc.Capacity())
	}
	if len(quads) == 0 {
		return nil
	}
	s.buffer.WriteQuads(slot.FirstQuad(), quads)
	return nil
}
