package geometry

import (
	"errors"
	"fmt"
	"sync"

	"mini-voxel/internal/meshing"
)

// ErrAllocationExhausted is matched by every capacity failure.
var ErrAllocationExhausted = errors.New("geometry buffer exhausted")

// ExhaustedError reports a request that did not fit in the remaining space.
type ExhaustedError struct {
	Requested uint32 // bytes
	Available uint32 // bytes
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("geometry buffer exhausted: requested %d bytes, %d available", e.Requested, e.Available)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllocationExhausted
}

// Slot is a reserved [Start, Start+Size) byte range of the geometry buffer.
type Slot struct {
	Start uint32
	Size  uint32
}

// End returns the first byte past the slot.
func (s Slot) End() uint32 {
	return s.Start + s.Size
}

// FirstQuad returns the slot start in quad units.
func (s Slot) FirstQuad() uint32 {
	return s.Start / meshing.QuadStride
}

// Quads returns the slot size in quad units.
func (s Slot) Quads() uint32 {
	return s.Size / meshing.QuadStride
}

// Overlaps reports whether two slots share any byte.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start < o.End() && o.Start < s.End()
}

// Allocator hands out disjoint slots of one fixed-capacity buffer.
// Implementations must be safe for concurrent use.
type Allocator interface {
	Allocate(quads uint32) (Slot, error)
	Used() uint32
	Capacity() uint32
}

// BumpAllocator only ever advances a cursor; slots are never reclaimed.
// TODO: a best-fit allocator with free lists is needed before chunks can be
// unloaded or re-meshed.
type BumpAllocator struct {
	mu       sync.Mutex
	capacity uint32
	cursor   uint32
	slots    int
}

// NewBumpAllocator creates an allocator over capacityBytes, rounded down to
// whole quads.
func NewBumpAllocator(capacityBytes uint32) *BumpAllocator {
	return &BumpAllocator{capacity: capacityBytes - capacityBytes%meshing.QuadStride}
}

// Allocate reserves quads*QuadStride bytes at the cursor. When the request
// does not fit the allocator is left untouched and an *ExhaustedError is returned.
func (a *BumpAllocator) Allocate(quads uint32) (Slot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	available := a.capacity - a.cursor
	if quads > available/meshing.QuadStride {
		return Slot{}, &ExhaustedError{
			Requested: saturatingBytes(quads),
			Available: available,
		}
	}
	size := quads * meshing.QuadStride
	slot := Slot{Start: a.cursor, Size: size}
	a.cursor += size
	a.slots++
	return slot, nil
}

// Used returns the cursor position in bytes.
func (a *BumpAllocator) Used() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursor
}

// Capacity returns the total buffer size in bytes.
func (a *BumpAllocator) Capacity() uint32 {
	return a.capacity
}

// Slots returns the number of successful allocations.
func (a *BumpAllocator) Slots() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.slots
}

func saturatingBytes(quads uint32) uint32 {
	if quads > ^uint32(0)/meshing.QuadStride {
		return ^uint32(0)
	}
	return quads * meshing.QuadStride
}
