package geometry

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"

	"github.com/stretchr/testify/require"
)

func TestAllocateSlotsAreDisjointAndMonotonic(t *testing.T) {
	a := NewBumpAllocator(1 << 16)
	rng := rand.New(rand.NewSource(1))

	var slots []Slot
	prev := a.Used()
	for range 200 {
		slot, err := a.Allocate(uint32(rng.Intn(40)))
		if err != nil {
			require.ErrorIs(t, err, ErrAllocationExhausted)
			require.Equal(t, prev, a.Used(), "failed allocation moved the cursor")
			continue
		}
		require.GreaterOrEqual(t, a.Used(), prev)
		require.Equal(t, prev, slot.Start)
		prev = a.Used()
		slots = append(slots, slot)
	}
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			require.False(t, slots[i].Overlaps(slots[j]), "slots %v and %v overlap", slots[i], slots[j])
		}
	}
}

func TestAllocateExhaustionLeavesStateUntouched(t *testing.T) {
	a := NewBumpAllocator(10 * meshing.QuadStride)
	_, err := a.Allocate(7)
	require.NoError(t, err)

	_, err = a.Allocate(4)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrAllocationExhausted))

	var exhausted *ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	require.Equal(t, uint32(4*meshing.QuadStride), exhausted.Requested)
	require.Equal(t, uint32(3*meshing.QuadStride), exhausted.Available)
	require.Equal(t, uint32(7*meshing.QuadStride), a.Used())
	require.Equal(t, 1, a.Slots())

	slot, err := a.Allocate(3)
	require.NoError(t, err)
	require.Equal(t, a.Capacity(), slot.End())
}

func TestAllocateHugeRequestDoesNotOverflow(t *testing.T) {
	a := NewBumpAllocator(1024)
	_, err := a.Allocate(^uint32(0))
	require.ErrorIs(t, err, ErrAllocationExhausted)
	require.Zero(t, a.Used())
}

func TestCapacityRoundsDownToWholeQuads(t *testing.T) {
	a := NewBumpAllocator(8*5 + 3)
	require.Equal(t, uint32(40), a.Capacity())
}

func TestConcurrentAllocation(t *testing.T) {
	a := NewBumpAllocator(1 << 20)
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		slots []Slot
	)
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				slot, err := a.Allocate(uint32(w + i + 1))
				if err != nil {
					t.Errorf("Allocate: %v", err)
					return
				}
				mu.Lock()
				slots = append(slots, slot)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	var total uint32
	for i := range slots {
		total += slots[i].Size
		for j := i + 1; j < len(slots); j++ {
			require.False(t, slots[i].Overlaps(slots[j]))
		}
	}
	require.Equal(t, total, a.Used())
}

func TestStoreUploadWritesAtSlotStart(t *testing.T) {
	alloc := NewBumpAllocator(64 * meshing.QuadStride)
	buf := NewMemoryQuadBuffer(alloc.Capacity())
	store := NewStore(alloc, buf)

	first, err := store.Allocate(2)
	require.NoError(t, err)
	second, err := store.Allocate(3)
	require.NoError(t, err)

	quads := []meshing.Quad{
		meshing.PackQuad(1, 2, 3, 1, 1, world.DirPosY, 0),
		meshing.PackQuad(4, 5, 6, 2, 2, world.DirPosY, 1),
		meshing.PackQuad(7, 8, 9, 3, 3, world.DirPosY, 2),
	}
	require.NoError(t, store.Upload(second, quads))
	require.Equal(t, quads, buf.Quads[second.FirstQuad():second.FirstQuad()+3])
	require.Equal(t, uint32(2), second.FirstQuad())
	require.Zero(t, buf.Quads[first.FirstQuad()])

	require.Error(t, store.Upload(first, quads), "size mismatch must be rejected")
}

func TestUploadMeshRecordsOneCommandPerNonEmptyDirection(t *testing.T) {
	alloc := NewBumpAllocator(1 << 16)
	store := NewStore(alloc, NewMemoryQuadBuffer(alloc.Capacity()))

	c := world.NewChunk(world.ChunkPosition{X: -3, Y: 1, Z: 7})
	c.SetBlock(0, 0, 0, world.BlockTypeDirt)
	mesh := meshing.BuildGreedyMesh(c)
	mesh.Faces[world.DirNegZ] = nil

	cmds, err := UploadMesh(store, c.Position, mesh)
	require.NoError(t, err)
	require.Len(t, cmds, 5)

	var next uint32
	for _, fc := range cmds {
		require.NotEqual(t, world.DirNegZ, fc.Direction)
		require.Equal(t, uint32(6), fc.Command.Count)
		require.Equal(t, uint32(1), fc.Command.InstanceCount)
		require.Equal(t, next, fc.Command.FirstQuad())
		next += fc.Command.Quads()

		pos, dir := UnpackBaseInstance(fc.Command.BaseInstance)
		require.Equal(t, c.Position, pos)
		require.Equal(t, fc.Direction, dir)
	}
	require.Equal(t, uint32(5*meshing.QuadStride), alloc.Used())
}

func TestUploadMeshEmpty(t *testing.T) {
	alloc := NewBumpAllocator(1024)
	store := NewStore(alloc, NewMemoryQuadBuffer(alloc.Capacity()))
	cmds, err := UploadMesh(store, world.ChunkPosition{}, &meshing.Mesh{})
	require.NoError(t, err)
	require.Empty(t, cmds)
	require.Zero(t, alloc.Used())
}

func TestUploadMeshExhausted(t *testing.T) {
	alloc := NewBumpAllocator(3 * meshing.QuadStride)
	store := NewStore(alloc, NewMemoryQuadBuffer(alloc.Capacity()))
	c := world.NewChunk(world.ChunkPosition{})
	c.SetBlock(0, 0, 0, world.BlockTypeDirt)

	_, err := UploadMesh(store, c.Position, meshing.BuildGreedyMesh(c))
	require.ErrorIs(t, err, ErrAllocationExhausted)
	require.Equal(t, uint32(3*meshing.QuadStride), alloc.Used())
}
