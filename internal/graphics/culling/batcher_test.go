package culling

import (
	"testing"

	"mini-voxel/internal/graphics/geometry"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	calls    int
	commands []geometry.DrawCommand
}

func (s *recordingSink) Submit(commands []geometry.DrawCommand) {
	s.calls++
	s.commands = append(s.commands, commands...)
}

func (s *recordingSink) directions(t *testing.T) map[world.ChunkPosition][]world.Direction {
	t.Helper()
	out := make(map[world.ChunkPosition][]world.Direction)
	for _, c := range s.commands {
		pos, dir := geometry.UnpackBaseInstance(c.BaseInstance)
		out[pos] = append(out[pos], dir)
	}
	return out
}

// everything within +-1000 blocks is inside this volume
var wideOrtho = mgl32.Ortho(-1000, 1000, -1000, 1000, -1000, 1000)

func fullChunk(t *testing.T, pos world.ChunkPosition, dirs ...world.Direction) *RenderChunk {
	t.Helper()
	if len(dirs) == 0 {
		dirs = world.Directions[:]
	}
	cmds := make([]geometry.FaceCommand, 0, len(dirs))
	for i, dir := range dirs {
		bi, err := geometry.PackBaseInstance(pos, dir)
		require.NoError(t, err)
		slot := geometry.Slot{Start: uint32(i) * 8, Size: 8}
		cmds = append(cmds, geometry.FaceCommand{Direction: dir, Command: geometry.NewDrawCommand(slot, bi)})
	}
	rc, err := NewRenderChunk(world.NewChunk(pos), cmds)
	require.NoError(t, err)
	return rc
}

func TestFacesCameraBoundaries(t *testing.T) {
	chunk := world.ChunkPosition{X: 1, Y: 1, Z: 1}
	for _, dir := range world.Directions {
		require.True(t, FacesCamera(dir, chunk, chunk), "camera inside the chunk keeps %v", dir)
	}

	above := world.ChunkPosition{X: 1, Y: 2, Z: 1}
	require.True(t, FacesCamera(world.DirPosY, chunk, above))
	require.False(t, FacesCamera(world.DirNegY, chunk, above))

	west := world.ChunkPosition{X: -4, Y: 1, Z: 1}
	require.False(t, FacesCamera(world.DirPosX, chunk, west))
	require.True(t, FacesCamera(world.DirNegX, chunk, west))

	south := world.ChunkPosition{X: 1, Y: 1, Z: 0}
	require.False(t, FacesCamera(world.DirPosZ, chunk, south))
	require.True(t, FacesCamera(world.DirNegZ, chunk, south))
}

func TestFrameKeepsCameraFacingCommands(t *testing.T) {
	b := NewBatcher()
	b.Add(fullChunk(t, world.ChunkPosition{X: 0, Y: 0, Z: 0}))
	b.Add(fullChunk(t, world.ChunkPosition{X: 1, Y: 0, Z: 0}))

	sink := &recordingSink{}
	stats := b.Frame(wideOrtho, mgl32.Vec3{16, 16, 16}, sink)

	require.Equal(t, FrameStats{Chunks: 2, Visible: 2, Commands: 11}, stats)
	require.Equal(t, 1, sink.calls)
	dirs := sink.directions(t)
	require.Len(t, dirs[world.ChunkPosition{}], 6)
	require.NotContains(t, dirs[world.ChunkPosition{X: 1}], world.DirPosX)
	require.Contains(t, dirs[world.ChunkPosition{X: 1}], world.DirNegX)
	require.Zero(t, b.Pending())
}

func TestFrameCameraOnChunkBoundary(t *testing.T) {
	b := NewBatcher()
	b.Add(fullChunk(t, world.ChunkPosition{X: 0}))
	b.Add(fullChunk(t, world.ChunkPosition{X: 1}))

	// x == 32 belongs to chunk 1
	sink := &recordingSink{}
	stats := b.Frame(wideOrtho, mgl32.Vec3{32, 0.5, 0.5}, sink)
	require.Equal(t, 11, stats.Commands)
	dirs := sink.directions(t)
	require.Len(t, dirs[world.ChunkPosition{X: 1}], 6)
	require.NotContains(t, dirs[world.ChunkPosition{X: 0}], world.DirNegX)

	// just below zero belongs to chunk -1
	sink = &recordingSink{}
	b.Frame(wideOrtho, mgl32.Vec3{-0.001, 0.5, 0.5}, sink)
	dirs = sink.directions(t)
	require.NotContains(t, dirs[world.ChunkPosition{X: 0}], world.DirPosX)
	require.NotContains(t, dirs[world.ChunkPosition{X: 1}], world.DirPosX)
	require.Len(t, dirs[world.ChunkPosition{X: 0}], 5)
}

func TestFrameFiltersByRecordedDirectionNotListPosition(t *testing.T) {
	// command list deliberately not in direction order, with +X missing
	pos := world.ChunkPosition{X: 0, Y: 5, Z: 0}
	rc := fullChunk(t, pos, world.DirNegZ, world.DirPosY, world.DirNegX, world.DirNegY, world.DirPosZ)

	b := NewBatcher()
	b.Add(rc)
	sink := &recordingSink{}
	stats := b.Frame(wideOrtho, mgl32.Vec3{1, 1, 1}, sink)

	require.Equal(t, 4, stats.Commands)
	require.ElementsMatch(t,
		[]world.Direction{world.DirNegZ, world.DirNegX, world.DirNegY, world.DirPosZ},
		sink.directions(t)[pos])
}

func TestFrameWithFilterDisabledKeepsEverything(t *testing.T) {
	b := NewBatcher()
	b.SetFaceFilter(false)
	require.False(t, b.FaceFilter())
	for x := range 3 {
		b.Add(fullChunk(t, world.ChunkPosition{X: x * 5, Y: -2, Z: 7}))
	}
	sink := &recordingSink{}
	stats := b.Frame(wideOrtho, mgl32.Vec3{0, 0, 0}, sink)
	require.Equal(t, 18, stats.Commands)
	require.Len(t, sink.commands, 18)
}

func TestFrameSkipsSubmitWhenNothingVisible(t *testing.T) {
	b := NewBatcher()
	b.Add(fullChunk(t, world.ChunkPosition{X: 0, Y: 0, Z: 2}))

	// looking down -z from the origin, chunk z=2 spans z 64..96 behind the camera
	sink := &recordingSink{}
	stats := b.Frame(lookDownNegZ(), mgl32.Vec3{0, 0, 0}, sink)
	require.Equal(t, FrameStats{Chunks: 1}, stats)
	require.Zero(t, sink.calls)
	require.Zero(t, b.Pending())
}

func TestFrameClearsBatchBetweenFrames(t *testing.T) {
	b := NewBatcher()
	b.Add(fullChunk(t, world.ChunkPosition{}))
	sink := &recordingSink{}
	for range 3 {
		stats := b.Frame(wideOrtho, mgl32.Vec3{1, 1, 1}, sink)
		require.Equal(t, 6, stats.Commands)
	}
	require.Equal(t, 3, sink.calls)
	require.Len(t, sink.commands, 18)
}

func TestRenderChunkValidation(t *testing.T) {
	grid := world.NewChunk(world.ChunkPosition{})
	var cmds []geometry.FaceCommand
	for _, dir := range world.Directions {
		cmds = append(cmds, geometry.FaceCommand{Direction: dir})
	}
	_, err := NewRenderChunk(grid, append(cmds, geometry.FaceCommand{Direction: world.DirPosX}))
	require.Error(t, err)

	_, err = NewRenderChunk(grid, []geometry.FaceCommand{{Direction: world.DirPosY}, {Direction: world.DirPosY}})
	require.Error(t, err)

	b := NewBatcher()
	rc, err := NewRenderChunk(grid, nil)
	require.NoError(t, err)
	b.Add(rc)
	require.Zero(t, b.Chunks())
}
