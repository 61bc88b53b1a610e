package geometry

import (
	"errors"
	"testing"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/world"
)

func TestNewDrawCommand(t *testing.T) {
	slot := Slot{Start: 10 * meshing.QuadStride, Size: 4 * meshing.QuadStride}
	cmd := NewDrawCommand(slot, 77)
	want := DrawCommand{Count: 24, InstanceCount: 1, FirstIndex: 0, BaseQuad: 40, BaseInstance: 77}
	if cmd != want {
		t.Fatalf("NewDrawCommand = %+v, want %+v", cmd, want)
	}
	if cmd.FirstQuad() != 10 || cmd.Quads() != 4 {
		t.Fatalf("FirstQuad/Quads = %d/%d, want 10/4", cmd.FirstQuad(), cmd.Quads())
	}
}

func TestBaseInstanceRoundTripExtremes(t *testing.T) {
	positions := []world.ChunkPosition{
		{X: 0, Y: 0, Z: 0},
		{X: -1, Y: -1, Z: -1},
		{X: 511, Y: 255, Z: 511},
		{X: -512, Y: -256, Z: -512},
		{X: 63, Y: 0, Z: -5},
	}
	for _, pos := range positions {
		for _, dir := range world.Directions {
			v, err := PackBaseInstance(pos, dir)
			if err != nil {
				t.Fatalf("PackBaseInstance(%+v, %v): %v", pos, dir, err)
			}
			gotPos, gotDir := UnpackBaseInstance(v)
			if gotPos != pos || gotDir != dir {
				t.Fatalf("round trip %+v %v -> %+v %v", pos, dir, gotPos, gotDir)
			}
		}
	}
}

func TestBaseInstanceRejectsOutOfRange(t *testing.T) {
	for _, pos := range []world.ChunkPosition{{X: 512}, {Y: 256}, {Z: -513}} {
		if _, err := PackBaseInstance(pos, world.DirPosX); !errors.Is(err, ErrPositionOutOfRange) {
			t.Fatalf("PackBaseInstance(%+v) err = %v, want ErrPositionOutOfRange", pos, err)
		}
	}
	if _, err := PackBaseInstance(world.ChunkPosition{}, world.Direction(6)); err == nil {
		t.Fatalf("expected error for invalid direction")
	}
}

func TestQuadIndices(t *testing.T) {
	idx := QuadIndices(2)
	want := []uint32{2, 0, 1, 1, 3, 2, 6, 4, 5, 5, 7, 6}
	if len(idx) != len(want) {
		t.Fatalf("len = %d, want %d", len(idx), len(want))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("idx[%d] = %d, want %d", i, idx[i], want[i])
		}
	}
}
