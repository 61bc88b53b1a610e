package geometry

import (
	"errors"
	"fmt"

	"mini-voxel/internal/world"
)

// DrawCommand mirrors GL's DrawElementsIndirectCommand; the field order and
// 20-byte size are consumed directly by MultiDrawElementsIndirect.
type DrawCommand struct {
	Count         uint32 // indices, six per quad
	InstanceCount uint32 // always 1
	FirstIndex    uint32 // always 0
	// BaseQuad is the first quad's index shifted left by two. GL adds it to
	// every index as the base vertex, so gl_VertexID>>2 is the quad and
	// gl_VertexID&3 the corner.
	BaseQuad     uint32
	BaseInstance uint32
}

// DrawCommandSize is the byte size of one DrawCommand record.
const DrawCommandSize = 20

const indicesPerQuad = 6

// NewDrawCommand builds the indirect command covering every quad of slot.
func NewDrawCommand(slot Slot, baseInstance uint32) DrawCommand {
	return DrawCommand{
		Count:         slot.Quads() * indicesPerQuad,
		InstanceCount: 1,
		FirstIndex:    0,
		BaseQuad:      slot.FirstQuad() << 2,
		BaseInstance:  baseInstance,
	}
}

// Quads returns the number of quads drawn by the command.
func (c DrawCommand) Quads() uint32 {
	return c.Count / indicesPerQuad
}

// FirstQuad returns the buffer index of the command's first quad.
func (c DrawCommand) FirstQuad() uint32 {
	return c.BaseQuad >> 2
}

// Base instance layout: x(10, signed) y(9, signed) z(10, signed) direction(3).
// The shader sign-extends each field with bitfieldExtract on an int.
const (
	baseXBits = 10
	baseYBits = 9
	baseZBits = 10

	baseShiftY   = baseXBits
	baseShiftZ   = baseXBits + baseYBits
	baseShiftDir = baseXBits + baseYBits + baseZBits
)

// ErrPositionOutOfRange is returned when a chunk position cannot be encoded in a base instance.
var ErrPositionOutOfRange = errors.New("chunk position out of base instance range")

func fits(v, bits int) bool {
	limit := 1 << (bits - 1)
	return v >= -limit && v < limit
}

func field(v, bits int) uint32 {
	return uint32(v) & (1<<bits - 1)
}

func signExtend(v uint32, bits int) int {
	shift := 32 - bits
	return int(int32(v<<shift) >> shift)
}

// PackBaseInstance encodes a chunk position and face direction for the shader.
func PackBaseInstance(pos world.ChunkPosition, dir world.Direction) (uint32, error) {
	if !fits(pos.X, baseXBits) || !fits(pos.Y, baseYBits) || !fits(pos.Z, baseZBits) {
		return 0, fmt.Errorf("%w: %+v", ErrPositionOutOfRange, pos)
	}
	if !dir.Valid() {
		return 0, fmt.Errorf("invalid face direction %d", dir)
	}
	return field(pos.X, baseXBits) |
		field(pos.Y, baseYBits)<<baseShiftY |
		field(pos.Z, baseZBits)<<baseShiftZ |
		uint32(dir)<<baseShiftDir, nil
}

// UnpackBaseInstance is the inverse of PackBaseInstance.
func UnpackBaseInstance(v uint32) (world.ChunkPosition, world.Direction) {
	pos := world.ChunkPosition{
		X: signExtend(v&(1<<baseXBits-1), baseXBits),
		Y: signExtend((v>>baseShiftY)&(1<<baseYBits-1), baseYBits),
		Z: signExtend((v>>baseShiftZ)&(1<<baseZBits-1), baseZBits),
	}
	return pos, world.Direction(v >> baseShiftDir)
}

// QuadIndices builds the shared element list for maxQuads quads. Each quad
// is two triangles over corners 2,0,1 and 1,3,2 of vertex ids (quad<<2)|corner.
func QuadIndices(maxQuads int) []uint32 {
	indices := make([]uint32, 0, maxQuads*indicesPerQuad)
	for i := range uint32(maxQuads) {
		q := i << 2
		indices = append(indices, q|2, q|0, q|1, q|1, q|3, q|2)
	}
	return indices
}
