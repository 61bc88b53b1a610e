package world

import "github.com/go-gl/mathgl/mgl32"

const (
	// ChunkSize is the edge length of a cubic chunk, in blocks.
	ChunkSize = 32
	// ChunkVolume is the number of cells in one chunk grid.
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkPosition is a chunk's coordinate on the chunk grid.
type ChunkPosition struct {
	X, Y, Z int
}

// Origin returns the world-space block coordinate of the chunk's minimum corner.
func (p ChunkPosition) Origin() (int, int, int) {
	return p.X * ChunkSize, p.Y * ChunkSize, p.Z * ChunkSize
}

// Bounds returns the chunk's world-space axis-aligned bounding box.
func (p ChunkPosition) Bounds() (min, max mgl32.Vec3) {
	ox, oy, oz := p.Origin()
	min = mgl32.Vec3{float32(ox), float32(oy), float32(oz)}
	max = min.Add(mgl32.Vec3{ChunkSize, ChunkSize, ChunkSize})
	return min, max
}

// Axis returns the position component for an axis index.
func (p ChunkPosition) Axis(axis int) int {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Less orders positions x, then y, then z.
func (p ChunkPosition) Less(o ChunkPosition) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.Z < o.Z
}

// PositionOf returns the chunk position containing a world-space point.
func PositionOf(v mgl32.Vec3) ChunkPosition {
	return ChunkPosition{
		X: floorDiv(int(floor32(v.X())), ChunkSize),
		Y: floorDiv(int(floor32(v.Y())), ChunkSize),
		Z: floorDiv(int(floor32(v.Z())), ChunkSize),
	}
}

// Chunk is a dense cubic grid of blocks. Coordinates outside [0,ChunkSize)
// read as air, so meshing never looks into neighbouring chunks.
type Chunk struct {
	Position ChunkPosition
	blocks   [ChunkVolume]BlockType
	solid    int
}

// NewChunk creates an all-air chunk at the given chunk position.
func NewChunk(pos ChunkPosition) *Chunk {
	return &Chunk{Position: pos}
}

func index(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkSize*ChunkSize
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block at local coordinates, or air when out of range.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !inBounds(x, y, z) {
		return BlockTypeAir
	}
	return c.blocks[index(x, y, z)]
}

// SetBlock writes a block at local coordinates. Out-of-range writes are ignored.
// Only terrain generation writes to a chunk; it is read-only once meshed.
func (c *Chunk) SetBlock(x, y, z int, b BlockType) {
	if !inBounds(x, y, z) {
		return
	}
	i := index(x, y, z)
	old := c.blocks[i]
	if old == b {
		return
	}
	if old.IsSolid() {
		c.solid--
	}
	if b.IsSolid() {
		c.solid++
	}
	c.blocks[i] = b
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// IsEmpty reports whether the chunk holds no solid blocks.
func (c *Chunk) IsEmpty() bool {
	return c.solid == 0
}

// SolidCount returns the number of non-air cells.
func (c *Chunk) SolidCount() int {
	return c.solid
}

// Fill sets every cell to b.
func (c *Chunk) Fill(b BlockType) {
	for i := range c.blocks {
		c.blocks[i] = b
	}
	if b.IsSolid() {
		c.solid = ChunkVolume
	} else {
		c.solid = 0
	}
}
