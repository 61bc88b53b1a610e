package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// GridSource supplies a fully populated chunk grid for a chunk position.
// Implementations must be safe for concurrent use.
type GridSource interface {
	GridFor(pos ChunkPosition) *Chunk
}

// Generator handles terrain generation logic.
type Generator struct {
	seed       int64
	scale      float64
	baseHeight int
	amp        float64
	stoneDepth int
	noise      *perlin.Perlin
}

// NewGenerator creates a heightmap generator whose surface spans the given
// number of vertically stacked chunks.
func NewGenerator(seed int64, chunksY int) *Generator {
	if chunksY < 1 {
		chunksY = 1
	}
	return &Generator{
		seed:       seed,
		scale:      1.0 / 48.0,
		baseHeight: 1,
		amp:        float64(chunksY*ChunkSize - 2),
		stoneDepth: 6,
		// alpha, beta, octaves
		noise: perlin.NewPerlin(2, 2, 3, seed),
	}
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	// Noise2D is roughly in [-1,1]
	t := (n + 1) / 2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return g.baseHeight + int(math.Floor(t*g.amp))
}

// GridFor implements GridSource.
func (g *Generator) GridFor(pos ChunkPosition) *Chunk {
	c := NewChunk(pos)
	g.PopulateChunk(c)
	return c
}

// PopulateChunk fills a chunk using the noise heightmap.
func (g *Generator) PopulateChunk(c *Chunk) {
	ox, oy, oz := c.Position.Origin()
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			height := g.HeightAt(ox+lx, oz+lz)
			for ly := range ChunkSize {
				wy := oy + ly
				if wy > height {
					break
				}
				c.SetBlock(lx, ly, lz, g.blockAt(wy, height))
			}
		}
	}
}

func (g *Generator) blockAt(wy, surface int) BlockType {
	switch {
	case wy <= 0:
		return BlockTypeStone
	case wy == surface:
		return BlockTypeGrass
	case surface-wy > g.stoneDepth:
		return BlockTypeCobblestone
	default:
		return BlockTypeDirt
	}
}
