package meshing

import "mini-voxel/internal/world"

// QuadStride is the size in bytes of one packed quad in GPU memory.
const QuadStride = 8

// Bit layout of a packed quad. Coordinates and extents use six bits so the
// plane coordinate ChunkSize itself (a +axis face on the last layer) fits.
const (
	coordBits = 6
	coordMask = 1<<coordBits - 1
	dirBits   = 3
	dirMask   = 1<<dirBits - 1

	shiftX      = 0
	shiftY      = 6
	shiftZ      = 12
	shiftWidth  = 18
	shiftHeight = 24
	shiftDir    = 30
	shiftTex    = 33

	// MaxTextureID is the largest texture id the remaining bits can hold.
	MaxTextureID = 1<<(64-shiftTex) - 1
)

// Quad is a merged face rectangle packed into one little-endian uint64:
// x(6) y(6) z(6) width(6) height(6) direction(3) texture(31).
type Quad uint64

// PackQuad encodes a quad. Width runs along the direction's U axis and height
// along its V axis; the anchor is the quad's minimum corner on the face plane.
func PackQuad(x, y, z, width, height int, dir world.Direction, texture uint32) Quad {
	return Quad(uint64(x&coordMask)<<shiftX |
		uint64(y&coordMask)<<shiftY |
		uint64(z&coordMask)<<shiftZ |
		uint64(width&coordMask)<<shiftWidth |
		uint64(height&coordMask)<<shiftHeight |
		uint64(uint8(dir)&dirMask)<<shiftDir |
		uint64(texture)<<shiftTex)
}

func (q Quad) X() int      { return int(q>>shiftX) & coordMask }
func (q Quad) Y() int      { return int(q>>shiftY) & coordMask }
func (q Quad) Z() int      { return int(q>>shiftZ) & coordMask }
func (q Quad) Width() int  { return int(q>>shiftWidth) & coordMask }
func (q Quad) Height() int { return int(q>>shiftHeight) & coordMask }

func (q Quad) Direction() world.Direction {
	return world.Direction(int(q>>shiftDir) & dirMask)
}

func (q Quad) TextureID() uint32 {
	return uint32(q >> shiftTex)
}

// Anchor returns the anchor as an [x,y,z] array indexable by axis.
func (q Quad) Anchor() [3]int {
	return [3]int{q.X(), q.Y(), q.Z()}
}
