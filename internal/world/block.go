package world

// BlockType is the per-voxel tag stored in a chunk grid.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeCobblestone
	BlockTypeStone
	BlockTypeGrass

	blockTypeCount
)

// Texture array layers, in the order the renderer loads them.
const (
	TextureDirt uint32 = iota
	TextureCobblestone
	TextureStone
	TextureGrass

	TextureCount
)

var blockTextures = [blockTypeCount]uint32{
	BlockTypeDirt:        TextureDirt,
	BlockTypeCobblestone: TextureCobblestone,
	BlockTypeStone:       TextureStone,
	BlockTypeGrass:       TextureGrass,
}

var blockNames = [blockTypeCount]string{
	BlockTypeAir:         "air",
	BlockTypeDirt:        "dirt",
	BlockTypeCobblestone: "cobblestone",
	BlockTypeStone:       "stone",
	BlockTypeGrass:       "grass",
}

// IsSolid reports whether the block occupies its cell.
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

// TextureID returns the texture array layer used for every face of the block.
// Air has no texture and maps to layer 0; the mesher never emits faces for it.
func (b BlockType) TextureID() uint32 {
	if b >= blockTypeCount {
		return 0
	}
	return blockTextures[b]
}

func (b BlockType) String() string {
	if b >= blockTypeCount {
		return "unknown"
	}
	return blockNames[b]
}
