package meshing

import (
	"mini-voxel/internal/world"
)

const n = world.ChunkSize

// Mesh holds the merged quads of one chunk, one list per face direction.
type Mesh struct {
	Faces [world.DirectionCount][]Quad
}

// QuadCount returns the total number of quads across all directions.
func (m *Mesh) QuadCount() int {
	if m == nil {
		return 0
	}
	total := 0
	for _, f := range m.Faces {
		total += len(f)
	}
	return total
}

// IsEmpty reports whether no direction produced a quad.
func (m *Mesh) IsEmpty() bool {
	return m.QuadCount() == 0
}

// Mesher builds greedy meshes. It keeps a scratch mask between calls and is
// not safe for concurrent use; give each worker its own.
type Mesher struct {
	// mask holds, for the current layer, the block type of every visible face
	// not yet covered by an emitted quad (air otherwise). u is the fast axis.
	mask [n * n]world.BlockType
}

// NewMesher creates a mesher.
func NewMesher() *Mesher {
	return &Mesher{}
}

// BuildGreedyMesh meshes a chunk with a throwaway Mesher.
func BuildGreedyMesh(c *world.Chunk) *Mesh {
	return NewMesher().Build(c)
}

// Build meshes all six directions of a chunk. Neighbouring chunks are never
// consulted: cells outside the grid count as air, so boundary faces are
// always emitted.
func (m *Mesher) Build(c *world.Chunk) *Mesh {
	mesh := &Mesh{}
	if c == nil || c.IsEmpty() {
		return mesh
	}
	for _, dir := range world.Directions {
		mesh.Faces[dir] = m.buildDirection(c, dir, nil)
	}
	return mesh
}

// buildDirection sweeps the layers along the direction's normal axis and
// greedily merges each layer's visible faces. Rows (v) are scanned in order,
// columns (u) inside a row; width grows along u first, then height grows
// along v while the whole width-run of the next row still matches.
func (m *Mesher) buildDirection(c *world.Chunk, dir world.Direction, out []Quad) []Quad {
	info := dir.Info()
	var pos, nb [3]int

	for layer := 0; layer < n; layer++ {
		// Build the layer mask
		empty := true
		pos[info.Axis] = layer
		for v := 0; v < n; v++ {
			pos[info.V] = v
			for u := 0; u < n; u++ {
				pos[info.U] = u
				bt := c.GetBlock(pos[0], pos[1], pos[2])
				if bt == world.BlockTypeAir {
					m.mask[v*n+u] = world.BlockTypeAir
					continue
				}
				nb = pos
				nb[info.Axis] += info.Sign
				if c.IsAir(nb[0], nb[1], nb[2]) {
					m.mask[v*n+u] = bt
					empty = false
				} else {
					m.mask[v*n+u] = world.BlockTypeAir
				}
			}
		}
		if empty {
			continue
		}

		plane := layer
		if info.Sign > 0 {
			plane = layer + 1
		}

		// Greedy merge over mask
		for i := 0; i < n*n; i++ {
			bt := m.mask[i]
			if bt == world.BlockTypeAir {
				continue
			}
			u0 := i % n
			v0 := i / n

			width := 1
			for u := u0 + 1; u < n && m.mask[v0*n+u] == bt; u++ {
				width++
			}

			height := 1
		rows:
			for v := v0 + 1; v < n; v++ {
				for u := u0; u < u0+width; u++ {
					if m.mask[v*n+u] != bt {
						break rows
					}
				}
				height++
			}

			// Covered cells are cleared so later scans skip them
			for v := v0; v < v0+height; v++ {
				for u := u0; u < u0+width; u++ {
					m.mask[v*n+u] = world.BlockTypeAir
				}
			}

			var anchor [3]int
			anchor[info.Axis] = plane
			anchor[info.U] = u0
			anchor[info.V] = v0
			out = append(out, PackQuad(anchor[0], anchor[1], anchor[2], width, height, dir, bt.TextureID()))
		}
	}
	return out
}
