package world

import (
	"math"
	"sort"
	"sync"
)

// ChunkStore manages the storage and retrieval of chunks.
// Keys are unique; iteration order of the underlying map is irrelevant,
// callers that need a stable order use Positions.
type ChunkStore struct {
	chunks   map[ChunkPosition]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkPosition]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk position.
// If the chunk doesn't exist and create is true, an empty one is created.
func (cs *ChunkStore) GetChunk(pos ChunkPosition, create bool) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[pos]
	cs.mu.RUnlock()
	if exists || !create {
		return chunk
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	// Double-check locking: another goroutine might have created it while we were waiting for the lock
	if existing, ok := cs.chunks[pos]; ok {
		return existing
	}
	chunk = NewChunk(pos)
	cs.chunks[pos] = chunk
	cs.modCount++
	return chunk
}

// AddChunk adds a pre-generated chunk to the store. An existing chunk at the
// same position is kept and false is returned.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.chunks[chunk.Position]; ok {
		return false
	}
	cs.chunks[chunk.Position] = chunk
	cs.modCount++
	return true
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(pos ChunkPosition) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[pos]
	cs.mu.RUnlock()
	return exists
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Positions returns all chunk positions sorted by x, y, z.
func (cs *ChunkStore) Positions() []ChunkPosition {
	cs.mu.RLock()
	out := make([]ChunkPosition, 0, len(cs.chunks))
	for pos := range cs.chunks {
		out = append(out, pos)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// Get returns the block type at the specified world coordinates.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	pos := ChunkPosition{
		X: floorDiv(x, ChunkSize),
		Y: floorDiv(y, ChunkSize),
		Z: floorDiv(z, ChunkSize),
	}
	chunk := cs.GetChunk(pos, false)
	if chunk == nil {
		return BlockTypeAir
	}
	return chunk.GetBlock(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floor32(f float32) float32 {
	return float32(math.Floor(float64(f)))
}
