package world

import (
	"context"
	"fmt"
	"runtime"

	"mini-voxel/internal/profiling"

	"golang.org/x/sync/errgroup"
)

// World owns every generated chunk, keyed by chunk position.
type World struct {
	store  *ChunkStore
	source GridSource
}

// New creates a world that pulls chunk content from source.
func New(source GridSource) *World {
	return &World{
		store:  NewChunkStore(),
		source: source,
	}
}

// Store exposes the chunk map.
func (w *World) Store() *ChunkStore {
	return w.store
}

// Chunk returns the chunk at pos or nil.
func (w *World) Chunk(pos ChunkPosition) *Chunk {
	return w.store.GetChunk(pos, false)
}

// GridFor implements GridSource over the stored chunks, generating and
// storing any chunk that is not present yet.
func (w *World) GridFor(pos ChunkPosition) *Chunk {
	if c := w.store.GetChunk(pos, false); c != nil {
		return c
	}
	if w.source == nil {
		return NewChunk(pos)
	}
	c := w.source.GridFor(pos)
	if !w.store.AddChunk(c) {
		// another goroutine stored it first
		return w.store.GetChunk(pos, false)
	}
	return c
}

// GridPositions returns every position of an sx*sy*sz box of chunks whose
// minimum corner is the origin chunk.
func GridPositions(sx, sy, sz int) []ChunkPosition {
	out := make([]ChunkPosition, 0, max(sx*sy*sz, 0))
	for x := range sx {
		for y := range sy {
			for z := range sz {
				out = append(out, ChunkPosition{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// Generate populates every position from the grid source using up to
// workers goroutines. Positions already present are skipped.
func (w *World) Generate(ctx context.Context, positions []ChunkPosition, workers int) error {
	defer profiling.Track("world.Generate")()
	if w.source == nil {
		return fmt.Errorf("world has no grid source")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, pos := range positions {
		if w.store.HasChunk(pos) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w.store.AddChunk(w.source.GridFor(pos))
			return nil
		})
	}
	return g.Wait()
}
