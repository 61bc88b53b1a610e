package meshing

import (
	"context"
	"testing"
	"time"

	"mini-voxel/internal/world"
)

func TestMeshAllMatchesSerialMeshing(t *testing.T) {
	gen := world.NewGenerator(99, 1)
	pool := NewWorkerPool(4, 8)
	defer pool.Shutdown()

	positions := world.GridPositions(3, 1, 3)
	results, err := pool.MeshAll(context.Background(), gen, positions)
	if err != nil {
		t.Fatalf("MeshAll: %v", err)
	}
	if len(results) != len(positions) {
		t.Fatalf("got %d results, want %d", len(results), len(positions))
	}
	for i, r := range results {
		if i > 0 && !results[i-1].Position.Less(r.Position) {
			t.Fatalf("results not sorted at %d", i)
		}
		want := BuildGreedyMesh(gen.GridFor(r.Position))
		for _, dir := range world.Directions {
			got := r.Mesh.Faces[dir]
			if len(got) != len(want.Faces[dir]) {
				t.Fatalf("%+v %v: %d quads, want %d", r.Position, dir, len(got), len(want.Faces[dir]))
			}
			for j := range got {
				if got[j] != want.Faces[dir][j] {
					t.Fatalf("%+v %v quad %d differs from serial mesh", r.Position, dir, j)
				}
			}
		}
	}
}

func TestSubmitJobWithGrid(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	defer pool.Shutdown()

	c := world.NewChunk(world.ChunkPosition{Y: 2})
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	out := make(chan MeshResult, 1)
	if !pool.SubmitJob(MeshJob{Position: c.Position, Grid: c, ResultChan: out}) {
		t.Fatalf("SubmitJob rejected on an idle pool")
	}
	select {
	case r := <-out:
		if r.Error != nil {
			t.Fatalf("unexpected error: %v", r.Error)
		}
		if r.Grid != c || r.Mesh.QuadCount() != 6 {
			t.Fatalf("got grid %p with %d quads", r.Grid, r.Mesh.QuadCount())
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for mesh result")
	}
}

func TestJobWithoutGridOrSourceFails(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	defer pool.Shutdown()

	out := make(chan MeshResult, 1)
	pool.SubmitJob(MeshJob{Position: world.ChunkPosition{}, ResultChan: out})
	select {
	case r := <-out:
		if r.Error == nil {
			t.Fatalf("expected an error for a job with nothing to mesh")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for mesh result")
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(2, 0)
	pool.Shutdown()
	pool.Shutdown()

	err := pool.SubmitJobBlocking(context.Background(), MeshJob{})
	if err == nil {
		t.Fatalf("expected error submitting to a stopped pool")
	}
}

func TestWorkerCountIsAtLeastOne(t *testing.T) {
	pool := NewWorkerPool(0, 1)
	defer pool.Shutdown()
	if pool.Workers() != 1 {
		t.Fatalf("Workers() = %d, want 1", pool.Workers())
	}
}
