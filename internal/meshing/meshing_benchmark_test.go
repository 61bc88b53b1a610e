package meshing

import (
	"context"
	"testing"

	"mini-voxel/internal/world"
)

func BenchmarkBuildGreedyMesh_Terrain(b *testing.B) {
	ch := world.NewGenerator(8008135, 1).GridFor(world.ChunkPosition{})
	m := NewMesher()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Build(ch)
	}
}

func BenchmarkMeshAll_8x1x8(b *testing.B) {
	gen := world.NewGenerator(8008135, 1)
	positions := world.GridPositions(8, 1, 8)
	pool := NewWorkerPool(0, 64)
	defer pool.Shutdown()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pool.MeshAll(context.Background(), gen, positions); err != nil {
			b.Fatalf("MeshAll: %v", err)
		}
	}
}
