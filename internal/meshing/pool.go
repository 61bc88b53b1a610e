package meshing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// MeshJob represents a meshing job request. When Grid is nil the worker
// first pulls the grid from Source, so generation and meshing of one chunk
// run on the same goroutine.
type MeshJob struct {
	Position world.ChunkPosition
	Grid     *world.Chunk
	Source   world.GridSource
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Position world.ChunkPosition
	Grid     *world.Chunk
	Mesh     *Mesh
	Error    error
}

// WorkerPool manages goroutines for chunk generation and meshing
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	workers = max(workers, 1)

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Start worker goroutines
	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued, the pool
// shuts down, or ctx is done.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("mesh pool shut down")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	mesher := NewMesher()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := p.process(mesher, job)

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) process(mesher *Mesher, job MeshJob) MeshResult {
	defer profiling.Track("meshing.worker")()
	grid := job.Grid
	if grid == nil {
		if job.Source == nil {
			return MeshResult{Position: job.Position, Error: fmt.Errorf("chunk %+v: no grid and no source", job.Position)}
		}
		grid = job.Source.GridFor(job.Position)
	}
	return MeshResult{
		Position: job.Position,
		Grid:     grid,
		Mesh:     mesher.Build(grid),
	}
}

// MeshAll runs one job per position through the pool, pulling grids from
// source, and returns the results sorted by position. The first failed job
// aborts the batch.
func (p *WorkerPool) MeshAll(ctx context.Context, source world.GridSource, positions []world.ChunkPosition) ([]MeshResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan MeshResult, len(positions))
	submitErr := make(chan error, 1)

	go func() {
		for _, pos := range positions {
			job := MeshJob{Position: pos, Source: source, ResultChan: results}
			if err := p.SubmitJobBlocking(ctx, job); err != nil {
				submitErr <- err
				return
			}
		}
		submitErr <- nil
	}()

	out := make([]MeshResult, 0, len(positions))
	for len(out) < len(positions) {
		select {
		case r := <-results:
			if r.Error != nil {
				return nil, r.Error
			}
			out = append(out, r)
		case err := <-submitErr:
			if err != nil {
				return nil, err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position.Less(out[j].Position) })
	return out, nil
}

// Shutdown gracefully shuts down the worker pool
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}
