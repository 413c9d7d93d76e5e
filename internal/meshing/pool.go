package meshing

import (
	"context"
	"sync"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
)

// MeshJob is one mesh-rebuild request: a dirty chunk, its currently
// loaded neighbors, and the chunk store's mod count the caller read
// before submitting, which the worker copies into MeshResult. No caller
// compares it against the store to drop a stale result.
type MeshJob struct {
	Chunk    *chunk.Chunk
	Neighbors Neighbors
	ModCount  uint64
	ResultChan chan MeshResult
}

// MeshResult is the completed job's output.
type MeshResult struct {
	Coord    chunk.Coord
	ModCount uint64
	Solid    []float32
	Fluid    []float32
	Error    error
}

// WorkerPool runs BuildGreedyMesh jobs on a fixed goroutine pool, mirroring
// the teacher's channel-queue worker pool shape (internal/meshing/pool.go
// before adaptation, internal/world/chunk_streamer.go's job/result channel
// pattern).
type WorkerPool struct {
	catalog *block.Catalog
	tiles   TileResolver

	jobQueue chan MeshJob
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts workers goroutines ready to mesh chunks.
func NewWorkerPool(catalog *block.Catalog, tiles TileResolver, workers, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		catalog:  catalog,
		tiles:    tiles,
		jobQueue: make(chan MeshJob, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// SubmitJob enqueues a job, returning false if the queue is full (the
// caller should drop or retry next frame rather than block).
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking enqueues a job, blocking until queued or the pool is
// shut down.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			solid, fluid := BuildGreedyMesh(p.catalog, job.Chunk, job.Neighbors, p.tiles)
			result := MeshResult{Coord: job.Chunk.Coord, ModCount: job.ModCount, Solid: solid, Fluid: fluid}
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

// Shutdown stops accepting new work and waits for in-flight jobs to drain.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
}

// QueueLength reports the number of jobs currently queued.
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}
