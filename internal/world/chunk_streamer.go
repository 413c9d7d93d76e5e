package world

import (
	"math"
	"runtime"
	"sync"

	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/profiling"
)

// ChunkStreamer dispatches asynchronous L0 chunk generation jobs over a
// worker pool and tracks in-flight work so the same column is never
// queued twice. Grounded on the teacher's
// internal/world/chunk_streamer.go (job channel + pending set + per-
// column height cache), generalized from the teacher's 3-D
// ChunkCoord{X,Y,Z}/per-section job model to the 2-D column-per-chunk
// model internal/chunk.Store uses.
type ChunkStreamer struct {
	jobs       chan chunk.Coord
	pending    map[chunk.Coord]struct{}
	pendingMu  sync.Mutex
	maxPending int

	heightCache   map[chunk.Coord]int
	heightCacheMu sync.RWMutex

	store *chunk.Store
	gen   *Generator
}

// NewChunkStreamer starts runtime.NumCPU() generation workers over store.
func NewChunkStreamer(store *chunk.Store, gen *Generator) *ChunkStreamer {
	cs := &ChunkStreamer{
		jobs:        make(chan chunk.Coord, 4096),
		pending:     make(map[chunk.Coord]struct{}),
		maxPending:  16384,
		heightCache: make(map[chunk.Coord]int),
		store:       store,
		gen:         gen,
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		go cs.worker()
	}
	return cs
}

// Close stops the background generation workers.
func (cs *ChunkStreamer) Close() { close(cs.jobs) }

func (cs *ChunkStreamer) worker() {
	for coord := range cs.jobs {
		cs.generateSync(coord)
		cs.pendingMu.Lock()
		delete(cs.pending, coord)
		cs.pendingMu.Unlock()
	}
}

func (cs *ChunkStreamer) generateSync(coord chunk.Coord) {
	c := cs.store.GetOrCreate(coord.X, coord.Z)
	if c.Generated || c.InFlightGen {
		return
	}
	c.InFlightGen = true
	cs.gen.Populate(c)
	c.InFlightGen = false
}

// RequestAsync queues coord for background generation, respecting the
// pending cap. Returns false if already present, already pending, or the
// cap was hit.
func (cs *ChunkStreamer) RequestAsync(coord chunk.Coord) bool {
	if c, ok := cs.store.Get(coord.X, coord.Z); ok && c.Generated {
		return false
	}
	cs.pendingMu.Lock()
	if _, ok := cs.pending[coord]; ok {
		cs.pendingMu.Unlock()
		return false
	}
	if cs.maxPending > 0 && len(cs.pending) >= cs.maxPending {
		cs.pendingMu.Unlock()
		return false
	}
	cs.pending[coord] = struct{}{}
	cs.pendingMu.Unlock()

	select {
	case cs.jobs <- coord:
		return true
	default:
		cs.pendingMu.Lock()
		delete(cs.pending, coord)
		cs.pendingMu.Unlock()
		return false
	}
}

// StreamAroundAsync enqueues every column within radius chunks of
// world-space (x,z) that isn't already generated or pending.
func (cs *ChunkStreamer) StreamAroundAsync(x, z float32, radius int32) int {
	defer profiling.Track("world.ChunkStreamer.StreamAroundAsync")()
	cx := int32(math.Floor(float64(x) / chunk.SizeX))
	cz := int32(math.Floor(float64(z) / chunk.SizeZ))

	queued := 0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if cs.RequestAsync(chunk.Coord{X: cx + dx, Z: cz + dz}) {
				queued++
			}
		}
	}
	return queued
}

// HeightNear returns a cached (or freshly sampled) terrain height for the
// column's center without a full chunk generation pass. The facade's LOD
// heightmaps do not go through this cache; they call Generator.HeightAt
// directly.
func (cs *ChunkStreamer) HeightNear(coord chunk.Coord) int {
	cs.heightCacheMu.RLock()
	h, ok := cs.heightCache[coord]
	cs.heightCacheMu.RUnlock()
	if ok {
		return h
	}
	wx, wz := coord.WorldOrigin()
	h = cs.gen.HeightAt(int(wx)+chunk.SizeX/2, int(wz)+chunk.SizeZ/2)
	cs.heightCacheMu.Lock()
	cs.heightCache[coord] = h
	cs.heightCacheMu.Unlock()
	return h
}

// PruneHeightCache drops cached heights outside radius chunks of (cx,cz).
func (cs *ChunkStreamer) PruneHeightCache(cx, cz, radius int32) {
	cs.heightCacheMu.Lock()
	defer cs.heightCacheMu.Unlock()
	for coord := range cs.heightCache {
		dx := coord.X - cx
		dz := coord.Z - cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.heightCache, coord)
		}
	}
}
