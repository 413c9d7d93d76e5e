// Package lod implements the LOD chunk pyramid and its scheduler (spec
// components C11 and C12): three outer tiers (L1/L2/L3) of coarser
// regions around the native L0 radius, a per-region state machine, and
// priority-ordered generation/upload queues. Grounded in the teacher's
// internal/world/chunk_streamer.go (job-channel worker pool, a
// heightCache the teacher never bounded) generalized from one flat
// radius to four nested tiers, and built on
// github.com/alitto/pond/v2 for the tier worker pools (the CPU-bound
// work §5 calls for) and github.com/hashicorp/golang-lru/v2 to bound
// the per-region heightmap cache the teacher's own cache wanted but
// never got.
package lod

import (
	"math"
	"sync"

	"github.com/alitto/pond/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Tier identifies one of the three outer LOD levels. Native L0 chunks are
// managed by internal/chunk and internal/world directly; this package
// only covers the coarser tiers.
type Tier int

const (
	TierL1 Tier = iota
	TierL2
	TierL3
	tierCount
)

// RegionSize is the chunk-count width of one region at each tier, per
// spec.md §4.12 (L1 = 2x2, L2 = 4x4, L3 = 8x8).
func (t Tier) RegionSize() int32 {
	switch t {
	case TierL1:
		return 2
	case TierL2:
		return 4
	default:
		return 8
	}
}

// State is a LOD region's position in spec.md §4.12's state machine.
type State int

const (
	StateEmpty State = iota
	StateQueuedGen
	StateGenerating
	StateGenerated
	StateQueuedMesh
	StateMeshing
	StateMeshReady
	StateUploading
	StateRenderable
	StateUnloading
	StateDestroyed
)

// RegionCoord identifies a region by its tier-scaled (rx, rz).
type RegionCoord struct {
	RX, RZ int32
}

// Region is one LOD pyramid cell.
type Region struct {
	Coord     RegionCoord
	Tier      Tier
	State     State
	JobToken  uint64
	PinCount  int
	Heightmap []int16   // L3 is heightmap-only, per spec.md §4.12
	MeshData  []float32 // populated by DrainMeshing, consumed by DrainUploads
}

// Pyramid holds the three outer tiers' region maps, each protected by
// its own reader-writer lock, mirroring the chunk store's discipline
// (spec.md §5: "the LOD region maps... use the same discipline").
type Pyramid struct {
	mu      [tierCount]sync.RWMutex
	regions [tierCount]map[RegionCoord]*Region
}

// NewPyramid returns an empty pyramid.
func NewPyramid() *Pyramid {
	p := &Pyramid{}
	for i := range p.regions {
		p.regions[i] = make(map[RegionCoord]*Region)
	}
	return p
}

// Ensure returns the region at (coord, tier), creating it in StateEmpty
// if absent.
func (p *Pyramid) Ensure(tier Tier, coord RegionCoord) *Region {
	p.mu[tier].Lock()
	defer p.mu[tier].Unlock()
	r, ok := p.regions[tier][coord]
	if !ok {
		r = &Region{Coord: coord, Tier: tier, State: StateEmpty}
		p.regions[tier][coord] = r
	}
	return r
}

// Get looks up a region without creating it.
func (p *Pyramid) Get(tier Tier, coord RegionCoord) (*Region, bool) {
	p.mu[tier].RLock()
	defer p.mu[tier].RUnlock()
	r, ok := p.regions[tier][coord]
	return r, ok
}

// Unload removes a region, bumping its job token first so any in-flight
// job for it is discarded on completion (spec.md §5 cancellation).
func (p *Pyramid) Unload(tier Tier, coord RegionCoord) {
	p.mu[tier].Lock()
	defer p.mu[tier].Unlock()
	if r, ok := p.regions[tier][coord]; ok {
		r.JobToken++
		r.State = StateDestroyed
		delete(p.regions[tier], coord)
	}
}

// All returns a snapshot of every region at tier.
func (p *Pyramid) All(tier Tier) []*Region {
	p.mu[tier].RLock()
	defer p.mu[tier].RUnlock()
	out := make([]*Region, 0, len(p.regions[tier]))
	for _, r := range p.regions[tier] {
		out = append(out, r)
	}
	return out
}

// priority implements spec.md §4.12's priority formula: smaller values
// are served first, and regions ahead of the player's velocity get a
// smaller value than ones behind.
func priority(rx, rz, prx, prz, velX, velZ float64) float64 {
	dx, dz := rx-prx, rz-prz
	distSq := dx*dx + dz*dz
	velMag := math.Hypot(velX, velZ)
	if velMag <= 0.1 {
		return distSq
	}
	offMag := math.Hypot(dx, dz)
	if offMag == 0 {
		return distSq
	}
	cosAngle := (velX*dx + velZ*dz) / (velMag * offMag)
	return distSq * (1 - 0.5*cosAngle)
}

type job struct {
	region   *Region
	priority float64
	token    uint64
}

// Scheduler runs the three tiers' generation/mesh/upload queues, pumping
// L3 first then L2 then L1 as spec.md §4.12 mandates ("L3 is pumped
// first... then L2, then L1").
type Scheduler struct {
	pyramid *Pyramid
	pool    pond.Pool

	heightCache *lru.Cache[RegionCoord, []int16]

	mu        sync.Mutex
	queues    [tierCount][]job
	paused    bool
	maxUpload int
}

// NewScheduler returns a scheduler backed by a bounded worker pool for
// CPU-bound region generation and an LRU cache for generated heightmaps,
// bounded to cacheSize entries.
func NewScheduler(pyramid *Pyramid, workers, cacheSize, maxUploadsPerFrame int) *Scheduler {
	cache, _ := lru.New[RegionCoord, []int16](cacheSize)
	return &Scheduler{
		pyramid:     pyramid,
		pool:        pond.NewPool(workers),
		heightCache: cache,
		maxUpload:   maxUploadsPerFrame,
	}
}

// Enqueue adds region to its tier's pending queue with a priority
// computed from the player's region-scaled position and velocity.
func (s *Scheduler) Enqueue(tier Tier, r *Region, prx, prz, velX, velZ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	r.State = StateQueuedGen
	r.JobToken++
	s.queues[tier] = append(s.queues[tier], job{
		region:   r,
		priority: priority(float64(r.Coord.RX), float64(r.Coord.RZ), prx, prz, velX, velZ),
		token:    r.JobToken,
	})
}

// Pause stops the scheduler from accepting or draining new work; jobs
// already dispatched to the pool still complete, per spec.md §4.12.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume re-enables enqueueing and draining.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// GenerateFunc produces a region's heightmap; the scheduler calls it for
// every tier.
type GenerateFunc func(coord RegionCoord, tier Tier) []int16

// DrainGeneration pops the best-priority job from each tier in L3, L2,
// L1 order and submits it to the worker pool. A completion is discarded
// if the region's job_token has changed since the job was enqueued
// (spec.md §5 cancellation).
func (s *Scheduler) DrainGeneration(gen GenerateFunc) {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return
	}
	var picked [tierCount]*job
	for t := TierL3; t >= TierL1; t-- {
		q := s.queues[t]
		if len(q) == 0 {
			continue
		}
		best := 0
		for i := 1; i < len(q); i++ {
			if q[i].priority < q[best].priority {
				best = i
			}
		}
		j := q[best]
		s.queues[t] = append(q[:best], q[best+1:]...)
		picked[t] = &j
	}
	s.mu.Unlock()

	for t := TierL3; t >= TierL1; t-- {
		j := picked[t]
		if j == nil {
			continue
		}
		region := j.region
		token := j.token
		tier := t
		s.pool.Submit(func() {
			region.State = StateGenerating
			heights := gen(region.Coord, tier)
			if region.JobToken != token {
				return // stale, per spec.md §5
			}
			region.Heightmap = heights
			s.heightCache.Add(region.Coord, heights)
			region.State = StateGenerated
		})
	}
}

// MeshFunc builds a renderable mesh for a region whose heightmap has
// already been generated.
type MeshFunc func(r *Region) []float32

// DrainMeshing advances every StateGenerated region at each tier to
// StateQueuedMesh and submits mesh building to the worker pool, draining
// L3 then L2 then L1 like DrainGeneration. A completion is discarded if
// the region's job_token has changed since it was picked up, the same
// cancellation rule DrainGeneration applies.
func (s *Scheduler) DrainMeshing(mesh MeshFunc) {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	for t := TierL3; t >= TierL1; t-- {
		for _, r := range s.pyramid.All(t) {
			if r.State != StateGenerated {
				continue
			}
			r.State = StateQueuedMesh
			region := r
			token := region.JobToken
			s.pool.Submit(func() {
				region.State = StateMeshing
				data := mesh(region)
				if region.JobToken != token {
					return // stale, per spec.md §5
				}
				region.MeshData = data
				region.State = StateMeshReady
			})
		}
	}
}

// DrainUploads dispatches up to maxUploadsPerFrame mesh-ready regions to
// upload, draining L3 then L2 then L1, per spec.md §4.12's upload
// budget. uploadFn is called on the main RHI thread by the caller.
func (s *Scheduler) DrainUploads(uploadFn func(r *Region)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	budget := s.maxUpload
	for t := TierL3; t >= TierL1 && budget > 0; t-- {
		for _, r := range s.pyramid.All(t) {
			if budget <= 0 {
				break
			}
			if r.State != StateMeshReady {
				continue
			}
			r.State = StateUploading
			uploadFn(r)
			r.State = StateRenderable
			budget--
		}
	}
}

// MaskRadius returns the shader mask_radius for the native L0 tier, per
// spec.md §4.12: (L0 radius - 1) * chunk_size.
func MaskRadius(l0Radius, chunkSize int32) float32 {
	return float32((l0Radius - 1) * chunkSize)
}

// Stop drains in-flight pool work and releases resources.
func (s *Scheduler) Stop() {
	s.pool.StopAndWait()
}
