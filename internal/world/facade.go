package world

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/config"
	"github.com/dantero-ps/voxelworld/internal/frustum"
	"github.com/dantero-ps/voxelworld/internal/lod"
	"github.com/dantero-ps/voxelworld/internal/logging"
	"github.com/dantero-ps/voxelworld/internal/meshalloc"
	"github.com/dantero-ps/voxelworld/internal/meshing"
)

// Facade is the world subsystem's single entry point (spec component
// C14): it owns the chunk store, the generation/meshing worker pools,
// the mesh buffer allocator, the LOD pyramid/scheduler, and the frustum
// culler, and exposes one Update call per frame plus VisibleChunks, the
// culling and ordering query for the render side; it issues no draw
// calls itself. Grounded
// on the teacher's internal/world/world.go, which played the same
// coordinating role over the teacher's ChunkStore/ChunkStreamer/
// generator trio; generalized here to additionally own C9-C13.
//
// Concurrency model (spec.md §5): chunk generation and meshing run on
// worker pools; Facade itself is only safe to call Update/VisibleChunks
// from the single main thread that owns all RHI interactions. stopFlag
// is set by Shutdown and checked at the start of Update, which then
// returns without starting new work; phases already running are not
// interrupted.
type Facade struct {
	store    *chunk.Store
	streamer *ChunkStreamer
	gen      *Generator
	catalog  *block.Catalog
	tiles    meshing.TileResolver

	meshPool *meshing.WorkerPool
	alloc    *meshalloc.Allocator

	pyramid   *lod.Pyramid
	scheduler *lod.Scheduler

	loadRadius  int32
	lodRadiusL1 int32
	lodRadiusL2 int32
	lodRadiusL3 int32

	meshMu      sync.Mutex
	meshResults map[chunk.Coord]chan meshing.MeshResult
	allocations map[chunk.Coord]meshalloc.MeshAllocation

	lodMu          sync.Mutex
	lodAllocations map[lodRegionKey]meshalloc.MeshAllocation

	stopFlag atomic.Bool
}

// lodRegionKey identifies an LOD allocation by tier and region coordinate,
// since lod.RegionCoord alone is only unique within one tier's pyramid map.
type lodRegionKey struct {
	Tier  lod.Tier
	Coord lod.RegionCoord
}

// Config bundles the tunables a Facade needs at construction, mirroring
// spec.md §6's world-gen and LOD parameter set.
type Config struct {
	Seed               int64
	LoadRadius         int32
	LODRadiusL1        int32
	LODRadiusL2        int32
	LODRadiusL3        int32
	MeshWorkers        int
	MeshQueueSize      int
	LODWorkers         int
	LODCacheSize       int
	MaxUploadsPerFrame int
	ArenaGrowthBytes   int
}

// ConfigFromGlobal reads the package-global world-gen settings
// (internal/config) into a Config, the teacher's idiom of deriving
// constructor parameters from the config package rather than threading
// flags through call sites.
func ConfigFromGlobal(meshWorkers, meshQueueSize, lodWorkers, lodCacheSize, arenaGrowthBytes int) Config {
	l1, l2, l3 := config.GetLODRadii()
	return Config{
		Seed:               config.GetSeed(),
		LoadRadius:         int32(config.GetRenderDistance()),
		LODRadiusL1:        int32(l1),
		LODRadiusL2:        int32(l2),
		LODRadiusL3:        int32(l3),
		MeshWorkers:        meshWorkers,
		MeshQueueSize:      meshQueueSize,
		LODWorkers:         lodWorkers,
		LODCacheSize:       lodCacheSize,
		MaxUploadsPerFrame: config.GetMaxUploadsPerFrame(),
		ArenaGrowthBytes:   arenaGrowthBytes,
	}
}

// NewFacade wires the full C2-C13 pipeline over a fresh world, given a
// tile resolver and an initial GPU buffer for the mesh allocator's first
// arena.
func NewFacade(cfg Config, tiles meshing.TileResolver, initialBuffer meshalloc.GPUBuffer, gen *Generator) *Facade {
	store := chunk.NewStore()
	catalog := block.DefaultCatalog()

	pyramid := lod.NewPyramid()
	f := &Facade{
		store:       store,
		streamer:    NewChunkStreamer(store, gen),
		gen:         gen,
		catalog:     catalog,
		tiles:       tiles,
		meshPool:    meshing.NewWorkerPool(catalog, tiles, cfg.MeshWorkers, cfg.MeshQueueSize),
		alloc:       meshalloc.NewAllocator(initialBuffer, cfg.ArenaGrowthBytes),
		pyramid:     pyramid,
		scheduler:   lod.NewScheduler(pyramid, cfg.LODWorkers, cfg.LODCacheSize, cfg.MaxUploadsPerFrame),
		loadRadius:     cfg.LoadRadius,
		meshResults:    make(map[chunk.Coord]chan meshing.MeshResult),
		allocations:    make(map[chunk.Coord]meshalloc.MeshAllocation),
		lodAllocations: make(map[lodRegionKey]meshalloc.MeshAllocation),
	}
	f.lodRadiusL1, f.lodRadiusL2, f.lodRadiusL3 = cfg.LODRadiusL1, cfg.LODRadiusL2, cfg.LODRadiusL3
	if f.lodRadiusL1 == 0 {
		f.lodRadiusL1 = f.loadRadius * 2
	}
	if f.lodRadiusL2 == 0 {
		f.lodRadiusL2 = f.lodRadiusL1 * 2
	}
	if f.lodRadiusL3 == 0 {
		f.lodRadiusL3 = f.lodRadiusL2 * 2
	}
	return f
}

// Update drives one frame's worth of streaming, meshing dispatch, and LOD
// scheduling around the player's position and velocity, per spec.md
// §4.14's update(player_pos, velocity, view_proj) entry point. viewProj
// is not used here; VisibleChunks takes the view-projection for its
// frustum test.
func (f *Facade) Update(playerPos, velocity mgl32.Vec3, viewProj mgl32.Mat4) {
	if f.stopFlag.Load() {
		return
	}

	f.streamer.StreamAroundAsync(playerPos.X(), playerPos.Z(), f.loadRadius)

	cx := int32(playerPos.X()) / chunk.SizeX
	cz := int32(playerPos.Z()) / chunk.SizeZ
	f.streamer.PruneHeightCache(cx, cz, f.loadRadius+2)
	evicted := f.store.EvictFarChunks(cx, cz, f.loadRadius+2)
	if evicted > 0 {
		logging.L().Debugf("evicted %d chunks outside load radius", evicted)
	}

	f.dispatchDirtyMeshes()
	f.drainMeshResults()

	velX, velZ := float64(velocity.X()), float64(velocity.Z())
	tierChunkRadii := map[lod.Tier]int32{lod.TierL1: f.lodRadiusL1, lod.TierL2: f.lodRadiusL2, lod.TierL3: f.lodRadiusL3}
	for _, tier := range []lod.Tier{lod.TierL1, lod.TierL2, lod.TierL3} {
		size := tier.RegionSize()
		prx := float64(playerPos.X()) / float64(chunk.SizeX*size)
		prz := float64(playerPos.Z()) / float64(chunk.SizeZ*size)
		rcx := int32(playerPos.X()) / (chunk.SizeX * size)
		rcz := int32(playerPos.Z()) / (chunk.SizeZ * size)
		tierRadius := tierChunkRadii[tier]/size + 1
		for drx := -tierRadius; drx <= tierRadius; drx++ {
			for drz := -tierRadius; drz <= tierRadius; drz++ {
				coord := lod.RegionCoord{RX: rcx + drx, RZ: rcz + drz}
				r := f.pyramid.Ensure(tier, coord)
				if r.State == lod.StateEmpty {
					f.scheduler.Enqueue(tier, r, prx, prz, velX, velZ)
				}
			}
		}
	}

	f.scheduler.DrainGeneration(func(coord lod.RegionCoord, tier lod.Tier) []int16 {
		size := tier.RegionSize()
		heights := make([]int16, size*size)
		for dx := int32(0); dx < size; dx++ {
			for dz := int32(0); dz < size; dz++ {
				wx, wz := coord.RX*size*chunk.SizeX+dx*chunk.SizeX, coord.RZ*size*chunk.SizeZ+dz*chunk.SizeZ
				h := f.gen.HeightAt(int(wx)+chunk.SizeX/2, int(wz)+chunk.SizeZ/2)
				heights[dx*size+dz] = int16(h)
			}
		}
		return heights
	})

	// Advance generated regions through meshing and upload, per spec.md
	// §4.12's state machine: StateGenerated -> StateQueuedMesh/StateMeshing
	// -> StateMeshReady -> StateUploading -> StateRenderable.
	f.scheduler.DrainMeshing(func(r *lod.Region) []float32 { return f.buildLODMesh(r) })
	f.scheduler.DrainUploads(func(r *lod.Region) { f.uploadLODMesh(r) })
}

// buildLODMesh turns a region's heightmap into a flat-shaded grid mesh: one
// quad per heightmap cell, sized to the region's tier (spec.md §4.12), with
// the per-cell height driving the quad's Y and a uniform up normal since
// LOD tiers render as a coarse heightfield rather than full block geometry.
func (f *Facade) buildLODMesh(r *lod.Region) []float32 {
	size := int(r.Tier.RegionSize())
	if len(r.Heightmap) != size*size {
		return nil
	}
	tileID := f.tiles(block.Stone, block.FaceTop)
	dst := make([]float32, 0, size*size*6*meshing.VertexFloats)

	cellX := float32(chunk.SizeX)
	cellZ := float32(chunk.SizeZ)
	originX := float32(r.Coord.RX) * cellX * float32(size)
	originZ := float32(r.Coord.RZ) * cellZ * float32(size)

	for dx := 0; dx < size; dx++ {
		for dz := 0; dz < size; dz++ {
			y := float32(r.Heightmap[dx*size+dz])
			x0 := originX + float32(dx)*cellX
			z0 := originZ + float32(dz)*cellZ
			x1, z1 := x0+cellX, z0+cellZ

			v := func(px, pz float32) meshing.Vertex {
				return meshing.Vertex{
					PX: px, PY: y, PZ: pz,
					CR: 1, CG: 1, CB: 1,
					NX: 0, NY: 1, NZ: 0,
					U: 0, V: 0,
					TileID:     tileID,
					Skylight:   15,
					Blocklight: 0,
				}
			}
			// Two triangles, CCW from above, matching the top-face winding
			// meshTopBottom uses for block.FaceTop quads.
			a, b, c, d := v(x0, z0), v(x1, z0), v(x1, z1), v(x0, z1)
			dst = a.Append(dst)
			dst = c.Append(dst)
			dst = b.Append(dst)
			dst = a.Append(dst)
			dst = d.Append(dst)
			dst = c.Append(dst)
		}
	}
	return dst
}

// uploadLODMesh copies a mesh-ready region's vertex data into the mesh
// allocator, mirroring uploadMesh's allocate/reallocate pattern.
func (f *Facade) uploadLODMesh(r *lod.Region) {
	key := lodRegionKey{Tier: r.Tier, Coord: r.Coord}
	data := make([]byte, 0, len(r.MeshData)*4)
	for _, v := range r.MeshData {
		data = append(data, float32ToBytes(v)...)
	}

	f.lodMu.Lock()
	old, hadOld := f.lodAllocations[key]
	f.lodMu.Unlock()

	var alloc meshalloc.MeshAllocation
	var err error
	if hadOld {
		alloc, err = f.alloc.Reallocate(old, data)
	} else {
		alloc, err = f.alloc.Allocate(data)
	}
	if err != nil {
		logging.L().Errorf("mesh allocator out of memory for LOD region tier=%d (%d,%d): %v",
			r.Tier, r.Coord.RX, r.Coord.RZ, err)
		return
	}

	f.lodMu.Lock()
	f.lodAllocations[key] = alloc
	f.lodMu.Unlock()
}

// dispatchDirtyMeshes submits a mesh job for every generated, dirty chunk
// that isn't already being meshed, per spec.md §5's ordering guarantee
// ("a mesh job is enqueued only after generation completes").
func (f *Facade) dispatchDirtyMeshes() {
	for _, c := range f.store.AllChunks() {
		if !c.Generated || !c.Dirty || c.InFlightMesh {
			continue
		}
		c.InFlightMesh = true
		c.SetClean()

		north, _ := f.store.Get(c.Coord.X, c.Coord.Z+1)
		south, _ := f.store.Get(c.Coord.X, c.Coord.Z-1)
		east, _ := f.store.Get(c.Coord.X+1, c.Coord.Z)
		west, _ := f.store.Get(c.Coord.X-1, c.Coord.Z)

		result := make(chan meshing.MeshResult, 1)
		f.meshMu.Lock()
		f.meshResults[c.Coord] = result
		f.meshMu.Unlock()

		f.meshPool.SubmitJobBlocking(meshing.MeshJob{
			Chunk:      c,
			Neighbors:  meshing.Neighbors{North: north, South: south, East: east, West: west},
			ModCount:   f.store.ModCount(),
			ResultChan: result,
		})
	}
}

// drainMeshResults collects any completed mesh jobs and uploads their
// vertex data through the allocator. Uploads happen on this thread
// because Facade is the single RHI-owning thread (spec.md §5); finished
// results are visited in map iteration order, so neither completion
// order nor any cross-chunk order is kept.
func (f *Facade) drainMeshResults() {
	f.meshMu.Lock()
	pending := make(map[chunk.Coord]chan meshing.MeshResult, len(f.meshResults))
	for coord, ch := range f.meshResults {
		pending[coord] = ch
	}
	f.meshMu.Unlock()

	for coord, ch := range pending {
		select {
		case result := <-ch:
			f.uploadMesh(coord, result)
			f.meshMu.Lock()
			delete(f.meshResults, coord)
			f.meshMu.Unlock()
			if c, ok := f.store.Get(coord.X, coord.Z); ok {
				c.InFlightMesh = false
			}
		default:
		}
	}
}

func (f *Facade) uploadMesh(coord chunk.Coord, result meshing.MeshResult) {
	if result.Error != nil {
		logging.L().Errorf("mesh job for chunk (%d,%d) failed: %v", coord.X, coord.Z, result.Error)
		return
	}
	data := make([]byte, 0, len(result.Solid)*4)
	for _, v := range result.Solid {
		data = append(data, float32ToBytes(v)...)
	}

	f.meshMu.Lock()
	old, hadOld := f.allocations[coord]
	f.meshMu.Unlock()

	var alloc meshalloc.MeshAllocation
	var err error
	if hadOld {
		alloc, err = f.alloc.Reallocate(old, data)
	} else {
		alloc, err = f.alloc.Allocate(data)
	}
	if err != nil {
		logging.L().Errorf("mesh allocator out of memory for chunk (%d,%d): %v", coord.X, coord.Z, err)
		if c, ok := f.store.Get(coord.X, coord.Z); ok {
			c.Dirty = true
		}
		return
	}

	f.meshMu.Lock()
	f.allocations[coord] = alloc
	f.meshMu.Unlock()
}

func float32ToBytes(v float32) []byte {
	u := math.Float32bits(v)
	b := make([]byte, 4)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
	return b
}

// VisibleChunks returns the L0 chunks that pass the frustum test, ordered
// front-to-back by squared camera distance, per spec.md §4.13's solid
// draw-order requirement for the native tier.
func (f *Facade) VisibleChunks(viewProj mgl32.Mat4, cameraOrigin mgl32.Vec3) []*chunk.Chunk {
	fr := frustum.FromViewProjection(viewProj)
	var visible []*chunk.Chunk
	for _, c := range f.store.AllChunks() {
		if !c.Generated {
			continue
		}
		if fr.IntersectsChunk(c.Coord.X, c.Coord.Z, cameraOrigin) {
			visible = append(visible, c)
		}
	}
	sortChunksFrontToBack(visible, cameraOrigin)
	return visible
}

func sortChunksFrontToBack(chunks []*chunk.Chunk, origin mgl32.Vec3) {
	distSq := func(c *chunk.Chunk) float32 {
		wx, wz := c.Coord.WorldOrigin()
		dx := float32(wx) - origin.X()
		dz := float32(wz) - origin.Z()
		return dx*dx + dz*dz
	}
	for i := 1; i < len(chunks); i++ {
		for j := i; j > 0 && distSq(chunks[j-1]) > distSq(chunks[j]); j-- {
			chunks[j-1], chunks[j] = chunks[j], chunks[j-1]
		}
	}
}

// Pause halts the LOD scheduler's queue draining, per spec.md §4.12;
// in-flight generation/mesh jobs still complete.
func (f *Facade) Pause() { f.scheduler.Pause() }

// Resume re-enables LOD scheduling.
func (f *Facade) Resume() { f.scheduler.Resume() }

// Shutdown sets the cooperative stop flag and releases worker pools.
func (f *Facade) Shutdown() {
	f.stopFlag.Store(true)
	f.streamer.Close()
	f.meshPool.Shutdown()
	f.scheduler.Stop()
}

// Store exposes the underlying chunk store for read access (e.g. the
// player's collision/physics queries).
func (f *Facade) Store() *chunk.Store { return f.store }
