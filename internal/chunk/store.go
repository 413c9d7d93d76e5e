package chunk

import (
	"fmt"
	"sync"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/profiling"
)

// Store owns a mapping from (chunk_x, chunk_z) to chunks. Adapted from the
// teacher's internal/world/chunk_store.go: same map+RWMutex shape and
// double-checked-locking create path, generalized from a per-column slice
// indexed by chunk_y (there is no vertical chunking here) to a plain
// Coord->*Chunk map, since spec.md §3 has exactly one chunk per (x,z).
type Store struct {
	mu       sync.RWMutex
	chunks   map[Coord]*Chunk
	modCount uint64
}

// NewStore returns an empty chunk store.
func NewStore() *Store {
	return &Store{chunks: make(map[Coord]*Chunk)}
}

// GetOrCreate returns the chunk at (cx, cz), allocating an empty,
// ungenerated one if absent. Never fails in normal operation, per
// spec.md §4.2.
func (s *Store) GetOrCreate(cx, cz int32) *Chunk {
	coord := Coord{X: cx, Z: cz}
	s.mu.RLock()
	c, ok := s.chunks[coord]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.chunks[coord]; ok {
		return c
	}
	c = New(coord)
	s.chunks[coord] = c
	s.modCount++
	return c
}

// Get returns the chunk at (cx, cz) without creating it.
func (s *Store) Get(cx, cz int32) (*Chunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[Coord{X: cx, Z: cz}]
	return c, ok
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// GetBlock returns the block at world coordinates. Returns Air for
// y outside [0,256) or for unloaded chunks, per spec.md §4.2.
func (s *Store) GetBlock(wx, wy, wz int32) block.ID {
	if wy < 0 || wy >= SizeY {
		return block.Air
	}
	cx := floorDiv(wx, SizeX)
	cz := floorDiv(wz, SizeZ)
	c, ok := s.Get(cx, cz)
	if !ok {
		return block.Air
	}
	return c.GetBlock(int(mod(wx, SizeX)), int(wy), int(mod(wz, SizeZ)))
}

// SetBlock writes the block at world coordinates, marking the chunk and
// any boundary-adjacent neighbor chunks dirty. Panics if the target
// chunk isn't loaded, per spec.md §4.2 ("set_block(...) — panics if
// chunk not loaded"): unlike GetBlock's out-of-bounds Air default, a
// write to an unloaded chunk would silently vanish on the next load.
func (s *Store) SetBlock(wx, wy, wz int32, id block.ID) {
	if wy < 0 || wy >= SizeY {
		return
	}
	cx := floorDiv(wx, SizeX)
	cz := floorDiv(wz, SizeZ)
	c, ok := s.Get(cx, cz)
	if !ok {
		panic(fmt.Sprintf("chunk.Store.SetBlock: chunk (%d,%d) not loaded", cx, cz))
	}

	lx := mod(wx, SizeX)
	lz := mod(wz, SizeZ)
	c.SetBlock(int(lx), int(wy), int(lz), id)

	if lx == 0 {
		s.markDirtyIfLoaded(cx-1, cz)
	} else if lx == SizeX-1 {
		s.markDirtyIfLoaded(cx+1, cz)
	}
	if lz == 0 {
		s.markDirtyIfLoaded(cx, cz-1)
	} else if lz == SizeZ-1 {
		s.markDirtyIfLoaded(cx, cz+1)
	}
}

func (s *Store) markDirtyIfLoaded(cx, cz int32) {
	if c, ok := s.Get(cx, cz); ok {
		c.Dirty = true
	}
}

// AllChunks returns every loaded chunk. Iteration happens under a reader
// lock per spec.md §4.2.
func (s *Store) AllChunks() []*Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		out = append(out, c)
	}
	return out
}

// ChunksInRadiusXZ returns every loaded chunk within radius chunks (by
// squared Euclidean distance) of (cx, cz). Adapted from the teacher's
// AppendChunksInRadiusXZ, without the per-column slice index since there
// is exactly one chunk per column here.
func (s *Store) ChunksInRadiusXZ(cx, cz, radius int32) []*Chunk {
	defer profiling.Track("chunk.ChunksInRadiusXZ")()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Chunk
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > r2 {
				continue
			}
			if c, ok := s.chunks[Coord{X: cx + dx, Z: cz + dz}]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// ModCount returns the current modification counter, for cheap
// change-detection by callers that cache derived data over the chunk set.
func (s *Store) ModCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modCount
}

// EvictFarChunks removes chunks outside radius of (cx, cz), skipping any
// chunk still in flight (generation or meshing) so in-progress work is
// never orphaned. Returns the number removed.
func (s *Store) EvictFarChunks(cx, cz, radius int32) int {
	defer profiling.Track("chunk.EvictFarChunks")()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	r2 := radius * radius
	for coord, c := range s.chunks {
		dx := coord.X - cx
		dz := coord.Z - cz
		if dx*dx+dz*dz <= r2 {
			continue
		}
		if c.InFlightGen || c.InFlightMesh {
			continue
		}
		delete(s.chunks, coord)
		s.modCount++
		removed++
	}
	return removed
}

// Has reports whether a chunk is loaded at coord without creating it.
func (s *Store) Has(coord Coord) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.chunks[coord]
	return ok
}
