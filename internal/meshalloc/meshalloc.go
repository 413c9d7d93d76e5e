// Package meshalloc implements the mesh buffer allocator (spec component
// C10): N large GPU-visible vertex buffers sub-allocated as arenas, with
// upload/free and GPU-in-flight deferral. Grounded in the teacher's
// internal/graphics/renderables/blocks/atlas.go (growable VBO, doubling
// capacity, offset bookkeeping) and other_examples' Leterax-go-voxels
// pkg/render/chunkBufferManager.go (arena sub-allocation, triple-buffered
// deferred reuse), generalized from the teacher's single monolithic,
// rebuild-from-CPU atlas to a free-list arena that frees/reuses ranges in
// place and defers physical reuse across in-flight frames instead of
// always rebuilding the whole buffer.
package meshalloc

import (
	"github.com/dantero-ps/voxelworld/internal/worlderr"
)

// MaxFramesInFlight bounds how long a freed range is held before its
// bytes may be reused, per spec.md §4.10.
const MaxFramesInFlight = 2

// GPUBuffer is the minimal write surface the allocator needs from the
// RHI layer; it never issues a draw call or binds state itself.
type GPUBuffer interface {
	Capacity() int
	Grow(newCapacity int)
	Write(offsetBytes int, data []byte)
}

// MeshAllocation identifies a previously allocated byte range. Callers
// hold onto it to issue draw calls (BaseVertex/Count) and to free it
// later.
type MeshAllocation struct {
	Arena  int
	Offset int
	Size   int
	gen    uint64
}

type freeRange struct {
	offset, size int
}

type pendingFree struct {
	offset, size  int
	retireAtFrame uint64
}

type arena struct {
	buf     GPUBuffer
	free    []freeRange
	pending []pendingFree
}

func newArena(buf GPUBuffer) *arena {
	return &arena{buf: buf, free: []freeRange{{0, buf.Capacity()}}}
}

// Allocator manages a set of arenas. It is single-threaded: spec.md §5
// requires the mesh allocator to run only on the main RHI thread.
type Allocator struct {
	arenas      []*arena
	frame       uint64
	nextGen     uint64
	growthBytes int
}

// NewAllocator returns an allocator over an initial arena buffer. growthBytes
// is how large each newly created arena is when none of the existing ones
// fit a request.
func NewAllocator(initial GPUBuffer, growthBytes int) *Allocator {
	a := &Allocator{growthBytes: growthBytes}
	a.arenas = append(a.arenas, newArena(initial))
	return a
}

// AddArena registers an additional backing buffer, e.g. one created by
// the RHI layer to grow total capacity.
func (a *Allocator) AddArena(buf GPUBuffer) {
	a.arenas = append(a.arenas, newArena(buf))
}

// Allocate copies data's bytes into the first free range large enough
// across the registered arenas (first-fit), growing the last arena if nothing fits, per
// spec.md §4.10. Returns ErrOutOfMemory only when growth itself cannot
// make room (the caller-supplied GPUBuffer.Grow is expected to succeed
// or panic on a genuine host allocation failure).
func (a *Allocator) Allocate(data []byte) (MeshAllocation, error) {
	size := len(data)
	if size == 0 {
		return MeshAllocation{}, nil
	}

	for i, ar := range a.arenas {
		if off, ok := ar.takeFit(size); ok {
			ar.buf.Write(off, data)
			a.nextGen++
			return MeshAllocation{Arena: i, Offset: off, Size: size, gen: a.nextGen}, nil
		}
	}

	// Nothing fit; grow the last arena to make room.
	last := a.arenas[len(a.arenas)-1]
	needed := last.buf.Capacity() + size
	grown := last.buf.Capacity()
	for grown < needed {
		if a.growthBytes <= 0 {
			return MeshAllocation{}, worlderr.ErrOutOfMemory
		}
		grown += a.growthBytes
	}
	last.growTo(grown)

	if off, ok := last.takeFit(size); ok {
		last.buf.Write(off, data)
		a.nextGen++
		return MeshAllocation{Arena: len(a.arenas) - 1, Offset: off, Size: size, gen: a.nextGen}, nil
	}
	return MeshAllocation{}, worlderr.ErrOutOfMemory
}

// Free marks alloc's range free, deferring its physical reuse until
// MaxFramesInFlight frames have retired, per spec.md §4.10.
func (a *Allocator) Free(alloc MeshAllocation) {
	if alloc.Size == 0 || alloc.Arena >= len(a.arenas) {
		return
	}
	ar := a.arenas[alloc.Arena]
	ar.pending = append(ar.pending, pendingFree{
		offset:        alloc.Offset,
		size:          alloc.Size,
		retireAtFrame: a.frame + MaxFramesInFlight,
	})
}

// Reallocate frees old (if non-zero) and allocates data's bytes fresh,
// bounding peak memory the way spec.md §4.10 requires: the old range is
// always freed before the new one is taken.
func (a *Allocator) Reallocate(old MeshAllocation, data []byte) (MeshAllocation, error) {
	if old.Size != 0 {
		a.Free(old)
	}
	return a.Allocate(data)
}

// EndFrame advances the frame counter and reclaims any pending frees
// whose retirement frame has passed, coalescing adjacent free ranges.
func (a *Allocator) EndFrame() {
	a.frame++
	for _, ar := range a.arenas {
		ar.retire(a.frame)
	}
}

func (ar *arena) takeFit(size int) (int, bool) {
	for i, fr := range ar.free {
		if fr.size < size {
			continue
		}
		off := fr.offset
		if fr.size == size {
			ar.free = append(ar.free[:i], ar.free[i+1:]...)
		} else {
			ar.free[i] = freeRange{offset: fr.offset + size, size: fr.size - size}
		}
		return off, true
	}
	return 0, false
}

func (ar *arena) growTo(newCapacity int) {
	oldCap := ar.buf.Capacity()
	ar.buf.Grow(newCapacity)
	ar.free = append(ar.free, freeRange{offset: oldCap, size: newCapacity - oldCap})
	ar.coalesce()
}

func (ar *arena) retire(frame uint64) {
	kept := ar.pending[:0]
	for _, p := range ar.pending {
		if p.retireAtFrame <= frame {
			ar.free = append(ar.free, freeRange{offset: p.offset, size: p.size})
			continue
		}
		kept = append(kept, p)
	}
	ar.pending = kept
	ar.coalesce()
}

func (ar *arena) coalesce() {
	if len(ar.free) < 2 {
		return
	}
	sortRanges(ar.free)
	merged := ar.free[:1]
	for _, r := range ar.free[1:] {
		last := &merged[len(merged)-1]
		if last.offset+last.size == r.offset {
			last.size += r.size
			continue
		}
		merged = append(merged, r)
	}
	ar.free = merged
}

func sortRanges(r []freeRange) {
	for i := 1; i < len(r); i++ {
		for j := i; j > 0 && r[j-1].offset > r[j].offset; j-- {
			r[j-1], r[j] = r[j], r[j-1]
		}
	}
}
