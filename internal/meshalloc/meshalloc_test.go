package meshalloc

import (
	"errors"
	"testing"

	"github.com/dantero-ps/voxelworld/internal/worlderr"
)

type fakeBuffer struct {
	cap  int
	data []byte
}

func newFakeBuffer(capacity int) *fakeBuffer {
	return &fakeBuffer{cap: capacity, data: make([]byte, capacity)}
}

func (b *fakeBuffer) Capacity() int { return b.cap }

func (b *fakeBuffer) Grow(newCapacity int) {
	grown := make([]byte, newCapacity)
	copy(grown, b.data)
	b.data = grown
	b.cap = newCapacity
}

func (b *fakeBuffer) Write(offset int, data []byte) {
	copy(b.data[offset:], data)
}

func TestAllocateWritesAtOffset(t *testing.T) {
	buf := newFakeBuffer(64)
	a := NewAllocator(buf, 64)

	alloc, err := a.Allocate([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if alloc.Offset != 0 || alloc.Size != 4 {
		t.Fatalf("unexpected allocation %+v", alloc)
	}
	if buf.data[0] != 1 || buf.data[3] != 4 {
		t.Fatalf("data not written at the allocated offset")
	}
}

func TestFreeDefersReuseAcrossFrames(t *testing.T) {
	buf := newFakeBuffer(8)
	a := NewAllocator(buf, 8)

	first, _ := a.Allocate([]byte{1, 1, 1, 1})
	a.Free(first)

	// Immediately after freeing, the range must not be reusable: a
	// same-size allocation should land past the freed range or grow,
	// never reuse it before MaxFramesInFlight frames retire.
	second, err := a.Allocate([]byte{2, 2, 2, 2})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if second.Offset == first.Offset {
		t.Fatalf("freed range reused before retirement")
	}

	for i := 0; i < MaxFramesInFlight; i++ {
		a.EndFrame()
	}

	third, err := a.Allocate([]byte{3, 3, 3, 3})
	if err != nil {
		t.Fatalf("Allocate after retirement: %v", err)
	}
	if third.Offset != first.Offset {
		t.Fatalf("retired range not reused: got offset %d, want %d", third.Offset, first.Offset)
	}
}

func TestAllocateGrowsArenaWhenFull(t *testing.T) {
	buf := newFakeBuffer(4)
	a := NewAllocator(buf, 4)

	if _, err := a.Allocate([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("first Allocate: %v", err)
	}
	second, err := a.Allocate([]byte{5, 6, 7, 8})
	if err != nil {
		t.Fatalf("second Allocate should grow the arena, got: %v", err)
	}
	if second.Offset != 4 {
		t.Fatalf("expected grown allocation at offset 4, got %d", second.Offset)
	}
	if buf.Capacity() < 8 {
		t.Fatalf("arena did not grow, capacity = %d", buf.Capacity())
	}
}

func TestAllocateOutOfMemoryWhenGrowthDisabled(t *testing.T) {
	buf := newFakeBuffer(4)
	a := NewAllocator(buf, 0)

	if _, err := a.Allocate([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("first Allocate: %v", err)
	}
	_, err := a.Allocate([]byte{5, 6, 7, 8})
	if !errors.Is(err, worlderr.ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
}

func TestReallocateFreesOldBeforeAllocatingNew(t *testing.T) {
	// An 8-byte arena holds exactly one live 4-byte allocation plus one
	// pending-free 4-byte range; Reallocate must not need to grow past
	// that, since it frees the old range (even if deferred) before
	// taking the new one.
	buf := newFakeBuffer(8)
	a := NewAllocator(buf, 0)

	first, err := a.Allocate([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	second, err := a.Reallocate(first, []byte{9, 9, 9, 9})
	if err != nil {
		t.Fatalf("Reallocate should fit without growth: %v", err)
	}
	if second.Offset == first.Offset {
		t.Fatalf("old range is still pending-free and must not be reused immediately")
	}
	if buf.Capacity() != 8 {
		t.Fatalf("Reallocate should not have grown the arena, capacity = %d", buf.Capacity())
	}
}
