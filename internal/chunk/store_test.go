package chunk

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := NewStore()
	a := s.GetOrCreate(3, -2)
	b := s.GetOrCreate(3, -2)
	if a != b {
		t.Fatalf("GetOrCreate returned different chunks for the same coord")
	}
}

func TestGetBlockOutOfBoundsYReturnsAir(t *testing.T) {
	s := NewStore()
	if got := s.GetBlock(0, -1, 0); got != block.Air {
		t.Fatalf("GetBlock at y=-1 = %v, want Air", got)
	}
	if got := s.GetBlock(0, 256, 0); got != block.Air {
		t.Fatalf("GetBlock at y=256 = %v, want Air", got)
	}
}

func TestSetBlockMarksBoundaryNeighborDirty(t *testing.T) {
	s := NewStore()
	west := s.GetOrCreate(-1, 0)
	s.GetOrCreate(0, 0)
	west.Dirty = false

	s.SetBlock(0, 10, 0, block.Stone) // local x=0 touches the west neighbor's east edge

	if !west.Dirty {
		t.Fatalf("west neighbor chunk should be marked dirty by a boundary write")
	}
}

func TestEvictFarChunksSkipsInFlight(t *testing.T) {
	s := NewStore()
	far := s.GetOrCreate(100, 100)
	far.InFlightGen = true
	s.GetOrCreate(0, 0)

	removed := s.EvictFarChunks(0, 0, 2)
	if removed != 0 {
		t.Fatalf("expected 0 removed (far chunk in flight), got %d", removed)
	}
	if !s.Has(Coord{X: 100, Z: 100}) {
		t.Fatalf("in-flight chunk should not have been evicted")
	}
}

func TestChunksInRadiusXZ(t *testing.T) {
	s := NewStore()
	s.GetOrCreate(0, 0)
	s.GetOrCreate(1, 0)
	s.GetOrCreate(10, 10)

	got := s.ChunksInRadiusXZ(0, 0, 2)
	if len(got) != 2 {
		t.Fatalf("ChunksInRadiusXZ(0,0,2) returned %d chunks, want 2", len(got))
	}
}
