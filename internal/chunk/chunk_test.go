package chunk

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
)

func TestSetBlockUpdatesSurfaceHeight(t *testing.T) {
	c := New(Coord{0, 0})
	if h := c.SurfaceHeight(5, 5); h != -1 {
		t.Fatalf("empty column height = %d, want -1", h)
	}
	c.SetBlock(5, 10, 5, block.Stone)
	if h := c.SurfaceHeight(5, 5); h != 10 {
		t.Fatalf("height after set = %d, want 10", h)
	}
	c.SetBlock(5, 20, 5, block.Stone)
	if h := c.SurfaceHeight(5, 5); h != 20 {
		t.Fatalf("height after higher set = %d, want 20", h)
	}
	c.SetBlock(5, 20, 5, block.Air)
	if h := c.SurfaceHeight(5, 5); h != 10 {
		t.Fatalf("height after removing top block = %d, want 10 (recomputed)", h)
	}
}

func TestLightPackingRoundTrips(t *testing.T) {
	c := New(Coord{0, 0})
	c.SetSkyLight(1, 1, 1, 15)
	c.SetBlockLight(1, 1, 1, 3, 7, 9)

	if got := c.SkyLight(1, 1, 1); got != 15 {
		t.Fatalf("SkyLight = %d, want 15", got)
	}
	r, g, b := c.BlockLight(1, 1, 1)
	if r != 3 || g != 7 || b != 9 {
		t.Fatalf("BlockLight = (%d,%d,%d), want (3,7,9)", r, g, b)
	}
	// Setting block light must not disturb the sky channel already written.
	if got := c.SkyLight(1, 1, 1); got != 15 {
		t.Fatalf("SkyLight after SetBlockLight = %d, want unchanged 15", got)
	}
}

func TestOutOfBoundsSetIsNoOp(t *testing.T) {
	c := New(Coord{0, 0})
	c.SetBlock(-1, 0, 0, block.Stone)
	c.SetBlock(0, 256, 0, block.Stone)
	if len(c.ActiveBlocks()) != 0 {
		t.Fatalf("out-of-bounds SetBlock should not have placed any block")
	}
}
