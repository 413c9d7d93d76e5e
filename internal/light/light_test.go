package light

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
)

func isOpaqueTest(id uint8) bool { return block.ID(id) == block.Stone }
func isFluidTest(id uint8) bool  { return block.ID(id) == block.Water }

// TestSkylightSweep mirrors spec.md scenario S4: a single opaque block at
// (8,100,8), air everywhere else.
func TestSkylightSweep(t *testing.T) {
	c := chunk.New(chunk.Coord{0, 0})
	c.SetBlock(8, 100, 8, block.Stone)

	SweepSkylight(c, isOpaqueTest, isFluidTest)

	if got := c.SkyLight(8, 99, 8); got != 0 {
		t.Fatalf("skylight directly under the opaque block = %d, want 0", got)
	}
	if got := c.SkyLight(7, 99, 8); got != 15 {
		t.Fatalf("skylight beside the opaque block = %d, want 15", got)
	}
}

func TestSkylightDecrementsThroughWater(t *testing.T) {
	c := chunk.New(chunk.Coord{0, 0})
	c.SetBlock(5, 50, 5, block.Water)
	c.SetBlock(5, 49, 5, block.Water)

	SweepSkylight(c, isOpaqueTest, isFluidTest)

	if got := c.SkyLight(5, 51, 5); got != 15 {
		t.Fatalf("skylight above water = %d, want 15", got)
	}
	// Each cell stores the value carried into it; a water cell lowers the
	// value passed on to the cells beneath it.
	if got := c.SkyLight(5, 50, 5); got != 15 {
		t.Fatalf("skylight in first water cell = %d, want 15", got)
	}
	if got := c.SkyLight(5, 49, 5); got != 14 {
		t.Fatalf("skylight in second water cell = %d, want 14", got)
	}
}

// TestBlockLightPropagation places a glowstone emitter (15/15/15) at x=0 of
// an otherwise air chunk, so every distance 0..15 along +X lies inside the
// single chunk PropagateBlockLight works on.
func TestBlockLightPropagation(t *testing.T) {
	c := chunk.New(chunk.Coord{0, 0})
	c.SetBlock(0, 64, 8, block.Glowstone)

	PropagateBlockLight(c, []Emitter{{X: 0, Y: 64, Z: 8, R: 15, G: 15, B: 15}}, isOpaqueTest)

	for d := 0; d <= 15; d++ {
		r, g, b := c.BlockLight(d, 64, 8)
		want := uint8(15 - d)
		if r != want || g != want || b != want {
			t.Fatalf("block light at distance %d = (%d,%d,%d), want %d on all channels", d, r, g, b, want)
		}
	}
	r, g, b := c.BlockLight(16, 64, 8)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("block light at distance 16 should be 0, got (%d,%d,%d)", r, g, b)
	}
}

func TestBlockLightNeverExceedsEmitterMinusDistance(t *testing.T) {
	c := chunk.New(chunk.Coord{0, 0})
	c.SetBlock(8, 64, 8, block.Glowstone)
	PropagateBlockLight(c, []Emitter{{X: 8, Y: 64, Z: 8, R: 15, G: 15, B: 15}}, isOpaqueTest)

	for dx := -5; dx <= 5; dx++ {
		for dz := -5; dz <= 5; dz++ {
			x, z := 8+dx, 8+dz
			if x < 0 || x >= chunk.SizeX || z < 0 || z >= chunk.SizeZ {
				continue
			}
			dist := absInt(dx) + absInt(dz)
			r, _, _ := c.BlockLight(x, 64, z)
			maxAllowed := 15 - dist
			if maxAllowed < 0 {
				maxAllowed = 0
			}
			if int(r) > maxAllowed {
				t.Fatalf("block light at manhattan distance %d = %d, exceeds %d", dist, r, maxAllowed)
			}
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
