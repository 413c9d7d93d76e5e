package terrain

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/noise"
)

func newTestShaper(seed int64) *Shaper {
	s := noise.NewSampler(seed, 0.25, 0.2, 0.9, 0.6)
	return NewShaper(s, DefaultConfig())
}

func TestShapeColumnIsDeterministic(t *testing.T) {
	c1 := chunk.New(chunk.Coord{X: 0, Z: 0})
	c2 := chunk.New(chunk.Coord{X: 0, Z: 0})

	newTestShaper(0xDEADBEEF).ShapeColumn(c1, 5, 5, 5, 5, 0)
	newTestShaper(0xDEADBEEF).ShapeColumn(c2, 5, 5, 5, 5, 0)

	if c1.SurfaceHeight(5, 5) != c2.SurfaceHeight(5, 5) {
		t.Fatalf("same seed must give identical height")
	}
	if c1.Biome(5, 5) != c2.Biome(5, 5) {
		t.Fatalf("same seed must give identical biome")
	}
	for y := 0; y < chunk.SizeY; y++ {
		if c1.GetBlock(5, y, 5) != c2.GetBlock(5, y, 5) {
			t.Fatalf("same seed must give identical block column at y=%d", y)
		}
	}
}

func TestBedrockAlwaysAtY0(t *testing.T) {
	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	newTestShaper(1).ShapeColumn(c, 0, 0, 0, 0, 0)
	if got := c.GetBlock(0, 0, 0); got != block.Bedrock {
		t.Fatalf("GetBlock(x,0,z) = %v, want Bedrock", got)
	}
}

func TestColumnBelowSurfaceIsNeverAir(t *testing.T) {
	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	newTestShaper(2).ShapeColumn(c, 8, 8, 8, 8, 0)
	h := int(c.SurfaceHeight(8, 8))
	for y := 0; y <= h; y++ {
		if c.GetBlock(8, y, 8) == block.Air {
			t.Fatalf("block below surface height at y=%d must not be air", y)
		}
	}
}
