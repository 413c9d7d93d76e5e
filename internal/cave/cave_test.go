package cave

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/noise"
)

func filledChunk() *chunk.Chunk {
	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			c.SetBlock(x, 0, z, block.Bedrock)
			for y := 1; y < 80; y++ {
				c.SetBlock(x, y, z, block.Stone)
			}
		}
	}
	return c
}

func TestCarveNeverTouchesY255(t *testing.T) {
	c := filledChunk()
	cv := NewCarver(noise.NewSampler(1, 0.25, 0.2, 0.9, 0.6), DefaultConfig(), 1, 64)
	cv.carveCell(c, 5, 255, 5)
	if c.GetBlock(5, 255, 5) != block.Air {
		// y=255 was never stone to begin with in this fixture, so this
		// only asserts carveCell's own guard did not panic or misbehave.
		t.Fatalf("expected y=255 to remain air in this fixture")
	}
}

func TestCarveNeverRemovesBedrock(t *testing.T) {
	c := filledChunk()
	cv := NewCarver(noise.NewSampler(1, 0.25, 0.2, 0.9, 0.6), DefaultConfig(), 1, 64)
	cv.carveCell(c, 5, 0, 5)
	if c.GetBlock(5, 0, 5) != block.Bedrock {
		t.Fatalf("carveCell must never remove bedrock")
	}
}

func TestWormCarvingIsDeterministic(t *testing.T) {
	c1 := filledChunk()
	c2 := filledChunk()
	s := noise.NewSampler(99, 0.25, 0.2, 0.9, 0.6)
	NewCarver(s, DefaultConfig(), 99, 64).Carve(c1, 0)
	NewCarver(s, DefaultConfig(), 99, 64).Carve(c2, 0)

	for x := 0; x < chunk.SizeX; x++ {
		for y := 0; y < 80; y++ {
			for z := 0; z < chunk.SizeZ; z++ {
				if c1.GetBlock(x, y, z) != c2.GetBlock(x, y, z) {
					t.Fatalf("cave carving must be deterministic at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}
