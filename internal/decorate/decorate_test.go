package decorate

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/biome"
	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
)

func stoneChunk() *chunk.Chunk {
	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			c.SetBlock(x, 0, z, block.Bedrock)
			for y := 1; y < 70; y++ {
				c.SetBlock(x, y, z, block.Stone)
			}
			c.SetBlock(x, 70, z, block.Grass)
			c.SetBiome(x, z, uint8(biome.Plains))
		}
	}
	return c
}

func TestOreVeinsOnlyReplaceStone(t *testing.T) {
	c := stoneChunk()
	d := NewDecorator(1, DefaultOres)
	d.decorateOres(c)

	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			if c.GetBlock(x, 0, z) != block.Bedrock {
				t.Fatalf("ore veins must never replace bedrock")
			}
			if c.GetBlock(x, 70, z) != block.Grass {
				t.Fatalf("ore veins must never replace the surface grass block")
			}
		}
	}
}

func TestSchematicNeverOverwritesNonAir(t *testing.T) {
	c := stoneChunk()
	d := NewDecorator(2, DefaultOres)
	// Stamp a schematic whose trunk collides with existing stone above
	// the nominal surface; every offset must be a no-op there.
	d.stampSchematic(c, OakTree, 5, 1, 5)
	if c.GetBlock(5, 1, 5) != block.Stone {
		t.Fatalf("stampSchematic must not overwrite existing stone, got %v", c.GetBlock(5, 1, 5))
	}
}

func TestDecorateIsDeterministic(t *testing.T) {
	c1 := stoneChunk()
	c2 := stoneChunk()
	NewDecorator(42, DefaultOres).Decorate(c1)
	NewDecorator(42, DefaultOres).Decorate(c2)

	for x := 0; x < chunk.SizeX; x++ {
		for y := 0; y < chunk.SizeY; y++ {
			for z := 0; z < chunk.SizeZ; z++ {
				if c1.GetBlock(x, y, z) != c2.GetBlock(x, y, z) {
					t.Fatalf("decoration must be deterministic at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}
