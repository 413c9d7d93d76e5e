package world

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/cave"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/config"
	"github.com/dantero-ps/voxelworld/internal/terrain"
)

func TestPopulateFlatLaysBedrockStoneGrass(t *testing.T) {
	g := newGenerator(1, 0.25, 0.2, 0.9, 0.6, terrain.Config{SeaLevel: 10, OceanThreshold: 0.35, FillerDepth: 4}, cave.DefaultConfig(), nil, false, config.GeneratorFlat)

	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	g.Populate(c)

	if !c.Generated {
		t.Fatal("Populate must mark the chunk generated")
	}
	if got := c.GetBlock(3, 0, 3); got != block.Bedrock {
		t.Fatalf("expected bedrock at y=0, got %v", got)
	}
	if got := c.GetBlock(3, 5, 3); got != block.Stone {
		t.Fatalf("expected stone filler below the flat height, got %v", got)
	}
	if got := c.GetBlock(3, 10, 3); got != block.Grass {
		t.Fatalf("expected grass at the flat height, got %v", got)
	}
	if got := c.GetBlock(3, 11, 3); got != block.Air {
		t.Fatalf("expected air above the flat height, got %v", got)
	}
}

func TestHeightAtFlatIsConstant(t *testing.T) {
	g := newGenerator(1, 0.25, 0.2, 0.9, 0.6, terrain.Config{SeaLevel: 40, OceanThreshold: 0.35, FillerDepth: 4}, cave.DefaultConfig(), nil, false, config.GeneratorFlat)

	if h := g.HeightAt(100, -200); h != 40 {
		t.Fatalf("Flat generator's HeightAt must be constant, got %d", h)
	}
	if h := g.HeightAt(-9999, 9999); h != 40 {
		t.Fatalf("Flat generator's HeightAt must not vary with position, got %d", h)
	}
}

func TestAuthenticModeUsesDistinctTerrainTuning(t *testing.T) {
	def, authentic := terrain.DefaultConfig(), terrain.AuthenticConfig()
	if def == authentic {
		t.Fatal("AuthenticConfig must differ from DefaultConfig")
	}

	g := newGenerator(1, 0.25, 0.2, 0.9, 0.6, authentic, cave.DefaultConfig(), nil, false, config.GeneratorAuthentic)

	// The Authentic backend swaps the noise family but keeps the same
	// piecewise height blend, so heights must still land in bounds.
	h := g.HeightAt(12, 34)
	if h < 1 || h >= chunk.SizeY {
		t.Fatalf("Authentic HeightAt must stay within chunk bounds, got %d", h)
	}
}
