// Package world implements the world facade (spec component C14): the
// single entry point that drives chunk generation, meshing, lighting,
// the LOD pyramid, and frustum culling from its per-frame Update call and
// the VisibleChunks culling query.
// Grounded on the teacher's internal/world/world.go (the World type that
// owned a ChunkStore + ChunkStreamer + generator and exposed
// Update/Render-shaped methods), generalized to compose the new C2-C13
// packages instead of the teacher's monolithic generator.
package world

import (
	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/cave"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/config"
	"github.com/dantero-ps/voxelworld/internal/decorate"
	"github.com/dantero-ps/voxelworld/internal/light"
	"github.com/dantero-ps/voxelworld/internal/noise"
	"github.com/dantero-ps/voxelworld/internal/terrain"
)

// HeightReduction is the noise octave-count reduction passed through the
// sampler stack for full-detail L0 generation (spec.md §4.3's
// "reduction" parameter is 0 at native detail, larger at coarser LOD
// tiers).
const HeightReduction = 0

// Generator composes the noise sampler, terrain shaper, cave carver and
// decorator into the full per-chunk population pipeline spec.md §4
// describes as C3 through C7, followed by the initial lighting sweep
// (C8).
type Generator struct {
	sampler   *noise.Sampler
	shaper    *terrain.Shaper
	carver    *cave.Carver
	decorator *decorate.Decorator
	catalog   *block.Catalog
	cavesOn   bool
	index     config.GeneratorIndex

	// flatHeight is the fixed surface height the Flat registry entry
	// (SPEC_FULL.md §3) lays bedrock+stone+grass up to.
	flatHeight int
}

// NewGenerator builds a generator for the given world seed and tunables.
func NewGenerator(seed int64, tempLapse, ridgeInlandMin, ridgeInlandMax, ridgeInlandSparsity float32, terrainCfg terrain.Config, caveCfg cave.Config, ores []decorate.OreRule, cavesEnabled bool) *Generator {
	return newGenerator(seed, tempLapse, ridgeInlandMin, ridgeInlandMax, ridgeInlandSparsity, terrainCfg, caveCfg, ores, cavesEnabled, config.GeneratorOverworld)
}

func newGenerator(seed int64, tempLapse, ridgeInlandMin, ridgeInlandMax, ridgeInlandSparsity float32, terrainCfg terrain.Config, caveCfg cave.Config, ores []decorate.OreRule, cavesEnabled bool, index config.GeneratorIndex) *Generator {
	sampler := noise.NewSampler(seed, tempLapse, ridgeInlandMin, ridgeInlandMax, ridgeInlandSparsity)
	if index == config.GeneratorAuthentic {
		sampler = sampler.WithMode(noise.ModeAuthentic)
	}
	return &Generator{
		sampler:    sampler,
		shaper:     terrain.NewShaper(sampler, terrainCfg),
		carver:     cave.NewCarver(sampler, caveCfg, seed, terrainCfg.SeaLevel),
		decorator:  decorate.NewDecorator(seed, ores),
		catalog:    block.DefaultCatalog(),
		cavesOn:    cavesEnabled,
		index:      index,
		flatHeight: terrainCfg.SeaLevel,
	}
}

// NewGeneratorFromConfig builds a generator from the package-global
// world-gen settings (internal/config), the teacher's idiom for every
// tunable subsystem rather than threading flags through constructors.
// The selected config.GeneratorIndex (SPEC_FULL.md §3: Overworld,
// Authentic, Flat) picks the noise backend and terrain tuning; Populate
// dispatches on the same index to skip biome/cave/decorate entirely for
// Flat.
func NewGeneratorFromConfig(ores []decorate.OreRule) *Generator {
	index := config.GetGeneratorIndex()

	terrainCfg := terrain.Config{
		SeaLevel:       config.GetSeaLevel(),
		OceanThreshold: float64(config.GetOceanThreshold()),
		FillerDepth:    terrain.DefaultConfig().FillerDepth,
	}
	if index == config.GeneratorAuthentic {
		terrainCfg = terrain.AuthenticConfig()
	}
	caveCfg := cave.DefaultConfig()
	return newGenerator(
		config.GetSeed(),
		config.GetTempLapse(),
		config.GetRidgeInlandMin(),
		config.GetRidgeInlandMax(),
		config.GetRidgeInlandSparsity(),
		terrainCfg,
		caveCfg,
		ores,
		config.GetCaves(),
		index,
	)
}

// HeightAt exposes the shaper's height field for callers that only need
// a column height (the chunk streamer's column height cache, and the
// facade's per-region LOD heightmaps on every tier).
func (g *Generator) HeightAt(wx, wz int) int {
	if g.index == config.GeneratorFlat {
		return g.flatHeight
	}
	h, _, _, _ := g.shaper.HeightAt(wx, wz, HeightReduction)
	return h
}

// Populate runs the per-chunk generation pipeline and marks the chunk
// generated. The Overworld and Authentic registry entries (SPEC_FULL.md
// §3) both run the full C3-C8 pipeline, differing only in the noise
// backend and terrain tuning baked into the Generator at construction;
// the Flat entry takes the debug-flat shortcut in populateFlat instead.
func (g *Generator) Populate(c *chunk.Chunk) {
	if g.index == config.GeneratorFlat {
		g.populateFlat(c)
		c.Generated = true
		c.SetClean()
		return
	}

	wx0, wz0 := c.Coord.WorldOrigin()
	for lx := 0; lx < chunk.SizeX; lx++ {
		for lz := 0; lz < chunk.SizeZ; lz++ {
			g.shaper.ShapeColumn(c, lx, lz, int(wx0)+lx, int(wz0)+lz, HeightReduction)
		}
	}
	if g.cavesOn {
		g.carver.Carve(c, HeightReduction)
	}
	g.decorator.Decorate(c)

	light.SweepSkylight(c, g.isOpaqueID, g.isFluidID)
	light.PropagateBlockLight(c, g.collectEmitters(c), g.isOpaqueID)

	c.Generated = true
	c.SetClean()
}

// populateFlat lays bedrock at y0, stone filler up to flatHeight-1, and
// grass at flatHeight, the teacher's density.go PopulateChunk layering
// order promoted to a first-class registry entry (SPEC_FULL.md §3). It
// skips biome selection, cave carving, and decoration entirely — a flat
// debug world has no biomes, caves, or surface features to place — but
// still runs the skylight sweep so lighting-dependent meshing/rendering
// code sees a normally-lit chunk.
func (g *Generator) populateFlat(c *chunk.Chunk) {
	for lx := 0; lx < chunk.SizeX; lx++ {
		for lz := 0; lz < chunk.SizeZ; lz++ {
			c.SetBlock(lx, 0, lz, block.Bedrock)
			for y := 1; y < g.flatHeight && y < chunk.SizeY; y++ {
				c.SetBlock(lx, y, lz, block.Stone)
			}
			if g.flatHeight < chunk.SizeY {
				c.SetBlock(lx, g.flatHeight, lz, block.Grass)
			}
		}
	}
	light.SweepSkylight(c, g.isOpaqueID, g.isFluidID)
}

func (g *Generator) isOpaqueID(id uint8) bool {
	return g.catalog.Get(block.ID(id)).Opaque
}

func (g *Generator) isFluidID(id uint8) bool {
	return g.catalog.Get(block.ID(id)).Material == block.ClassFluid
}

func (g *Generator) collectEmitters(c *chunk.Chunk) []light.Emitter {
	var emitters []light.Emitter
	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			h := c.SurfaceHeight(x, z)
			for y := 0; y <= int(h)+1 && y < chunk.SizeY; y++ {
				id := c.GetBlock(x, y, z)
				def := g.catalog.Get(id)
				if def.Emission.R > 0 || def.Emission.G > 0 || def.Emission.B > 0 {
					emitters = append(emitters, light.Emitter{X: x, Y: y, Z: z, R: def.Emission.R, G: def.Emission.G, B: def.Emission.B})
				}
			}
		}
	}
	return emitters
}
