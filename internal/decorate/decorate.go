// Package decorate implements the decorator (spec component C7): ore
// veins and surface features (trees and tall grass) stamped after
// terrain and caves, before lighting. No vegetation profile places the
// Flower block. Grounded in the teacher's
// internal/world/generator.go column-fill loop for the "walk the surface,
// place one thing" shape, and enriched with
// github.com/aquilax/go-perlin-backed variant dither (the decorator's own
// independent noise channel, the way spec.md §4.7 names a dedicated
// variant_noise input separate from the terrain/biome noise stack).
package decorate

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/dantero-ps/voxelworld/internal/biome"
	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
)

// OreRule describes one ore kind's cluster spawning, per spec.md §4.7.
type OreRule struct {
	Block       block.ID
	ClustersMin int
	ClustersMax int
	SizeMax     int
	MinY, MaxY  int
}

// DefaultOres mirrors a conventional three-tier ore table; grounded in
// shape (not exact numbers) on the teacher's registry.blocks hardness
// tiers (stone < stonebrick < ...), generalized to depth-banded spawn
// rules the teacher's registry never modeled.
var DefaultOres = []OreRule{
	{Block: block.CoalOre, ClustersMin: 4, ClustersMax: 8, SizeMax: 8, MinY: 5, MaxY: 120},
	{Block: block.IronOre, ClustersMin: 2, ClustersMax: 5, SizeMax: 6, MinY: 5, MaxY: 64},
	{Block: block.GoldOre, ClustersMin: 0, ClustersMax: 2, SizeMax: 4, MinY: 5, MaxY: 32},
}

// Offset is one schematic entry's relative placement, per spec.md §4.7.
type Offset struct {
	DX, DY, DZ int
	Block      block.ID
}

// Schematic is a tree/feature template stamped at (column, surface_y+1,
// column).
type Schematic struct {
	Offsets []Offset
}

// OakTree is a minimal 5-tall trunk + leaf-ball schematic.
var OakTree = Schematic{Offsets: func() []Offset {
	var offs []Offset
	for dy := 0; dy < 5; dy++ {
		offs = append(offs, Offset{0, dy, 0, block.OakLog})
	}
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			for dy := 3; dy <= 5; dy++ {
				if dx == 0 && dz == 0 && dy < 5 {
					continue
				}
				if dx*dx+dz*dz+(dy-4)*(dy-4) <= 5 {
					offs = append(offs, Offset{dx, dy, dz, block.Leaves})
				}
			}
		}
	}
	return offs
}()}

// VegetationProfile names the tree types and simple-decoration density a
// biome supports, per spec.md §4.7.
type VegetationProfile struct {
	Trees          []Schematic
	TreeChance     float64
	SimpleChance   float64
	SimpleDecoration block.ID
}

var profiles = map[biome.ID]VegetationProfile{
	biome.Forest:  {Trees: []Schematic{OakTree}, TreeChance: 0.12, SimpleChance: 0.1, SimpleDecoration: block.TallGrass},
	biome.Plains:  {Trees: []Schematic{OakTree}, TreeChance: 0.01, SimpleChance: 0.2, SimpleDecoration: block.TallGrass},
	biome.Jungle:  {Trees: []Schematic{OakTree}, TreeChance: 0.2, SimpleChance: 0.15, SimpleDecoration: block.TallGrass},
	biome.Savanna: {Trees: []Schematic{OakTree}, TreeChance: 0.02, SimpleChance: 0.1, SimpleDecoration: block.TallGrass},
}

// Decorator runs the ore-vein and feature passes.
type Decorator struct {
	ores    []OreRule
	variant *perlin.Perlin
	seed    int64
}

func NewDecorator(seed int64, ores []OreRule) *Decorator {
	return &Decorator{ores: ores, variant: perlin.NewPerlin(2, 2, 3, seed+777), seed: seed}
}

func (d *Decorator) chunkRand(c *chunk.Chunk, salt int64) *rand.Rand {
	h := d.seed*1000003 + int64(c.Coord.X)*92821 + int64(c.Coord.Z)*15485863 + salt
	return rand.New(rand.NewSource(h))
}

// Decorate runs ore veins then features over an already-carved chunk.
func (d *Decorator) Decorate(c *chunk.Chunk) {
	d.decorateOres(c)
	d.decorateFeatures(c)
}

func (d *Decorator) decorateOres(c *chunk.Chunk) {
	rng := d.chunkRand(c, 1)
	for _, rule := range d.ores {
		n := rule.ClustersMin
		if rule.ClustersMax > rule.ClustersMin {
			n += rng.Intn(rule.ClustersMax - rule.ClustersMin + 1)
		}
		for i := 0; i < n; i++ {
			cx := rng.Intn(chunk.SizeX)
			cz := rng.Intn(chunk.SizeZ)
			cy := rule.MinY + rng.Intn(maxInt(rule.MaxY-rule.MinY, 1))
			size := 1 + rng.Intn(maxInt(rule.SizeMax, 1))
			d.stampEllipsoid(c, cx, cy, cz, size, rule.Block, rng)
		}
	}
}

func (d *Decorator) stampEllipsoid(c *chunk.Chunk, cx, cy, cz, size int, id block.ID, rng *rand.Rand) {
	r := 1 + rng.Intn(maxInt(size/2, 1))
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				if dx*dx+dy*dy+dz*dz > r*r {
					continue
				}
				x, y, z := cx+dx, cy+dy, cz+dz
				if x < 0 || x >= chunk.SizeX || z < 0 || z >= chunk.SizeZ || y < 1 || y >= chunk.SizeY {
					continue
				}
				// Ore veins replace STONE only, per spec.md §4.7.
				if c.GetBlock(x, y, z) == block.Stone {
					c.SetBlock(x, y, z, id)
				}
			}
		}
	}
}

func (d *Decorator) decorateFeatures(c *chunk.Chunk) {
	rng := d.chunkRand(c, 2)
	wx0, wz0 := c.Coord.WorldOrigin()

	for lx := 0; lx < chunk.SizeX; lx++ {
		for lz := 0; lz < chunk.SizeZ; lz++ {
			surfaceY := int(c.SurfaceHeight(lx, lz))
			if surfaceY < 0 || surfaceY >= chunk.SizeY-8 {
				continue
			}
			surfaceBlock := c.GetBlock(lx, surfaceY, lz)
			if surfaceBlock == block.Water || surfaceBlock == block.Sand {
				continue
			}
			b := biome.ID(c.Biome(lx, lz))
			profile, ok := profiles[b]
			if !ok {
				continue
			}

			variantVal := d.variant.Noise2D(float64(int(wx0)+lx)/16.0, float64(int(wz0)+lz)/16.0)
			placed := false
			if rng.Float64() < profile.TreeChance && len(profile.Trees) > 0 {
				schem := profile.Trees[int((variantVal+1)*0.5*float64(len(profile.Trees)))%len(profile.Trees)]
				d.stampSchematic(c, schem, lx, surfaceY+1, lz)
				placed = true
			}
			// "at most one simple decoration" rule, per spec.md §4.7.
			if !placed && rng.Float64() < profile.SimpleChance {
				if c.GetBlock(lx, surfaceY+1, lz) == block.Air {
					c.SetBlock(lx, surfaceY+1, lz, profile.SimpleDecoration)
				}
			}
		}
	}
}

// stampSchematic places offsets relative to (baseX, baseY, baseZ), never
// overwriting non-air terrain, per spec.md §4.7.
func (d *Decorator) stampSchematic(c *chunk.Chunk, schem Schematic, baseX, baseY, baseZ int) {
	for _, off := range schem.Offsets {
		x, y, z := baseX+off.DX, baseY+off.DY, baseZ+off.DZ
		if x < 0 || x >= chunk.SizeX || z < 0 || z >= chunk.SizeZ || y < 0 || y >= chunk.SizeY {
			continue
		}
		if c.GetBlock(x, y, z) != block.Air {
			continue
		}
		c.SetBlock(x, y, z, off.Block)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
