// Package terrain implements the terrain shaper (spec component C5):
// composes the noise sampler stack into a height field, fills block
// columns, and applies surface/filler/ocean-floor rules. Grounded in the
// teacher's internal/world/generator.go (octave-height-then-fill column
// loop: bedrock at y0, dirt below surface, grass at surface) generalized
// from a single fixed-amplitude height function into spec.md §4.5's
// piecewise continental-zone blend, and in internal/world/density.go for
// the bedrock/stone/fill-from-density iteration pattern.
package terrain

import (
	"github.com/dantero-ps/voxelworld/internal/biome"
	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/noise"
)

// Config carries the tunables spec.md §6 enumerates for the shaper.
type Config struct {
	SeaLevel       int
	OceanThreshold float64
	FillerDepth    int
}

// DefaultConfig matches spec.md §6's stated defaults.
func DefaultConfig() Config {
	return Config{SeaLevel: 64, OceanThreshold: 0.35, FillerDepth: 4}
}

// AuthenticConfig tunes the shaper for the Authentic registry entry
// (SPEC_FULL.md §3): a lower sea level and shallower, narrower ocean band
// and filler depth, closer to the teacher's 1.8.9-style terrain than the
// Overworld defaults' broader continental blend.
func AuthenticConfig() Config {
	return Config{SeaLevel: 62, OceanThreshold: 0.3, FillerDepth: 3}
}

// Shaper composes noise + biome selection into filled chunk columns.
type Shaper struct {
	sampler *noise.Sampler
	cfg     Config
}

func NewShaper(sampler *noise.Sampler, cfg Config) *Shaper {
	return &Shaper{sampler: sampler, cfg: cfg}
}

// HeightAt computes terrain height via the piecewise continental-zone
// blend of spec.md §4.5 step 3: deep ocean -> ocean -> coast -> inland ->
// mountain, driven by (c', erosion, ridge). Lipschitz in its inputs: every
// term is a smooth (clamped-linear or noise) function of c/erosion/ridge,
// so no step discontinuities occur as those inputs vary continuously.
func (s *Shaper) HeightAt(wx, wz int, reduction int) (height int, continentalness, erosion, slope float64) {
	fx, fz := float64(wx), float64(wz)

	c := s.sampler.Continentalness(fx, fz, reduction)
	c += s.sampler.CoastJitter(fx, fz)
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}

	e := s.sampler.Erosion(fx, fz, reduction)
	r := s.sampler.Ridge(fx, fz, c, reduction)

	// Continental-zone blend: ocean floor rises smoothly from deep ocean
	// toward the coast, then inland elevation scales with (1-erosion) and
	// ridge sharpens mountainous silhouettes. All terms are continuous in
	// c/e/r so the composite is Lipschitz.
	base := float64(s.cfg.SeaLevel)
	oceanFloor := base - 40*(1-c/0.35)
	coastal := base + (c-0.35)/0.15*16
	inland := base + 16 + (1-e)*48 + r*40

	var h float64
	switch {
	case c < 0.25:
		h = oceanFloor
	case c < 0.35:
		t := (c - 0.25) / 0.10
		h = lerp(oceanFloor, base, t)
	case c < 0.5:
		t := (c - 0.35) / 0.15
		h = lerp(coastal, inland, t)
	default:
		h = inland
	}

	slope = s.slopeAt(wx, wz, reduction)
	height = int(h)
	if height < 1 {
		height = 1
	}
	if height > chunk.SizeY-1 {
		height = chunk.SizeY - 1
	}
	return height, c, e, slope
}

func (s *Shaper) slopeAt(wx, wz, reduction int) float64 {
	h0, _, _, _ := s.heightOnly(wx+1, wz, reduction)
	h1, _, _, _ := s.heightOnly(wx-1, wz, reduction)
	h2, _, _, _ := s.heightOnly(wx, wz+1, reduction)
	h3, _, _, _ := s.heightOnly(wx, wz-1, reduction)
	dx := float64(h0 - h1)
	dz := float64(h2 - h3)
	return clampSlope((absf(dx) + absf(dz)) / 32.0)
}

// heightOnly avoids recursing into slope computation when called from
// slopeAt by only ever computing the height term.
func (s *Shaper) heightOnly(wx, wz, reduction int) (int, float64, float64, float64) {
	fx, fz := float64(wx), float64(wz)
	c := s.sampler.Continentalness(fx, fz, reduction)
	c += s.sampler.CoastJitter(fx, fz)
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}
	e := s.sampler.Erosion(fx, fz, reduction)
	r := s.sampler.Ridge(fx, fz, c, reduction)
	base := float64(s.cfg.SeaLevel)
	oceanFloor := base - 40*(1-c/0.35)
	coastal := base + (c-0.35)/0.15*16
	inland := base + 16 + (1-e)*48 + r*40
	var h float64
	switch {
	case c < 0.25:
		h = oceanFloor
	case c < 0.35:
		h = lerp(oceanFloor, base, (c-0.25)/0.10)
	case c < 0.5:
		h = lerp(coastal, inland, (c-0.35)/0.15)
	default:
		h = inland
	}
	return int(h), c, e, r
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
func clampSlope(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// ShapeColumn applies spec.md §4.5 steps 4-8 to one column of c at local
// (lx, lz), whose world coordinates are (wx, wz).
func (s *Shaper) ShapeColumn(c *chunk.Chunk, lx, lz, wx, wz int, reduction int) {
	height, cont, erosion, slope := s.HeightAt(wx, wz, reduction)
	isUnderwater := height < s.cfg.SeaLevel
	isOcean := cont < s.cfg.OceanThreshold

	altitude := float64(height - s.cfg.SeaLevel)
	temp := s.sampler.Temperature(float64(wx), float64(wz), altitude, reduction)
	humid := s.sampler.Humidity(float64(wx), float64(wz), altitude, reduction)
	riverMask := s.sampler.RiverMask(float64(wx), float64(wz), reduction)

	q := biome.Query{Heat: temp, Humidity: humid, Height: float64(height), Continentalness: cont, Slope: slope}
	primary := biome.Select(q, riverMask)

	// Edge detection + detail dither blend, per spec.md §4.4/§4.5 step 7.
	chosen := primary
	if transition, band, ok := biome.DetectEdge(primary, wx, wz, func(x, z int) biome.ID {
		h, c2, e2, sl2 := s.HeightAt(x, z, reduction)
		alt := float64(h - s.cfg.SeaLevel)
		t2 := s.sampler.Temperature(float64(x), float64(z), alt, reduction)
		hu2 := s.sampler.Humidity(float64(x), float64(z), alt, reduction)
		rm2 := s.sampler.RiverMask(float64(x), float64(z), reduction)
		return biome.Select(biome.Query{Heat: t2, Humidity: hu2, Height: float64(h), Continentalness: c2, Slope: sl2}, rm2)
	}); ok {
		dither := s.sampler.Detail(float64(wx), float64(wz))
		if dither < band.BlendFactor() {
			chosen = transition
		}
	}

	def, ok := biome.Definitions[chosen]
	if !ok {
		def = biome.Definitions[biome.Plains]
	}

	c.SetBiome(lx, lz, uint8(chosen))

	surfaceBlock := def.SurfaceBlk
	fillerBlock := def.FillerBlk
	if isUnderwater {
		if isOcean {
			// Ocean floor/beach rule, per spec.md §4.5 step 4: shallow
			// ocean margins get sand, deeper ocean floor gets gravel.
			if s.cfg.SeaLevel-height > 3 {
				surfaceBlock = block.Gravel
			} else {
				surfaceBlock = block.Sand
			}
			fillerBlock = block.Sand
		} else {
			// Inland water body (lake, swamp pool): keep the biome's own
			// filler as the pool bed instead of an ocean beach material.
			surfaceBlock = fillerBlock
		}
	} else if slope > 0.6 && height > s.cfg.SeaLevel+4 {
		// Coastal/steep cliff rule, per spec.md §4.5 step 5.
		surfaceBlock = block.Stone
		fillerBlock = block.Stone
	}

	c.SetBlock(lx, 0, lz, block.Bedrock)
	fillTo := height - s.cfg.FillerDepth
	for y := 1; y <= fillTo && y < chunk.SizeY; y++ {
		c.SetBlock(lx, y, lz, block.Stone)
	}
	for y := fillTo + 1; y < height && y < chunk.SizeY; y++ {
		if y < 1 {
			continue
		}
		c.SetBlock(lx, y, lz, fillerBlock)
	}
	if height < chunk.SizeY {
		c.SetBlock(lx, height, lz, surfaceBlock)
	}
	if isUnderwater {
		for y := height + 1; y <= s.cfg.SeaLevel && y < chunk.SizeY; y++ {
			c.SetBlock(lx, y, lz, block.Water)
		}
	}
}
