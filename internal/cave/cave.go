// Package cave implements the cave system (spec component C6): two
// independent carvers — cavity noise and worm tunnels — masked so caves
// never break the surface. Grounded in the teacher's
// internal/world/density.go (sparse-grid 3-D density sampling +
// threshold-fill loop) for the cavity carver's shape, generalized from a
// terrain-filling density field into a subtractive carve mask, and in
// internal/world/generator.go's seeded-per-chunk RNG idiom for the worm
// carver's per-chunk deterministic seeding.
package cave

import (
	"math"
	"math/rand"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/noise"
)

// Config carries cave-carving tunables.
type Config struct {
	CavityThreshold float64
	SurfaceMargin   int // no caves in the top N blocks, per spec.md §4.6
	WormsPerChunk   int
	WormMaxSteps    int
	WormRadius      float64
}

func DefaultConfig() Config {
	return Config{
		CavityThreshold: 0.6,
		SurfaceMargin:   4,
		WormsPerChunk:   2,
		WormMaxSteps:    80,
		WormRadius:      2.2,
	}
}

// Carver carves cavities and worm tunnels into an already-filled chunk.
type Carver struct {
	sampler *noise.Sampler
	cfg     Config
	seed    int64
	seaLvl  int
}

func NewCarver(sampler *noise.Sampler, cfg Config, seed int64, seaLevel int) *Carver {
	return &Carver{sampler: sampler, cfg: cfg, seed: seed, seaLvl: seaLevel}
}

// Carve runs both carvers over c, whose world-space surface heights are
// already filled in. reduction is passed through to the cave-density
// sampler the same way the terrain shaper forwards it to height sampling.
func (cv *Carver) Carve(c *chunk.Chunk, reduction int) {
	cv.carveCavities(c, reduction)
	cv.carveWorms(c)
}

func (cv *Carver) carveCavities(c *chunk.Chunk, reduction int) {
	wx0, wz0 := c.Coord.WorldOrigin()
	for lx := 0; lx < chunk.SizeX; lx++ {
		for lz := 0; lz < chunk.SizeZ; lz++ {
			surface := int(c.SurfaceHeight(lx, lz))
			if surface < 0 {
				continue
			}
			ceiling := surface - cv.cfg.SurfaceMargin
			for y := 1; y < ceiling; y++ {
				wx := int(wx0) + lx
				wz := int(wz0) + lz
				// Threshold rises with proximity to the surface so no
				// caves break through near the top, per spec.md §4.6.
				proximity := float64(ceiling-y) / float64(ceiling)
				threshold := cv.cfg.CavityThreshold + (1-proximity)*0.3
				d := cv.sampler.CaveDensity(float64(wx), float64(y), float64(wz), reduction)
				if d > threshold {
					cv.carveCell(c, lx, y, lz)
				}
			}
		}
	}
}

func (cv *Carver) carveCell(c *chunk.Chunk, x, y, z int) {
	if y >= chunk.SizeY-1 {
		return // never carve y=255, per spec.md boundary case
	}
	if c.GetBlock(x, y, z) == block.Bedrock {
		return
	}
	if y <= cv.seaLvl {
		c.SetBlock(x, y, z, block.Water)
	} else {
		c.SetBlock(x, y, z, block.Air)
	}
}

// chunkSeed derives a deterministic per-chunk seed, the way the teacher's
// generators fold chunk coordinates into a seeded rand.Rand.
func (cv *Carver) chunkSeed(c *chunk.Chunk) int64 {
	h := cv.seed
	h = h*1000003 + int64(c.Coord.X)
	h = h*1000003 + int64(c.Coord.Z)
	return h
}

func (cv *Carver) carveWorms(c *chunk.Chunk) {
	rng := rand.New(rand.NewSource(cv.chunkSeed(c)))
	wx0, wz0 := c.Coord.WorldOrigin()

	for i := 0; i < cv.cfg.WormsPerChunk; i++ {
		x := float64(wx0) + rng.Float64()*chunk.SizeX
		z := float64(wz0) + rng.Float64()*chunk.SizeZ
		y := 10 + rng.Float64()*60

		dirYaw := rng.Float64() * 2 * math.Pi
		dirPitch := (rng.Float64() - 0.5) * 0.5

		for step := 0; step < cv.cfg.WormMaxSteps; step++ {
			dirYaw += (rng.Float64() - 0.5) * 0.5
			dirPitch += (rng.Float64() - 0.5) * 0.3
			if dirPitch > 0.6 {
				dirPitch = 0.6
			} else if dirPitch < -0.6 {
				dirPitch = -0.6
			}

			x += math.Cos(dirYaw) * math.Cos(dirPitch)
			z += math.Sin(dirYaw) * math.Cos(dirPitch)
			y += math.Sin(dirPitch)

			if y < 2 || y > 120 {
				break
			}
			cv.stampSphere(c, x, y, z)
		}
	}
}

func (cv *Carver) stampSphere(c *chunk.Chunk, cx, cy, cz float64) {
	r := cv.cfg.WormRadius
	ri := int(math.Ceil(r))
	wx0, wz0 := c.Coord.WorldOrigin()

	for dx := -ri; dx <= ri; dx++ {
		for dy := -ri; dy <= ri; dy++ {
			for dz := -ri; dz <= ri; dz++ {
				if float64(dx*dx+dy*dy+dz*dz) > r*r {
					continue
				}
				wx := int(math.Round(cx)) + dx
				wy := int(math.Round(cy)) + dy
				wz := int(math.Round(cz)) + dz

				lx := wx - int(wx0)
				lz := wz - int(wz0)
				if lx < 0 || lx >= chunk.SizeX || lz < 0 || lz >= chunk.SizeZ {
					continue
				}
				surface := int(c.SurfaceHeight(lx, lz))
				if surface >= 0 && wy > surface-cv.cfg.SurfaceMargin {
					continue
				}
				cv.carveCell(c, lx, wy, lz)
			}
		}
	}
}
