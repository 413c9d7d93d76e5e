// Package noise implements the noise sampler stack (spec component C3): a
// pure function of world coordinates and a seed producing the climate and
// structural scalars the terrain shaper, biome source, cave system, and
// decorator consume. Grounded on the teacher's internal/world/noise.go
// octave-stacking idiom (persistence/lacunarity summation loop, one
// generator instance per named channel) generalized to use
// github.com/ojrac/opensimplex-go as the lattice-noise primitive instead
// of the teacher's hand-rolled hash-based value noise, and
// github.com/aquilax/go-perlin as a second, independent noise family:
// always for the coast-jitter warp, and for the continentalness/erosion
// channels themselves when Mode is ModeAuthentic, the way the teacher
// keeps two independent generator families (noise.go's value noise vs
// noise_authentic.go's Perlin port) selectable per world.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// octave wraps one opensimplex instance seeded independently per channel
// so channels are statistically uncorrelated, mirroring the teacher's
// AuthenticNoiseGeneratorOctaves' one-generator-per-octave pattern but at
// the channel granularity.
type octave struct {
	noise opensimplex.Noise
}

func newOctave(seed int64) octave {
	return octave{noise: opensimplex.New(seed)}
}

// fractal2D sums octaves of 2D noise with the teacher's persistence/
// lacunarity octave loop (internal/world/noise.go octaveNoise2D), using
// the opensimplex instance as the per-octave lattice sample instead of a
// hash-based value-noise lookup. reduction halves the octave count per
// step per spec.md §4.3 ("Every sampler accepts a reduction parameter in
// {0,1,2,3} that halves the octave count per step").
func fractal2D(o octave, x, z float64, octaves int, freq, persistence, lacunarity float64, reduction int) float64 {
	octaves = reducedOctaves(octaves, reduction)
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, max float64
	amp = 1
	f := freq
	for i := 0; i < octaves; i++ {
		sum += o.noise.Eval2(x*f, z*f) * amp
		max += amp
		amp *= persistence
		f *= lacunarity
	}
	if max == 0 {
		return 0
	}
	return sum / max
}

// perlinOctave wraps a go-perlin instance, the Authentic noise backend's
// per-channel primitive, mirroring octave's opensimplex wrapper above.
type perlinOctave struct {
	noise *perlin.Perlin
}

func newPerlinOctave(seed int64) perlinOctave {
	return perlinOctave{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

// fractal2DPerlin is fractal2D's go-perlin counterpart, used by the
// Authentic generator mode (SPEC_FULL.md §3) in place of the opensimplex
// octave loop, the teacher's AuthenticNoiseGeneratorOctaves shape applied
// to the 2D climate channels instead of the teacher's 3-D density field.
func fractal2DPerlin(o perlinOctave, x, z float64, octaves int, freq, persistence, lacunarity float64, reduction int) float64 {
	octaves = reducedOctaves(octaves, reduction)
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, max float64
	amp = 1
	f := freq
	for i := 0; i < octaves; i++ {
		sum += o.noise.Noise2D(x*f, z*f) * amp
		max += amp
		amp *= persistence
		f *= lacunarity
	}
	if max == 0 {
		return 0
	}
	return sum / max
}

func fractal3D(o octave, x, y, z float64, octaves int, freq, persistence, lacunarity float64, reduction int) float64 {
	octaves = reducedOctaves(octaves, reduction)
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, max float64
	amp = 1
	f := freq
	for i := 0; i < octaves; i++ {
		sum += o.noise.Eval3(x*f, y*f, z*f) * amp
		max += amp
		amp *= persistence
		f *= lacunarity
	}
	if max == 0 {
		return 0
	}
	return sum / max
}

func reducedOctaves(base, reduction int) int {
	n := base
	for i := 0; i < reduction; i++ {
		n /= 2
	}
	if n < 1 {
		n = 1
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to01(v float64) float64 { return (v + 1) * 0.5 }

// Mode selects which noise family backs the continentalness/erosion
// channels, per SPEC_FULL.md §3's Authentic registry entry.
type Mode int

const (
	// ModeOpenSimplex is the default Overworld backend.
	ModeOpenSimplex Mode = iota
	// ModeAuthentic swaps continentalness/erosion onto the go-perlin
	// family, the noise.Sampler backend SPEC_FULL.md's Authentic
	// generator selects.
	ModeAuthentic
)

// Sampler is a seeded bundle of independent noise channels.
type Sampler struct {
	mode Mode

	continentalness  octave
	continentalnessP perlinOctave
	erosion          octave
	erosionP         perlinOctave
	ridgeBase        octave
	ridgeSparsity    octave
	temperature      octave
	humidity         octave
	riverBase        octave
	riverWarpX       octave
	riverWarpZ       octave
	cave             octave
	detailOct        octave

	warp *perlin.Perlin // coast-jitter warp, independent noise family

	tempLapse           float32
	ridgeInlandMin      float32
	ridgeInlandMax      float32
	ridgeInlandSparsity float32
}

// NewSampler derives every channel's generator from a single world seed
// using distinct offsets, the way the teacher's ChunkProvider189 seeds
// each of its six octave generators from one shared *rand.Rand in
// sequence so the whole stack is reproducible from one u64.
func NewSampler(seed int64, tempLapse, ridgeInlandMin, ridgeInlandMax, ridgeInlandSparsity float32) *Sampler {
	return &Sampler{
		mode: ModeOpenSimplex,

		continentalness:  newOctave(seed + 1),
		continentalnessP: newPerlinOctave(seed + 1),
		erosion:          newOctave(seed + 2),
		erosionP:         newPerlinOctave(seed + 2),
		ridgeBase:        newOctave(seed + 3),
		ridgeSparsity:    newOctave(seed + 4),
		temperature:      newOctave(seed + 5),
		humidity:         newOctave(seed + 6),
		riverBase:        newOctave(seed + 7),
		riverWarpX:       newOctave(seed + 8),
		riverWarpZ:       newOctave(seed + 9),
		cave:             newOctave(seed + 10),
		detailOct:        newOctave(seed + 11),

		warp: perlin.NewPerlin(2, 2, 3, seed+12),

		tempLapse:           tempLapse,
		ridgeInlandMin:      ridgeInlandMin,
		ridgeInlandMax:      ridgeInlandMax,
		ridgeInlandSparsity: ridgeInlandSparsity,
	}
}

// WithMode switches the continentalness/erosion backend between the
// default opensimplex family and the go-perlin-backed Authentic family
// (SPEC_FULL.md §3), returning s for chaining at construction time.
func (s *Sampler) WithMode(mode Mode) *Sampler {
	s.mode = mode
	return s
}

// Continentalness returns [0,1]: ocean(0..0.35) -> coast -> inland -> deep
// inland, per spec.md §4.3.
func (s *Sampler) Continentalness(x, z float64, reduction int) float64 {
	var v float64
	if s.mode == ModeAuthentic {
		v = fractal2DPerlin(s.continentalnessP, x, z, 6, 1.0/1024.0, 0.5, 2.0, reduction)
	} else {
		v = fractal2D(s.continentalness, x, z, 6, 1.0/1024.0, 0.5, 2.0, reduction)
	}
	return clamp01(to01(v))
}

// Erosion returns [0,1]: high = flat, low = rugged.
func (s *Sampler) Erosion(x, z float64, reduction int) float64 {
	var v float64
	if s.mode == ModeAuthentic {
		v = fractal2DPerlin(s.erosionP, x, z, 5, 1.0/512.0, 0.5, 2.0, reduction)
	} else {
		v = fractal2D(s.erosion, x, z, 5, 1.0/512.0, 0.5, 2.0, reduction)
	}
	return clamp01(to01(v))
}

// Ridge returns [0,1], non-zero only where continentalness is within the
// configured inland band and a sparsity mask passes, per spec.md §4.3.
func (s *Sampler) Ridge(x, z float64, continentalness float64, reduction int) float64 {
	if continentalness < float64(s.ridgeInlandMin) || continentalness > float64(s.ridgeInlandMax) {
		return 0
	}
	sparsity := to01(fractal2D(s.ridgeSparsity, x, z, 3, 1.0/256.0, 0.5, 2.0, reduction))
	if sparsity < float64(s.ridgeInlandSparsity) {
		return 0
	}
	v := fractal2D(s.ridgeBase, x, z, 4, 1.0/128.0, 0.55, 2.0, reduction)
	return clamp01(1 - math.Abs(v))
}

// Temperature returns [0,1], adjusted downward with altitude by the
// configured lapse constant.
func (s *Sampler) Temperature(x, z float64, altitudeAboveSeaLevel float64, reduction int) float64 {
	v := to01(fractal2D(s.temperature, x, z, 4, 1.0/768.0, 0.5, 2.0, reduction))
	if altitudeAboveSeaLevel > 0 {
		v -= float64(s.tempLapse) * (altitudeAboveSeaLevel / 128.0)
	}
	return clamp01(v)
}

// Humidity returns [0,1], adjusted downward with altitude the same way as
// Temperature per spec.md §4.3 ("both adjusted downward with altitude").
func (s *Sampler) Humidity(x, z float64, altitudeAboveSeaLevel float64, reduction int) float64 {
	v := to01(fractal2D(s.humidity, x, z, 4, 1.0/768.0, 0.5, 2.0, reduction))
	if altitudeAboveSeaLevel > 0 {
		v -= float64(s.tempLapse) * (altitudeAboveSeaLevel / 128.0)
	}
	return clamp01(v)
}

// RiverMask returns [0,1]: domain-warped ridge noise thresholded; >0.5
// marks a channel, per spec.md §4.3.
func (s *Sampler) RiverMask(x, z float64, reduction int) float64 {
	warpX := fractal2D(s.riverWarpX, x, z, 2, 1.0/400.0, 0.5, 2.0, reduction) * 60
	warpZ := fractal2D(s.riverWarpZ, x, z, 2, 1.0/400.0, 0.5, 2.0, reduction) * 60
	v := fractal2D(s.riverBase, x+warpX, z+warpZ, 3, 1.0/300.0, 0.5, 2.0, reduction)
	ridgeLike := 1 - math.Abs(v)
	return clamp01(ridgeLike)
}

// CaveDensity returns [-1,1] 3-D density used by the cave system's
// cavity carver.
func (s *Sampler) CaveDensity(x, y, z float64, reduction int) float64 {
	return fractal3D(s.cave, x, y, z, 4, 1.0/48.0, 0.5, 2.0, reduction)
}

// Detail returns a high-frequency dither in [0,1] for surface/biome
// blending.
func (s *Sampler) Detail(x, z float64) float64 {
	return to01(s.detailOct.noise.Eval2(x*0.5, z*0.5))
}

// CoastJitter returns a small warp offset for continentalness, from the
// independent go-perlin family (spec.md §4.5 step 2: "c' = clamp(c +
// jitter_noise(warp_x, warp_z))").
func (s *Sampler) CoastJitter(x, z float64) float64 {
	return s.warp.Noise2D(x/600.0, z/600.0) * 0.08
}
