package config

import "sync"

// GeneratorIndex selects a world generator strategy from the registry
// described in spec §6 ("generator_index: usize — selects from a
// registry {Overworld, Flat, ...}").
type GeneratorIndex int

const (
	GeneratorOverworld GeneratorIndex = iota
	GeneratorAuthentic
	GeneratorFlat
)

// WorldGenSettings holds world generation configuration. Extended from the
// teacher's two-field struct with the full set of options §6 enumerates;
// kept as a package-global guarded by RWMutex, the teacher's idiom.
type WorldGenSettings struct {
	mu sync.RWMutex

	seed           int64
	generatorIndex GeneratorIndex

	seaLevel       int
	oceanThreshold float32
	tempLapse      float32

	ridgeInlandMin      float32
	ridgeInlandMax      float32
	ridgeInlandSparsity float32

	renderDistance int // L0 radius, chunks
	lodRadiusL1    int
	lodRadiusL2    int
	lodRadiusL3    int

	maxUploadsPerFrame int
	caves              bool
}

var globalWorldGenSettings = &WorldGenSettings{
	seed:           0,
	generatorIndex: GeneratorOverworld,

	seaLevel:       64,
	oceanThreshold: 0.35,
	tempLapse:      0.25,

	ridgeInlandMin:      0.2,
	ridgeInlandMax:      0.9,
	ridgeInlandSparsity: 0.6,

	renderDistance: 8,
	lodRadiusL1:    16,
	lodRadiusL2:    32,
	lodRadiusL3:    64,

	maxUploadsPerFrame: 4,
	caves:              true,
}

// Snapshot is the plain-data mirror of WorldGenSettings used for yaml.v3
// marshalling (the mutex-guarded struct itself is not serializable).
type Snapshot struct {
	Seed                int64   `yaml:"seed"`
	GeneratorIndex      int     `yaml:"generator_index"`
	SeaLevel            int     `yaml:"sea_level"`
	OceanThreshold      float32 `yaml:"ocean_threshold"`
	TempLapse           float32 `yaml:"temp_lapse"`
	RidgeInlandMin      float32 `yaml:"ridge_inland_min"`
	RidgeInlandMax      float32 `yaml:"ridge_inland_max"`
	RidgeInlandSparsity float32 `yaml:"ridge_inland_sparsity"`
	RenderDistance      int     `yaml:"render_distance"`
	LODRadiusL1         int     `yaml:"lod_radius_l1"`
	LODRadiusL2         int     `yaml:"lod_radius_l2"`
	LODRadiusL3         int     `yaml:"lod_radius_l3"`
	MaxUploadsPerFrame  int     `yaml:"max_uploads_per_frame"`
	Caves               bool    `yaml:"caves"`
}

// CurrentSnapshot returns a copy of the current settings for serialization.
func CurrentSnapshot() Snapshot {
	g := globalWorldGenSettings
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Snapshot{
		Seed:                g.seed,
		GeneratorIndex:      int(g.generatorIndex),
		SeaLevel:            g.seaLevel,
		OceanThreshold:      g.oceanThreshold,
		TempLapse:           g.tempLapse,
		RidgeInlandMin:      g.ridgeInlandMin,
		RidgeInlandMax:      g.ridgeInlandMax,
		RidgeInlandSparsity: g.ridgeInlandSparsity,
		RenderDistance:      g.renderDistance,
		LODRadiusL1:         g.lodRadiusL1,
		LODRadiusL2:         g.lodRadiusL2,
		LODRadiusL3:         g.lodRadiusL3,
		MaxUploadsPerFrame:  g.maxUploadsPerFrame,
		Caves:               g.caves,
	}
}

// ApplySnapshot installs loaded settings, clamping lod radii to be
// strictly increasing per spec §6 ("each strictly greater than the
// previous").
func ApplySnapshot(s Snapshot) {
	g := globalWorldGenSettings
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seed = s.Seed
	g.generatorIndex = GeneratorIndex(s.GeneratorIndex)
	g.seaLevel = s.SeaLevel
	g.oceanThreshold = s.OceanThreshold
	g.tempLapse = s.TempLapse
	g.ridgeInlandMin = s.RidgeInlandMin
	g.ridgeInlandMax = s.RidgeInlandMax
	g.ridgeInlandSparsity = s.RidgeInlandSparsity
	g.caves = s.Caves
	g.maxUploadsPerFrame = s.MaxUploadsPerFrame
	if g.maxUploadsPerFrame < 1 {
		g.maxUploadsPerFrame = 1
	}

	r0 := s.RenderDistance
	r1 := s.LODRadiusL1
	r2 := s.LODRadiusL2
	r3 := s.LODRadiusL3
	if r0 < 1 {
		r0 = 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	if r2 <= r1 {
		r2 = r1 + 1
	}
	if r3 <= r2 {
		r3 = r2 + 1
	}
	g.renderDistance = r0
	g.lodRadiusL1 = r1
	g.lodRadiusL2 = r2
	g.lodRadiusL3 = r3
}

func GetSeed() int64               { return snapshotField(func(s *WorldGenSettings) int64 { return s.seed }) }
func GetGeneratorIndex() GeneratorIndex {
	return snapshotField(func(s *WorldGenSettings) GeneratorIndex { return s.generatorIndex })
}
func GetSeaLevel() int             { return snapshotField(func(s *WorldGenSettings) int { return s.seaLevel }) }
func GetOceanThreshold() float32   { return snapshotField(func(s *WorldGenSettings) float32 { return s.oceanThreshold }) }
func GetTempLapse() float32        { return snapshotField(func(s *WorldGenSettings) float32 { return s.tempLapse }) }
func GetRidgeInlandMin() float32   { return snapshotField(func(s *WorldGenSettings) float32 { return s.ridgeInlandMin }) }
func GetRidgeInlandMax() float32   { return snapshotField(func(s *WorldGenSettings) float32 { return s.ridgeInlandMax }) }
func GetRidgeInlandSparsity() float32 {
	return snapshotField(func(s *WorldGenSettings) float32 { return s.ridgeInlandSparsity })
}
func GetLODRadii() (l1, l2, l3 int) {
	g := globalWorldGenSettings
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lodRadiusL1, g.lodRadiusL2, g.lodRadiusL3
}
func GetMaxUploadsPerFrame() int {
	return snapshotField(func(s *WorldGenSettings) int { return s.maxUploadsPerFrame })
}

// GetCaves returns whether caves are enabled
func GetCaves() bool {
	return snapshotField(func(s *WorldGenSettings) bool { return s.caves })
}

// SetCaves sets whether caves are enabled
func SetCaves(enabled bool) {
	g := globalWorldGenSettings
	g.mu.Lock()
	defer g.mu.Unlock()
	g.caves = enabled
}

// SetSeed sets the world seed.
func SetSeed(seed int64) {
	g := globalWorldGenSettings
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seed = seed
}

func snapshotField[T any](f func(*WorldGenSettings) T) T {
	g := globalWorldGenSettings
	g.mu.RLock()
	defer g.mu.RUnlock()
	return f(g)
}
