package block

// Default block ids, assigned in registration order the way the teacher's
// registry.InitRegistry pins grass_top/grass_side/dirt first for stable
// texture-atlas indices. Declared as named constants (rather than left to
// registration order) so other packages (terrain, cave, decorate, tests)
// can reference them directly, the way the teacher's world package
// expected a BlockTypeStone/BlockTypeBedrock/... constant set to exist.
const (
	Bedrock ID = iota + 1
	Stone
	Dirt
	Grass
	Sand
	Gravel
	Water
	Glowstone
	Leaves
	OakLog
	TallGrass
	Flower
	CoalOre
	IronOre
	GoldOre
	Snow
)

// DefaultCatalog builds and returns the standard block table. Grounded on
// internal/registry/blocks.go's BlockDefinition values (textures, hardness,
// tint) for the blocks the teacher already names (stone, bedrock, dirt,
// grass), extended with the material classes and emission values spec.md
// §3 requires (fluid water, cross-sprite grass/flowers, a light emitter,
// leaves) which the teacher's registry never modeled.
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.Register(Definition{
		ID: Air, Name: "air",
		Opaque: false, Transparent: true, Material: ClassSolid,
	})
	c.Register(Definition{
		ID: Bedrock, Name: "bedrock",
		TextureTop: "bedrock.png", TextureSide: "bedrock.png", TextureBot: "bedrock.png",
		Color: Color{0.2, 0.2, 0.2}, Opaque: true, Material: ClassBedrock, Hardness: -1,
	})
	c.Register(Definition{
		ID: Stone, Name: "stone",
		TextureTop: "stone.png", TextureSide: "stone.png", TextureBot: "stone.png",
		Color: Color{0.5, 0.5, 0.5}, Opaque: true, Material: ClassSolid, Hardness: 1.5,
	})
	c.Register(Definition{
		ID: Dirt, Name: "dirt",
		TextureTop: "dirt.png", TextureSide: "dirt.png", TextureBot: "dirt.png",
		Color: Color{0.45, 0.3, 0.15}, Opaque: true, Material: ClassSolid, Hardness: 0.5,
	})
	c.Register(Definition{
		ID: Grass, Name: "grass",
		TextureTop: "grass_top.png", TextureSide: "grass_side.png", TextureBot: "dirt.png",
		Color: Color{0.49, 1.0, 0.36}, Opaque: true, Material: ClassSolid, Hardness: 0.6,
		TintFaces: map[Face]bool{FaceTop: true},
	})
	c.Register(Definition{
		ID: Sand, Name: "sand",
		TextureTop: "sand.png", TextureSide: "sand.png", TextureBot: "sand.png",
		Color: Color{0.87, 0.8, 0.55}, Opaque: true, Material: ClassSolid, Hardness: 0.5,
	})
	c.Register(Definition{
		ID: Gravel, Name: "gravel",
		TextureTop: "gravel.png", TextureSide: "gravel.png", TextureBot: "gravel.png",
		Color: Color{0.55, 0.53, 0.5}, Opaque: true, Material: ClassSolid, Hardness: 0.6,
	})
	c.Register(Definition{
		ID: Water, Name: "water",
		TextureTop: "water.png", TextureSide: "water.png", TextureBot: "water.png",
		Color: Color{0.17, 0.4, 0.85}, Opaque: false, Transparent: true, Material: ClassFluid,
	})
	c.Register(Definition{
		ID: Glowstone, Name: "glowstone",
		TextureTop: "glowstone.png", TextureSide: "glowstone.png", TextureBot: "glowstone.png",
		Color: Color{1, 0.9, 0.6}, Opaque: true, Material: ClassSolid,
		Emission: Emission{R: 15, G: 15, B: 15}, Hardness: 0.3,
	})
	c.Register(Definition{
		ID: Leaves, Name: "leaves",
		TextureTop: "leaves.png", TextureSide: "leaves.png", TextureBot: "leaves.png",
		Color: Color{0.33, 0.6, 0.2}, Opaque: false, Transparent: true, Material: ClassLeaves,
		Hardness: 0.2,
	})
	c.Register(Definition{
		ID: OakLog, Name: "log_oak",
		TextureTop: "log_oak_top.png", TextureSide: "log_oak_side.png", TextureBot: "log_oak_top.png",
		Color: Color{0.4, 0.3, 0.15}, Opaque: true, Material: ClassSolid, Hardness: 2.0,
	})
	c.Register(Definition{
		ID: TallGrass, Name: "tall_grass",
		TextureTop: "tallgrass.png", TextureSide: "tallgrass.png",
		Color: Color{0.49, 1.0, 0.36}, Opaque: false, Transparent: true, Material: ClassCross,
		TintFaces: map[Face]bool{FaceNorth: true, FaceSouth: true, FaceEast: true, FaceWest: true},
	})
	c.Register(Definition{
		ID: Flower, Name: "flower",
		TextureTop: "flower.png", TextureSide: "flower.png",
		Color: Color{1, 1, 1}, Opaque: false, Transparent: true, Material: ClassCross,
	})
	c.Register(Definition{
		ID: CoalOre, Name: "coal_ore",
		TextureTop: "coal_ore.png", TextureSide: "coal_ore.png", TextureBot: "coal_ore.png",
		Color: Color{0.3, 0.3, 0.3}, Opaque: true, Material: ClassSolid, Hardness: 3.0,
	})
	c.Register(Definition{
		ID: IronOre, Name: "iron_ore",
		TextureTop: "iron_ore.png", TextureSide: "iron_ore.png", TextureBot: "iron_ore.png",
		Color: Color{0.75, 0.65, 0.6}, Opaque: true, Material: ClassSolid, Hardness: 3.0,
	})
	c.Register(Definition{
		ID: GoldOre, Name: "gold_ore",
		TextureTop: "gold_ore.png", TextureSide: "gold_ore.png", TextureBot: "gold_ore.png",
		Color: Color{0.85, 0.75, 0.3}, Opaque: true, Material: ClassSolid, Hardness: 3.0,
	})
	c.Register(Definition{
		ID: Snow, Name: "snow",
		TextureTop: "snow.png", TextureSide: "snow.png", TextureBot: "snow.png",
		Color: Color{0.95, 0.95, 0.97}, Opaque: true, Material: ClassSolid, Hardness: 0.1,
	})

	return c
}
