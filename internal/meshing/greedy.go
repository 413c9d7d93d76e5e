package meshing

import (
	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
	"github.com/dantero-ps/voxelworld/internal/profiling"
)

// Neighbors bundles the four optional N/S/E/W neighbor chunks spec.md
// §4.9 passes to the mesher. A nil field means that neighbor isn't
// loaded yet; faces on that boundary are emitted conservatively, as if
// the far side were air.
type Neighbors struct {
	North, South, East, West *chunk.Chunk
}

// TileResolver maps a block id and face to an atlas tile index.
type TileResolver func(id block.ID, face block.Face) float32

// directionalShade is the fixed per-face shade table spec.md §4.9 step 3
// names: top lit fully, the two horizontal axis pairs shaded distinctly,
// bottom darkest.
func directionalShade(f block.Face) float32 {
	switch f {
	case block.FaceTop:
		return 1.0
	case block.FaceNorth, block.FaceSouth:
		return 0.8
	case block.FaceEast, block.FaceWest:
		return 0.7
	default:
		return 0.5
	}
}

// sampleBlock resolves the block id at chunk-local coordinates that may
// spill one cell past X or Z into a neighbor chunk. Spilling where the
// neighbor isn't loaded, or past Y's bounds, resolves to Air.
func sampleBlock(c *chunk.Chunk, nb Neighbors, x, y, z int) block.ID {
	if y < 0 || y >= chunk.SizeY {
		return block.Air
	}
	switch {
	case x < 0:
		if nb.West == nil {
			return block.Air
		}
		return nb.West.GetBlock(chunk.SizeX+x, y, z)
	case x >= chunk.SizeX:
		if nb.East == nil {
			return block.Air
		}
		return nb.East.GetBlock(x-chunk.SizeX, y, z)
	case z < 0:
		if nb.South == nil {
			return block.Air
		}
		return nb.South.GetBlock(x, y, chunk.SizeZ+z)
	case z >= chunk.SizeZ:
		if nb.North == nil {
			return block.Air
		}
		return nb.North.GetBlock(x, y, z-chunk.SizeZ)
	default:
		return c.GetBlock(x, y, z)
	}
}

func sampleSkylight(c *chunk.Chunk, nb Neighbors, x, y, z int) uint8 {
	if y < 0 || y >= chunk.SizeY {
		return chunk.MaxLight
	}
	switch {
	case x < 0:
		if nb.West == nil {
			return chunk.MaxLight
		}
		return nb.West.SkyLight(chunk.SizeX+x, y, z)
	case x >= chunk.SizeX:
		if nb.East == nil {
			return chunk.MaxLight
		}
		return nb.East.SkyLight(x-chunk.SizeX, y, z)
	case z < 0:
		if nb.South == nil {
			return chunk.MaxLight
		}
		return nb.South.SkyLight(x, y, chunk.SizeZ+z)
	case z >= chunk.SizeZ:
		if nb.North == nil {
			return chunk.MaxLight
		}
		return nb.North.SkyLight(x, y, z-chunk.SizeZ)
	default:
		return c.SkyLight(x, y, z)
	}
}

func sampleBlocklight(c *chunk.Chunk, nb Neighbors, x, y, z int) uint8 {
	if y < 0 || y >= chunk.SizeY {
		return 0
	}
	var r, g, b uint8
	switch {
	case x < 0:
		if nb.West == nil {
			return 0
		}
		r, g, b = nb.West.BlockLight(chunk.SizeX+x, y, z)
	case x >= chunk.SizeX:
		if nb.East == nil {
			return 0
		}
		r, g, b = nb.East.BlockLight(x-chunk.SizeX, y, z)
	case z < 0:
		if nb.South == nil {
			return 0
		}
		r, g, b = nb.South.BlockLight(x, y, chunk.SizeZ+z)
	case z >= chunk.SizeZ:
		if nb.North == nil {
			return 0
		}
		r, g, b = nb.North.BlockLight(x, y, z-chunk.SizeZ)
	default:
		r, g, b = c.BlockLight(x, y, z)
	}
	m := r
	if g > m {
		m = g
	}
	if b > m {
		m = b
	}
	return m
}

// sampleLightQuad averages the sky and block light of up to four
// corner-touching cells, approximating the smooth-lighting corner
// average spec.md §4.9 step 3 calls for. A fully-opaque corner
// contributes 0 to both sums instead of its neighbor's light value, per
// the same step's ambient-occlusion tie-break; the divisor stays 4 so an
// opaque corner still darkens the average rather than being excluded
// from it.
func sampleLightQuad(cat *block.Catalog, c *chunk.Chunk, nb Neighbors, cells [4][3]int) (sky, blk float32) {
	var sSum, bSum float32
	for _, p := range cells {
		if cat.Get(sampleBlock(c, nb, p[0], p[1], p[2])).Opaque {
			continue
		}
		sSum += float32(sampleSkylight(c, nb, p[0], p[1], p[2]))
		bSum += float32(sampleBlocklight(c, nb, p[0], p[1], p[2]))
	}
	return sSum / 4, bSum / 4
}

// isFaceExposed implements spec.md §4.9 step 1's exposure test: air
// always exposes, two touching cells of the same non-solid material
// (e.g. water against water) never need an internal face, and anything
// marked Transparent on the far side exposes the near face.
func isFaceExposed(cat *block.Catalog, here, neighbor block.ID) bool {
	if neighbor == block.Air {
		return true
	}
	hDef := cat.Get(here)
	nDef := cat.Get(neighbor)
	if hDef.Material == nDef.Material && hDef.Material != block.ClassSolid {
		return false
	}
	return nDef.Transparent || !nDef.Opaque
}

// isCubeFace reports whether id is meshed as an ordinary cube face.
// Cross-sprite blocks (grass, flowers) aren't box-shaped and can't be
// greedily merged with their neighbors, so they're excluded here and
// meshed separately by meshCrossSprites.
func isCubeFace(cat *block.Catalog, id block.ID) bool {
	return cat.Get(id).Material != block.ClassCross
}

type maskCell struct {
	id    block.ID
	valid bool
}

type rect struct {
	u0, v0, w, h int
	id           block.ID
}

// greedyMerge sweeps a w*h mask row-major, growing each unclaimed cell
// first rightward then downward into the largest same-id rectangle, per
// spec.md §4.9 step 2. The scan order is fixed, so identical masks always
// produce identical rectangles in the same order (invariant 5).
func greedyMerge(w, h int, mask []maskCell) []rect {
	used := make([]bool, w*h)
	var rects []rect
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			idx := v*w + u
			if used[idx] || !mask[idx].valid {
				continue
			}
			id := mask[idx].id

			ru := 1
			for u+ru < w {
				i2 := v*w + u + ru
				if used[i2] || !mask[i2].valid || mask[i2].id != id {
					break
				}
				ru++
			}

			rv := 1
		grow:
			for v+rv < h {
				for k := 0; k < ru; k++ {
					i2 := (v+rv)*w + u + k
					if used[i2] || !mask[i2].valid || mask[i2].id != id {
						break grow
					}
				}
				rv++
			}

			for dv := 0; dv < rv; dv++ {
				for du := 0; du < ru; du++ {
					used[(v+dv)*w+u+du] = true
				}
			}
			rects = append(rects, rect{u0: u, v0: v, w: ru, h: rv, id: id})
		}
	}
	return rects
}

// appendQuad writes two triangles, (p0,p1,p2) and (p0,p2,p3), with a
// per-face flat shade and per-vertex light.
func appendQuad(dst []float32, cat *block.Catalog, tiles TileResolver, face block.Face, id block.ID,
	corners [4][3]float32, lights [4][2]float32) []float32 {
	def := cat.Get(id)
	shade := directionalShade(face)
	cr := def.Color.R * shade
	cg := def.Color.G * shade
	cb := def.Color.B * shade
	nx, ny, nz := face.Normal()
	tile := tiles(id, face)
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	order := [6]int{0, 1, 2, 0, 2, 3}
	for _, k := range order {
		v := Vertex{
			PX: corners[k][0], PY: corners[k][1], PZ: corners[k][2],
			CR: cr, CG: cg, CB: cb,
			NX: float32(nx), NY: float32(ny), NZ: float32(nz),
			U: uvs[k][0], V: uvs[k][1],
			TileID:     tile,
			Skylight:   lights[k][0],
			Blocklight: lights[k][1],
		}
		dst = v.Append(dst)
	}
	return dst
}

func appendTo(cat *block.Catalog, id block.ID, solid, fluid []float32, quad func([]float32) []float32) ([]float32, []float32) {
	if cat.Get(id).Material == block.ClassFluid {
		return solid, quad(fluid)
	}
	return quad(solid), fluid
}

// BuildGreedyMesh produces the solid and fluid vertex buffers for c given
// its four optional neighbors and a tile resolver, per spec.md §4.9: one
// mask-then-merge pass per face direction (bounded to 16x16 mask cells by
// working one Y sub-slab at a time on the vertical faces), plus a
// separate pass for cross-sprite blocks. Output is deterministic:
// identical inputs always yield byte-identical vertex slices.
func BuildGreedyMesh(cat *block.Catalog, c *chunk.Chunk, nb Neighbors, tiles TileResolver) (solid, fluid []float32) {
	defer profiling.Track("meshing.BuildGreedyMesh")()
	if c == nil {
		return nil, nil
	}

	solid, fluid = meshTopBottom(cat, c, nb, tiles, block.FaceTop, solid, fluid)
	solid, fluid = meshTopBottom(cat, c, nb, tiles, block.FaceBottom, solid, fluid)
	solid, fluid = meshNorthSouth(cat, c, nb, tiles, block.FaceNorth, solid, fluid)
	solid, fluid = meshNorthSouth(cat, c, nb, tiles, block.FaceSouth, solid, fluid)
	solid, fluid = meshEastWest(cat, c, nb, tiles, block.FaceEast, solid, fluid)
	solid, fluid = meshEastWest(cat, c, nb, tiles, block.FaceWest, solid, fluid)
	solid = meshCrossSprites(cat, c, tiles, solid)
	return solid, fluid
}

func meshTopBottom(cat *block.Catalog, c *chunk.Chunk, nb Neighbors, tiles TileResolver, face block.Face, solid, fluid []float32) ([]float32, []float32) {
	_, dy, _ := face.Normal()
	top := face == block.FaceTop

	for y := 0; y < chunk.SizeY; y++ {
		mask := make([]maskCell, chunk.SizeX*chunk.SizeZ)
		for x := 0; x < chunk.SizeX; x++ {
			for z := 0; z < chunk.SizeZ; z++ {
				here := c.GetBlock(x, y, z)
				if here == block.Air || !isCubeFace(cat, here) {
					continue
				}
				neighbor := sampleBlock(c, nb, x, y+dy, z)
				if isFaceExposed(cat, here, neighbor) {
					mask[z*chunk.SizeX+x] = maskCell{id: here, valid: true}
				}
			}
		}

		plane := float32(y)
		if top {
			plane = float32(y + 1)
		}
		yN := y + dy

		for _, r := range greedyMerge(chunk.SizeX, chunk.SizeZ, mask) {
			x0, x1 := float32(r.u0), float32(r.u0+r.w)
			z0, z1 := float32(r.v0), float32(r.v0+r.h)

			var corners [4][3]float32
			var gridX, gridZ [4]int
			if top {
				corners = [4][3]float32{{x0, plane, z1}, {x1, plane, z1}, {x1, plane, z0}, {x0, plane, z0}}
				gridX = [4]int{r.u0, r.u0 + r.w, r.u0 + r.w, r.u0}
				gridZ = [4]int{r.v0 + r.h, r.v0 + r.h, r.v0, r.v0}
			} else {
				corners = [4][3]float32{{x0, plane, z0}, {x1, plane, z0}, {x1, plane, z1}, {x0, plane, z1}}
				gridX = [4]int{r.u0, r.u0 + r.w, r.u0 + r.w, r.u0}
				gridZ = [4]int{r.v0, r.v0, r.v0 + r.h, r.v0 + r.h}
			}

			var lights [4][2]float32
			for i := 0; i < 4; i++ {
				gx, gz := gridX[i], gridZ[i]
				sky, blk := sampleLightQuad(cat, c, nb, [4][3]int{
					{gx - 1, yN, gz - 1}, {gx, yN, gz - 1}, {gx - 1, yN, gz}, {gx, yN, gz},
				})
				lights[i] = [2]float32{sky, blk}
			}
			solid, fluid = appendTo(cat, r.id, solid, fluid, func(dst []float32) []float32 {
				return appendQuad(dst, cat, tiles, face, r.id, corners, lights)
			})
		}
	}
	return solid, fluid
}

func meshNorthSouth(cat *block.Catalog, c *chunk.Chunk, nb Neighbors, tiles TileResolver, face block.Face, solid, fluid []float32) ([]float32, []float32) {
	_, _, dz := face.Normal()
	north := face == block.FaceNorth

	for z := 0; z < chunk.SizeZ; z++ {
		for slab := 0; slab < chunk.SizeY/16; slab++ {
			y0 := slab * 16
			mask := make([]maskCell, chunk.SizeX*16)
			for x := 0; x < chunk.SizeX; x++ {
				for ly := 0; ly < 16; ly++ {
					y := y0 + ly
					here := c.GetBlock(x, y, z)
					if here == block.Air || !isCubeFace(cat, here) {
						continue
					}
					neighbor := sampleBlock(c, nb, x, y, z+dz)
					if isFaceExposed(cat, here, neighbor) {
						mask[ly*chunk.SizeX+x] = maskCell{id: here, valid: true}
					}
				}
			}

			plane := float32(z)
			if north {
				plane = float32(z + 1)
			}
			zN := z + dz

			for _, r := range greedyMerge(chunk.SizeX, 16, mask) {
				x0, x1 := float32(r.u0), float32(r.u0+r.w)
				y0f, y1f := float32(y0+r.v0), float32(y0+r.v0+r.h)

				var corners [4][3]float32
				var gridX [4]int
				gridY := [4]int{y0 + r.v0, y0 + r.v0, y0 + r.v0 + r.h, y0 + r.v0 + r.h}
				if north {
					corners = [4][3]float32{{x0, y0f, plane}, {x1, y0f, plane}, {x1, y1f, plane}, {x0, y1f, plane}}
					gridX = [4]int{r.u0, r.u0 + r.w, r.u0 + r.w, r.u0}
				} else {
					corners = [4][3]float32{{x1, y0f, plane}, {x0, y0f, plane}, {x0, y1f, plane}, {x1, y1f, plane}}
					gridX = [4]int{r.u0 + r.w, r.u0, r.u0, r.u0 + r.w}
				}

				var lights [4][2]float32
				for i := 0; i < 4; i++ {
					gx, gy := gridX[i], gridY[i]
					sky, blk := sampleLightQuad(cat, c, nb, [4][3]int{
						{gx - 1, gy - 1, zN}, {gx, gy - 1, zN}, {gx - 1, gy, zN}, {gx, gy, zN},
					})
					lights[i] = [2]float32{sky, blk}
				}
				solid, fluid = appendTo(cat, r.id, solid, fluid, func(dst []float32) []float32 {
					return appendQuad(dst, cat, tiles, face, r.id, corners, lights)
				})
			}
		}
	}
	return solid, fluid
}

func meshEastWest(cat *block.Catalog, c *chunk.Chunk, nb Neighbors, tiles TileResolver, face block.Face, solid, fluid []float32) ([]float32, []float32) {
	dx, _, _ := face.Normal()
	east := face == block.FaceEast

	for x := 0; x < chunk.SizeX; x++ {
		for slab := 0; slab < chunk.SizeY/16; slab++ {
			y0 := slab * 16
			mask := make([]maskCell, chunk.SizeZ*16)
			for z := 0; z < chunk.SizeZ; z++ {
				for ly := 0; ly < 16; ly++ {
					y := y0 + ly
					here := c.GetBlock(x, y, z)
					if here == block.Air || !isCubeFace(cat, here) {
						continue
					}
					neighbor := sampleBlock(c, nb, x+dx, y, z)
					if isFaceExposed(cat, here, neighbor) {
						mask[ly*chunk.SizeZ+z] = maskCell{id: here, valid: true}
					}
				}
			}

			plane := float32(x)
			if east {
				plane = float32(x + 1)
			}
			xN := x + dx

			for _, r := range greedyMerge(chunk.SizeZ, 16, mask) {
				z0, z1 := float32(r.u0), float32(r.u0+r.w)
				y0f, y1f := float32(y0+r.v0), float32(y0+r.v0+r.h)

				var corners [4][3]float32
				var gridZ [4]int
				gridY := [4]int{y0 + r.v0, y0 + r.v0, y0 + r.v0 + r.h, y0 + r.v0 + r.h}
				if east {
					corners = [4][3]float32{{plane, y0f, z1}, {plane, y0f, z0}, {plane, y1f, z0}, {plane, y1f, z1}}
					gridZ = [4]int{r.u0 + r.w, r.u0, r.u0, r.u0 + r.w}
				} else {
					corners = [4][3]float32{{plane, y0f, z0}, {plane, y0f, z1}, {plane, y1f, z1}, {plane, y1f, z0}}
					gridZ = [4]int{r.u0, r.u0 + r.w, r.u0 + r.w, r.u0}
				}

				var lights [4][2]float32
				for i := 0; i < 4; i++ {
					gz, gy := gridZ[i], gridY[i]
					sky, blk := sampleLightQuad(cat, c, nb, [4][3]int{
						{xN, gy - 1, gz - 1}, {xN, gy - 1, gz}, {xN, gy, gz - 1}, {xN, gy, gz},
					})
					lights[i] = [2]float32{sky, blk}
				}
				solid, fluid = appendTo(cat, r.id, solid, fluid, func(dst []float32) []float32 {
					return appendQuad(dst, cat, tiles, face, r.id, corners, lights)
				})
			}
		}
	}
	return solid, fluid
}

// meshCrossSprites stamps two crossed quads per cross-material block
// (grass, flowers): they render as intersecting planes rather than box
// faces, so they never participate in greedy merging.
func meshCrossSprites(cat *block.Catalog, c *chunk.Chunk, tiles TileResolver, solid []float32) []float32 {
	const inset = 0.1464466 // (1 - 1/sqrt(2)) / 2, centers a diagonal quad in the cell

	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			h := c.SurfaceHeight(x, z)
			for y := 0; y <= int(h); y++ {
				id := c.GetBlock(x, y, z)
				if id == block.Air || cat.Get(id).Material != block.ClassCross {
					continue
				}
				sky := float32(c.SkyLight(x, y, z))
				blk := float32(sampleBlocklight(c, Neighbors{}, x, y, z))
				lights := [4][2]float32{{sky, blk}, {sky, blk}, {sky, blk}, {sky, blk}}

				x0, x1 := float32(x)+inset, float32(x)+1-inset
				z0, z1 := float32(z)+inset, float32(z)+1-inset
				y0, y1 := float32(y), float32(y+1)

				diagA := [4][3]float32{{x0, y0, z0}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z0}}
				diagB := [4][3]float32{{x0, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z1}}
				solid = appendQuad(solid, cat, tiles, block.FaceNorth, id, diagA, lights)
				solid = appendQuad(solid, cat, tiles, block.FaceNorth, id, diagB, lights)
			}
		}
	}
	return solid
}
