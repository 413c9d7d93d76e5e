// Package light implements the lighting engine (spec component C8):
// a top-down skylight column sweep and an RGB block-light BFS flood
// fill. No file anywhere in the teacher repo or the wider example pack
// implements real light propagation (the only related code found,
// ChickenIQ-VibeShitCraft's world serializer, fills light arrays with a
// constant placeholder), so this package is written fresh in the
// project's idiom — plain Go, no third-party dependency, a plain
// FIFO slice used as a queue the way the teacher's own worker pools use
// plain channels/slices rather than a generic queue library.
package light

import "github.com/dantero-ps/voxelworld/internal/chunk"

const MaxLight = chunk.MaxLight

// SweepSkylight walks every column top-down, carrying a sky_light
// accumulator starting at MaxLight, per spec.md §4.8. Opaque blocks zero
// the accumulator; fluids decrement it by one while it remains positive.
func SweepSkylight(c *chunk.Chunk, isOpaque func(id uint8) bool, isFluid func(id uint8) bool) {
	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			acc := uint8(MaxLight)
			for y := chunk.SizeY - 1; y >= 0; y-- {
				id := uint8(c.GetBlock(x, y, z))
				c.SetSkyLight(x, y, z, acc)
				if isOpaque(id) {
					acc = 0
				} else if isFluid(id) && acc > 0 {
					acc--
				}
			}
		}
	}
}

type bfsNode struct {
	x, y, z int
}

// Emitter is one light-emitting cell, seeded from the block catalog's
// emission triple.
type Emitter struct {
	X, Y, Z int
	R, G, B uint8
}

// PropagateBlockLight runs the RGB BFS of spec.md §4.8: seed the FIFO with
// every emitter, then for each popped node visit its 6 neighbors; a
// propagating value is max(current-1, 0) per channel, and a neighbor is
// updated (keeping the per-channel max of old and new) and re-enqueued
// whenever any channel would increase.
func PropagateBlockLight(c *chunk.Chunk, emitters []Emitter, isOpaque func(id uint8) bool) {
	queue := make([]bfsNode, 0, len(emitters))
	for _, e := range emitters {
		c.SetBlockLight(e.X, e.Y, e.Z, e.R, e.G, e.B)
		queue = append(queue, bfsNode{e.X, e.Y, e.Z})
	}

	dirs := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		cr, cg, cb := c.BlockLight(n.x, n.y, n.z)

		for _, d := range dirs {
			nx, ny, nz := n.x+d[0], n.y+d[1], n.z+d[2]
			if nx < 0 || nx >= chunk.SizeX || ny < 0 || ny >= chunk.SizeY || nz < 0 || nz >= chunk.SizeZ {
				continue
			}
			id := uint8(c.GetBlock(nx, ny, nz))
			if isOpaque(id) {
				continue
			}

			pr := decay(cr)
			pg := decay(cg)
			pb := decay(cb)

			or, og, ob := c.BlockLight(nx, ny, nz)
			updated := false
			if pr > or {
				or = pr
				updated = true
			}
			if pg > og {
				og = pg
				updated = true
			}
			if pb > ob {
				ob = pb
				updated = true
			}
			if updated {
				c.SetBlockLight(nx, ny, nz, or, og, ob)
				queue = append(queue, bfsNode{nx, ny, nz})
			}
		}
	}
}

func decay(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	return v - 1
}
