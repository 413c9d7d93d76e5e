// Package meshing implements the greedy mesher (spec component C9).
// Grounged in the teacher's internal/meshing/greedy.go (the per-direction
// mask-then-greedy-rectangle-merge algorithm and its packVertex/emitQuad
// helper shape) and internal/meshing/pool.go (the worker-pool job/result
// channel plumbing), generalized from the teacher's packed-uint32 vertex
// pair and whole-world-pointer dependency to spec.md §4.9's fixed 14-f32
// vertex layout and four-explicit-neighbor-chunk input model.
package meshing

// VertexFloats is the number of float32 values per vertex, per spec.md
// §4.9: position(3), color(3), normal(3), uv(2), tile_id(1), skylight(1),
// blocklight(1) = 14.
const VertexFloats = 14

// Vertex is one mesher output vertex, matching the stride and attribute
// order spec.md §6 requires for upload to the RHI.
type Vertex struct {
	PX, PY, PZ float32
	CR, CG, CB float32
	NX, NY, NZ float32
	U, V       float32
	TileID     float32
	Skylight   float32
	Blocklight float32
}

// Append writes v's 14 floats, in attribute order, onto dst.
func (v Vertex) Append(dst []float32) []float32 {
	return append(dst,
		v.PX, v.PY, v.PZ,
		v.CR, v.CG, v.CB,
		v.NX, v.NY, v.NZ,
		v.U, v.V,
		v.TileID,
		v.Skylight,
		v.Blocklight,
	)
}
