package meshing

import (
	"testing"

	"github.com/dantero-ps/voxelworld/internal/block"
	"github.com/dantero-ps/voxelworld/internal/chunk"
)

func flatTiles(id block.ID, face block.Face) float32 { return float32(id) }

func TestBuildGreedyMeshMergesFlatLayer(t *testing.T) {
	cat := block.DefaultCatalog()
	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	for x := 0; x < chunk.SizeX; x++ {
		for z := 0; z < chunk.SizeZ; z++ {
			c.SetBlock(x, 0, z, block.Stone)
		}
	}

	solid, fluid := BuildGreedyMesh(cat, c, Neighbors{}, flatTiles)

	if len(fluid) != 0 {
		t.Fatalf("expected no fluid vertices for an all-stone layer, got %d floats", len(fluid))
	}
	if len(solid) == 0 {
		t.Fatal("expected solid vertices for the top and side faces of the layer")
	}
	if len(solid)%VertexFloats != 0 {
		t.Fatalf("solid vertex buffer length %d is not a multiple of VertexFloats (%d)", len(solid), VertexFloats)
	}
}

func TestBuildGreedyMeshMissingNeighborExposesBoundaryFace(t *testing.T) {
	cat := block.DefaultCatalog()
	c := chunk.New(chunk.Coord{X: 0, Z: 0})
	c.SetBlock(chunk.SizeX-1, 0, 0, block.Stone)

	withoutNeighbor, _ := BuildGreedyMesh(cat, c, Neighbors{}, flatTiles)

	east := chunk.New(chunk.Coord{X: 1, Z: 0})
	east.SetBlock(0, 0, 0, block.Stone)
	withNeighbor, _ := BuildGreedyMesh(cat, c, Neighbors{East: east}, flatTiles)

	if len(withoutNeighbor) <= len(withNeighbor) {
		t.Fatalf("expected fewer vertices once the east face is occluded by a loaded neighbor: without=%d with=%d",
			len(withoutNeighbor), len(withNeighbor))
	}
}

func TestBuildGreedyMeshAirProducesNoGeometry(t *testing.T) {
	cat := block.DefaultCatalog()
	c := chunk.New(chunk.Coord{X: 0, Z: 0})

	solid, fluid := BuildGreedyMesh(cat, c, Neighbors{}, flatTiles)

	if len(solid) != 0 || len(fluid) != 0 {
		t.Fatalf("expected an empty chunk to mesh to nothing, got solid=%d fluid=%d", len(solid), len(fluid))
	}
}
