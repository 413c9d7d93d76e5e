package frustum

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(70), 16.0/9.0, 0.1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return FromViewProjection(proj.Mul4(view))
}

func TestContainsPointInFrontIsInside(t *testing.T) {
	f := testFrustum()
	if !f.ContainsPoint(0, 0, -10) {
		t.Fatalf("point straight ahead should be inside the frustum")
	}
}

func TestContainsPointBehindCameraIsOutside(t *testing.T) {
	f := testFrustum()
	if f.ContainsPoint(0, 0, 10) {
		t.Fatalf("point behind the camera should be outside the frustum")
	}
}

func TestIntersectsSphereFarOffToTheSideIsOutside(t *testing.T) {
	f := testFrustum()
	if f.IntersectsSphere(10000, 0, -10, 1) {
		t.Fatalf("sphere far outside the frustum's side planes should not intersect")
	}
}

func TestIntersectsChunkAheadOfCamera(t *testing.T) {
	f := testFrustum()
	origin := mgl32.Vec3{8, 64, 8}
	if !f.IntersectsChunk(0, -2, origin) {
		t.Fatalf("chunk straight ahead of the camera should intersect the frustum")
	}
}

func TestIntersectsChunkBehindCamera(t *testing.T) {
	f := testFrustum()
	origin := mgl32.Vec3{8, 64, 8}
	if f.IntersectsChunk(0, 20, origin) {
		t.Fatalf("chunk far behind the camera should not intersect the frustum")
	}
}
