package block

import "testing"

func TestDefaultCatalogLookup(t *testing.T) {
	c := DefaultCatalog()

	if got := c.Get(Stone); got.Name != "stone" {
		t.Fatalf("Get(Stone).Name = %q, want stone", got.Name)
	}
	if got := c.Get(Air); !got.Transparent || got.Opaque {
		t.Fatalf("air should be transparent and non-opaque, got %+v", got)
	}
	if got := c.Get(Glowstone); got.Emission != (Emission{15, 15, 15}) {
		t.Fatalf("glowstone emission = %+v, want 15/15/15", got.Emission)
	}
}

func TestUnknownIDFallsBackVisibly(t *testing.T) {
	c := DefaultCatalog()
	got := c.Get(ID(250))
	if got.Name != "unknown" {
		t.Fatalf("Get(250).Name = %q, want unknown", got.Name)
	}
	if !got.Opaque {
		t.Fatalf("unknown fallback should be opaque so it is visible")
	}
}

func TestLookupByName(t *testing.T) {
	c := DefaultCatalog()
	id, ok := c.Lookup("grass")
	if !ok || id != Grass {
		t.Fatalf("Lookup(grass) = (%v, %v), want (%v, true)", id, ok, Grass)
	}
	if _, ok := c.Lookup("does-not-exist"); ok {
		t.Fatalf("Lookup should report not-found for unregistered name")
	}
}

func TestFaceOpposite(t *testing.T) {
	pairs := map[Face]Face{
		FaceNorth: FaceSouth,
		FaceEast:  FaceWest,
		FaceTop:   FaceBottom,
	}
	for f, want := range pairs {
		if got := f.Opposite(); got != want {
			t.Fatalf("%v.Opposite() = %v, want %v", f, got, want)
		}
		if got := want.Opposite(); got != f {
			t.Fatalf("%v.Opposite() = %v, want %v", want, got, f)
		}
	}
}
