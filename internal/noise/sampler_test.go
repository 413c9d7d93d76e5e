package noise

import "testing"

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(42, 0.25, 0.2, 0.9, 0.6)
	b := NewSampler(42, 0.25, 0.2, 0.9, 0.6)

	if a.Continentalness(123.4, -56.7, 0) != b.Continentalness(123.4, -56.7, 0) {
		t.Fatalf("same seed must produce identical continentalness")
	}
	if a.CaveDensity(1, 2, 3, 0) != b.CaveDensity(1, 2, 3, 0) {
		t.Fatalf("same seed must produce identical cave density")
	}
}

func TestChannelsStayInBounds(t *testing.T) {
	s := NewSampler(7, 0.25, 0.2, 0.9, 0.6)
	for _, p := range [][2]float64{{0, 0}, {1000, -2000}, {-500, 500}} {
		if v := s.Continentalness(p[0], p[1], 0); v < 0 || v > 1 {
			t.Fatalf("Continentalness out of [0,1]: %v", v)
		}
		if v := s.Erosion(p[0], p[1], 0); v < 0 || v > 1 {
			t.Fatalf("Erosion out of [0,1]: %v", v)
		}
		if v := s.RiverMask(p[0], p[1], 0); v < 0 || v > 1 {
			t.Fatalf("RiverMask out of [0,1]: %v", v)
		}
	}
}

func TestReductionShrinksOctaveCount(t *testing.T) {
	if got := reducedOctaves(6, 0); got != 6 {
		t.Fatalf("reduction 0 should not change octave count, got %d", got)
	}
	if got := reducedOctaves(6, 1); got != 3 {
		t.Fatalf("reduction 1 should halve, got %d", got)
	}
	if got := reducedOctaves(6, 3); got < 1 {
		t.Fatalf("reducedOctaves must not go below usable minimum in caller, got %d", got)
	}
}

func TestRidgeZeroOutsideInlandBand(t *testing.T) {
	s := NewSampler(1, 0.25, 0.2, 0.9, 0.0)
	if v := s.Ridge(10, 10, 0.05, 0); v != 0 {
		t.Fatalf("Ridge outside inland band should be 0, got %v", v)
	}
}

func TestAuthenticModeStaysInBoundsAndDiffersFromOpenSimplex(t *testing.T) {
	opensimplex := NewSampler(7, 0.25, 0.2, 0.9, 0.6)
	authentic := NewSampler(7, 0.25, 0.2, 0.9, 0.6).WithMode(ModeAuthentic)

	for _, p := range [][2]float64{{0, 0}, {1000, -2000}, {-500, 500}} {
		if v := authentic.Continentalness(p[0], p[1], 0); v < 0 || v > 1 {
			t.Fatalf("Authentic Continentalness out of [0,1]: %v", v)
		}
		if v := authentic.Erosion(p[0], p[1], 0); v < 0 || v > 1 {
			t.Fatalf("Authentic Erosion out of [0,1]: %v", v)
		}
	}

	if opensimplex.Continentalness(123.4, -56.7, 0) == authentic.Continentalness(123.4, -56.7, 0) {
		t.Fatal("ModeAuthentic must sample a different noise family than the default opensimplex backend")
	}
}
