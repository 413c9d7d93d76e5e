package lod

import (
	"sync"
	"testing"
	"time"
)

func TestEnsureCreatesEmptyRegion(t *testing.T) {
	p := NewPyramid()
	r := p.Ensure(TierL1, RegionCoord{2, 3})
	if r.State != StateEmpty {
		t.Fatalf("new region should start Empty, got %v", r.State)
	}
	if r2 := p.Ensure(TierL1, RegionCoord{2, 3}); r2 != r {
		t.Fatalf("Ensure should return the same region on repeat calls")
	}
}

func TestUnloadBumpsJobTokenAndRemoves(t *testing.T) {
	p := NewPyramid()
	r := p.Ensure(TierL2, RegionCoord{0, 0})
	r.JobToken = 5
	p.Unload(TierL2, RegionCoord{0, 0})
	if _, ok := p.Get(TierL2, RegionCoord{0, 0}); ok {
		t.Fatalf("region should be removed after Unload")
	}
	if r.JobToken != 6 {
		t.Fatalf("Unload should bump the job token so in-flight jobs are discarded, got %d", r.JobToken)
	}
}

func TestPriorityFavorsRegionsAheadOfVelocity(t *testing.T) {
	ahead := priority(10, 0, 0, 0, 1, 0)
	behind := priority(-10, 0, 0, 0, 1, 0)
	if ahead >= behind {
		t.Fatalf("region ahead of velocity should have lower priority value: ahead=%f behind=%f", ahead, behind)
	}
}

func TestPriorityIgnoresVelocityBelowThreshold(t *testing.T) {
	p := priority(10, 0, 0, 0, 0.05, 0)
	if p != 100 {
		t.Fatalf("below-threshold velocity should fall back to plain dist_sq, got %f", p)
	}
}

// The pool runs the three jobs concurrently, so their completion order is
// not asserted; the test checks that one drain dispatches every tier.
func TestDrainGenerationRunsEveryTier(t *testing.T) {
	pyr := NewPyramid()
	s := NewScheduler(pyr, 4, 64, 4)
	defer s.Stop()

	var mu sync.Mutex
	var order []Tier

	r1 := pyr.Ensure(TierL1, RegionCoord{0, 0})
	r2 := pyr.Ensure(TierL2, RegionCoord{0, 0})
	r3 := pyr.Ensure(TierL3, RegionCoord{0, 0})
	s.Enqueue(TierL1, r1, 0, 0, 0, 0)
	s.Enqueue(TierL2, r2, 0, 0, 0, 0)
	s.Enqueue(TierL3, r3, 0, 0, 0, 0)

	done := make(chan struct{}, 3)
	s.DrainGeneration(func(coord RegionCoord, tier Tier) []int16 {
		mu.Lock()
		order = append(order, tier)
		mu.Unlock()
		done <- struct{}{}
		return []int16{1, 2, 3}
	})

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("generation jobs did not complete in time")
		}
	}

	if r1.State != StateGenerated || r2.State != StateGenerated || r3.State != StateGenerated {
		t.Fatalf("all three regions should be Generated: %v %v %v", r1.State, r2.State, r3.State)
	}
}

func TestDrainGenerationDiscardsStaleToken(t *testing.T) {
	pyr := NewPyramid()
	s := NewScheduler(pyr, 2, 64, 4)
	defer s.Stop()

	r := pyr.Ensure(TierL1, RegionCoord{1, 1})
	s.Enqueue(TierL1, r, 0, 0, 0, 0)

	// Simulate the region being unloaded (token bumped) before the job runs.
	r.JobToken++

	done := make(chan struct{}, 1)
	s.DrainGeneration(func(coord RegionCoord, tier Tier) []int16 {
		done <- struct{}{}
		return []int16{9}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("generation job did not run")
	}

	time.Sleep(20 * time.Millisecond)
	if r.State == StateGenerated {
		t.Fatalf("a stale-token completion must not advance region state")
	}
}

func TestDrainUploadsRespectsBudgetAndTierOrder(t *testing.T) {
	pyr := NewPyramid()
	s := NewScheduler(pyr, 2, 64, 2)
	defer s.Stop()

	for i := int32(0); i < 3; i++ {
		r := pyr.Ensure(TierL3, RegionCoord{i, 0})
		r.State = StateMeshReady
	}
	r1 := pyr.Ensure(TierL1, RegionCoord{0, 0})
	r1.State = StateMeshReady

	var uploaded []Tier
	s.DrainUploads(func(r *Region) {
		uploaded = append(uploaded, r.Tier)
	})

	if len(uploaded) != 2 {
		t.Fatalf("expected exactly 2 uploads (budget), got %d", len(uploaded))
	}
	for _, tier := range uploaded {
		if tier != TierL3 {
			t.Fatalf("budget should be exhausted by L3 before other tiers, got %v", tier)
		}
	}
}

func TestPauseStopsEnqueueAndDrain(t *testing.T) {
	pyr := NewPyramid()
	s := NewScheduler(pyr, 2, 64, 4)
	defer s.Stop()

	s.Pause()
	r := pyr.Ensure(TierL1, RegionCoord{0, 0})
	s.Enqueue(TierL1, r, 0, 0, 0, 0)
	if r.State != StateEmpty {
		t.Fatalf("Enqueue while paused should be a no-op, state = %v", r.State)
	}

	s.Resume()
	s.Enqueue(TierL1, r, 0, 0, 0, 0)
	if r.State != StateQueuedGen {
		t.Fatalf("Enqueue after Resume should proceed, state = %v", r.State)
	}
}

func TestMaskRadiusFormula(t *testing.T) {
	if got := MaskRadius(8, 16); got != 112 {
		t.Fatalf("MaskRadius(8,16) = %f, want 112", got)
	}
}
