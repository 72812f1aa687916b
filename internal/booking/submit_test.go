package booking

import "testing"

func TestSubmitGuardSingleFlight(t *testing.T) {
	var g SubmitGuard

	epoch, ok := g.Begin()
	if !ok {
		t.Fatal("first Begin should succeed")
	}
	if _, ok := g.Begin(); ok {
		t.Fatal("second Begin must be rejected while in flight")
	}

	g.End()
	if !g.Relevant(epoch) {
		t.Error("result should still be relevant after a normal End")
	}

	if _, ok := g.Begin(); !ok {
		t.Fatal("Begin should succeed again after End")
	}
}

func TestSubmitGuardAbandonDiscardsLateResults(t *testing.T) {
	var g SubmitGuard

	epoch, _ := g.Begin()
	g.Abandon()

	if g.Relevant(epoch) {
		t.Error("late result after Abandon must be discarded")
	}

	// The guard is reusable after abandonment.
	epoch2, ok := g.Begin()
	if !ok {
		t.Fatal("Begin should succeed after Abandon")
	}
	if !g.Relevant(epoch2) {
		t.Error("new attempt should be relevant")
	}
}
