package booking

import "sync/atomic"

// SubmitGuard enforces at-most-one in-flight submission per draft instance.
// A second submit attempt while one is pending is rejected until the first
// resolves or fails.
type SubmitGuard struct {
	inFlight atomic.Bool
	epoch    atomic.Uint64
}

// Begin claims the guard. It returns false if a submission is already in
// flight. The returned epoch identifies this attempt for Relevant checks.
func (g *SubmitGuard) Begin() (epoch uint64, ok bool) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return 0, false
	}
	return g.epoch.Load(), true
}

// End releases the guard after the submission resolves or fails.
func (g *SubmitGuard) End() {
	g.inFlight.Store(false)
}

// Abandon invalidates results of any in-flight attempt, e.g. when the form
// is closed or reset. Late results must be discarded via Relevant.
func (g *SubmitGuard) Abandon() {
	g.epoch.Add(1)
	g.inFlight.Store(false)
}

// Relevant reports whether a result belonging to the given epoch should
// still be applied.
func (g *SubmitGuard) Relevant(epoch uint64) bool {
	return g.epoch.Load() == epoch
}
