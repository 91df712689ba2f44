package engine

import (
	"log"
	"sync/atomic"
)

// NavigationGuard serializes run actions with a single busy flag. A call
// arriving while another action is in flight is dropped, not queued; the
// UI re-reads state afterwards. Without this, a double-tapped advance
// while a load was in flight produced duplicate question advances and
// duplicate persisted results.
type NavigationGuard struct {
	busy atomic.Bool
}

// Enter attempts to claim the guard. It returns false, dropping the
// action, when another action is already in flight.
func (g *NavigationGuard) Enter(action string) bool {
	if !g.busy.CompareAndSwap(false, true) {
		log.Printf("[QUIZ-ENGINE] Dropped %s: another action is in flight", action)
		return false
	}
	return true
}

// Exit releases the guard. Callers must defer it immediately after a
// successful Enter so a panic or slow load cannot wedge the run.
func (g *NavigationGuard) Exit() {
	g.busy.Store(false)
}

// Busy reports whether an action is currently in flight.
func (g *NavigationGuard) Busy() bool {
	return g.busy.Load()
}
