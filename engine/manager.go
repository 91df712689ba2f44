package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrNoActiveRun is returned when a user has no placement run in flight.
var ErrNoActiveRun = errors.New("no active placement run")

// Sessions is the process-wide run registry, wired up in main. Tests
// construct their own managers.
var Sessions *Manager

// Manager keeps at most one active runner per user. Starting a new run
// closes the previous one, so responses still in flight for the old run
// can never leak into the new one.
type Manager struct {
	store DataStore
	cfg   Config

	mu      sync.Mutex
	runners map[uint]*Runner
}

// NewManager creates an empty run registry.
func NewManager(store DataStore, cfg Config) *Manager {
	return &Manager{
		store:   store,
		cfg:     cfg.withDefaults(),
		runners: make(map[uint]*Runner),
	}
}

// Start creates a fresh run for userID over refs, replacing any previous
// run, and drives it into its first quiz.
func (m *Manager) Start(ctx context.Context, userID uint, refs []QuizRef) (Snapshot, error) {
	if len(refs) == 0 {
		return Snapshot{}, errors.New("no quizzes to run")
	}

	runner := NewRunner(userID, m.store, m.cfg)

	m.mu.Lock()
	if prev, ok := m.runners[userID]; ok {
		prev.Close()
	}
	m.runners[userID] = runner
	m.mu.Unlock()

	return runner.Start(ctx, refs), nil
}

// Get returns the active runner for userID.
func (m *Manager) Get(userID uint) (*Runner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runner, ok := m.runners[userID]
	if !ok {
		return nil, ErrNoActiveRun
	}
	return runner, nil
}

// terminalGrace keeps completed and failed runs visible briefly so a
// client can still read the final state before eviction.
const terminalGrace = time.Minute

// Sweep evicts runs idle longer than maxIdle, and terminal runs idle
// longer than a short grace period, closing each evicted runner. It
// returns the number of evictions.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	now := time.Now()
	for userID, runner := range m.runners {
		idle := now.Sub(runner.LastActivity())
		if idle > maxIdle || (runner.Status().Terminal() && idle > terminalGrace) {
			runner.Close()
			delete(m.runners, userID)
			evicted++
			log.Printf("[QUIZ-ENGINE] Evicted run %s for user %d", runner.RunID(), userID)
		}
	}
	return evicted
}

// Active returns the number of registered runs.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runners)
}
