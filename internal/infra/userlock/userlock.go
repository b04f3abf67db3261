// Package userlock serializes per-user read-modify-write sequences.
// Streak recompute, ledger append, and the badge threshold-cross check must
// observe a consistent "previous value" for one user, while operations for
// different users run fully in parallel with no shared lock.
package userlock

import "sync"

// Registry hands out one mutex per user id. Mutexes are created lazily and
// kept for the process lifetime; the per-user footprint is a single mutex.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a user and returns its unlock function.
//
//	defer locks.Lock(userID)()
func (r *Registry) Lock(userID string) func() {
	r.mu.Lock()
	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
