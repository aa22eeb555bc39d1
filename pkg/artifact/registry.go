package artifact

import "sync"

// Registry is the in-memory token table and the only shared mutable state
// in the store. Every method holds the lock as briefly as possible;
// Snapshot copies so nothing scans the table under the lock.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Put inserts a new entry. An already registered token is rejected with
// ErrDuplicateToken; entries are never overwritten in place.
func (r *Registry) Put(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[e.Token]; exists {
		return ErrDuplicateToken
	}
	r.entries[e.Token] = e
	return nil
}

// Get returns the entry for token if one is registered, expired or not.
func (r *Registry) Get(token string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[token]
	return e, ok
}

// Delete removes the entry if present. Deleting an absent token is a
// no-op, which makes the lazy and sweep eviction races harmless.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, token)
}

// Snapshot returns a copy of all entries as of one instant.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
