// Package collection holds in-memory mirrors of server resource lists.
//
// A Store only ever reflects the last successful server read or write:
// callers apply the exact entity the server returned after a call
// resolves, never a locally-guessed value. A failed call therefore
// leaves the store byte-for-byte untouched.
package collection

import "sync"

// Store mirrors one server-side list (tasks or labels) for the active
// user. Insertion order is preserved; it is the display order.
type Store[E any] struct {
	mu     sync.Mutex
	items  []E
	id     func(E) string
	closed bool
}

// New creates a store whose entities are identified by id.
func New[E any](id func(E) string) *Store[E] {
	return &Store[E]{id: id}
}

// ReplaceAll swaps in a freshly loaded list, used after a full reload.
func (s *Store[E]) ReplaceAll(items []E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.items = make([]E, len(items))
	copy(s.items, items)
}

// Insert appends a newly created entity. Ids are server-assigned and
// unique by construction, so no duplicate check is needed.
func (s *Store[E]) Insert(item E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.items = append(s.items, item)
}

// ReplaceOne swaps the entity with the given id for the server-returned
// copy. A missing id is a no-op, not an error: the entity may have been
// removed while the update was in flight.
func (s *Store[E]) ReplaceOne(id string, item E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = item
			return
		}
	}
}

// RemoveOne removes the entity with the given id; no-op if absent.
func (s *Store[E]) RemoveOne(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Get returns the entity with the given id, if present.
func (s *Store[E]) Get(id string) (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			return s.items[i], true
		}
	}
	var zero E
	return zero, false
}

// Items returns a copy of the list in store order.
func (s *Store[E]) Items() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of entities held.
func (s *Store[E]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear drops all entities, used on logout or when leaving the owning
// view. The store stays usable.
func (s *Store[E]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Close marks the store's owning view as gone. Every later mutation is
// discarded, so a response arriving after navigation cannot update a
// dead view. Reads still work (they return the final state).
func (s *Store[E]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.items = nil
}

// Closed reports whether Close has been called.
func (s *Store[E]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
