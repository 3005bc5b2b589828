package registry

import (
	"iter"
	"sync"
)

type entry[T any] struct {
	id  Identifier
	rec T
}

// Registry maps identifiers to records of one interaction kind.
//
// Exact identifiers are unique (the last insert wins and keeps the original
// position), pattern identifiers are kept in insertion order and are
// consulted only when no exact identifier matches.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	exact   map[string]int // exact id -> index in entries
}

func New[T any]() *Registry[T] {
	return &Registry[T]{
		entries: make([]entry[T], 0),
		exact:   make(map[string]int),
	}
}

// Insert stores rec under id. An existing exact entry with the same id is
// replaced in place, a pattern is always appended.
func (r *Registry[T]) Insert(id Identifier, rec T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch id := id.(type) {
	case Exact:
		if idx, ok := r.exact[string(id)]; ok {
			r.entries[idx].rec = rec
			return
		}
		r.exact[string(id)] = len(r.entries)
		r.entries = append(r.entries, entry[T]{id: id, rec: rec})
	case Pattern:
		if id.Match == nil {
			return
		}
		r.entries = append(r.entries, entry[T]{id: id, rec: rec})
	}
}

// Lookup tries an exact match first, then every pattern in registration
// order. The first pattern that accepts key wins.
func (r *Registry[T]) Lookup(key string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx, ok := r.exact[key]; ok {
		return r.entries[idx].rec, true
	}
	for _, e := range r.entries {
		if p, ok := e.id.(Pattern); ok && p.Match(key) {
			return e.rec, true
		}
	}
	var zero T
	return zero, false
}

// All yields every entry in insertion order. Each call iterates a fresh
// snapshot, so the sequence can be restarted and is unaffected by inserts
// happening while it runs.
func (r *Registry[T]) All() iter.Seq2[Identifier, T] {
	return func(yield func(Identifier, T) bool) {
		r.mu.RLock()
		snapshot := make([]entry[T], len(r.entries))
		copy(snapshot, r.entries)
		r.mu.RUnlock()

		for _, e := range snapshot {
			if !yield(e.id, e.rec) {
				return
			}
		}
	}
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
