// Package store holds the client-side in-memory collection of records:
// the single source of truth for what a view displays. Entries are keyed
// by the record id's string form; optimistic creations, which have no
// server-assigned id yet, live under caller-supplied provisional keys
// until the server response replaces them.
package store

import (
	"sync"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// Store is an observable, insertion-ordered record collection.
type Store struct {
	mu        sync.RWMutex
	order     []string
	byKey     map[string]domain.Record
	observers []func()
}

// New creates an empty Store.
func New() *Store {
	return &Store{byKey: make(map[string]domain.Record)}
}

// OnChange registers an observer invoked synchronously after every
// mutation. Observers must return promptly and must not mutate the Store
// from inside the callback.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// List returns all records in insertion order. Callers re-sort for
// display; the Store guarantees only a stable iteration order.
func (s *Store) List() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]domain.Record, 0, len(s.order))
	for _, key := range s.order {
		recs = append(recs, s.byKey[key])
	}
	return recs
}

// Get returns the record with the given id.
func (s *Store) Get(id domain.ID) (domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byKey[id.String()]
	return rec, ok
}

// Len returns the number of entries, provisional ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// Upsert inserts or replaces a record under its own id.
func (s *Store) Upsert(rec domain.Record) {
	s.PutKeyed(rec.ID.String(), rec)
}

// PutKeyed inserts or replaces a record under an explicit key. Used for
// provisional entries during optimistic creation.
func (s *Store) PutKeyed(key string, rec domain.Record) {
	s.mu.Lock()
	if _, ok := s.byKey[key]; !ok {
		s.order = append(s.order, key)
	}
	s.byKey[key] = rec
	s.mu.Unlock()

	s.notify()
}

// Remove deletes the record with the given id. No-op if absent.
func (s *Store) Remove(id domain.ID) {
	s.RemoveKey(id.String())
}

// RemoveKey deletes the entry under the given key. No-op if absent.
func (s *Store) RemoveKey(key string) {
	s.mu.Lock()
	if _, ok := s.byKey[key]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.byKey, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify()
}

// ReplaceAll resets the Store to exactly the given records, keyed by their
// ids. Used on initial hydration and full refresh.
func (s *Store) ReplaceAll(recs []domain.Record) {
	s.mu.Lock()
	s.order = make([]string, 0, len(recs))
	s.byKey = make(map[string]domain.Record, len(recs))
	for _, rec := range recs {
		key := rec.ID.String()
		if _, ok := s.byKey[key]; !ok {
			s.order = append(s.order, key)
		}
		s.byKey[key] = rec
	}
	s.mu.Unlock()

	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn()
	}
}
