// Package diary owns the entry collection and runs the render pipeline
// over it.
package diary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/storage"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("entry not found")

// Store is the ordered entry collection. Every mutation is saved to the
// backend before it becomes visible, so memory never runs ahead of disk.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	entries []model.Entry
	logger  *log.Logger
}

// Open loads the collection from backend. Missing or corrupt data yields an
// empty collection.
func Open(ctx context.Context, backend storage.Backend, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Store{backend: backend, logger: logger.WithComponent("store")}

	entries, err := backend.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.WarnContext(ctx, "starting with empty diary", "error", err)
		entries = nil
	case err != nil:
		return nil, err
	}
	for i := range entries {
		entries[i].Normalize()
	}
	uniqueIDs(entries)
	s.entries = entries
	s.logger.InfoContext(ctx, "entries loaded", "count", len(entries))
	return s, nil
}

// All returns a copy of the collection in stored order.
func (s *Store) All() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the entry with id.
func (s *Store) Get(id string) (model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.entries[i], nil
	}
	return model.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Lookup is Get without the error.
func (s *Store) Lookup(id string) (model.Entry, bool) {
	e, err := s.Get(id)
	return e, err == nil
}

// Upsert validates e and stores it. An entry with a known id is replaced in
// place, keeping its photos when e carries none. Otherwise e is appended,
// receiving a new id if it has none.
func (s *Store) Upsert(ctx context.Context, e model.Entry) (model.Entry, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return model.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.entries)
	if i := s.index(e.ID); e.ID != "" && i >= 0 {
		if len(e.Photos) == 0 {
			e.Photos = next[i].Photos
		}
		next[i] = e
	} else {
		if e.ID == "" {
			e.ID = model.NewID()
		}
		next = append(next, e)
	}
	if err := s.commit(ctx, next); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// Delete removes the entry with id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]model.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	return s.commit(ctx, next)
}

// Replace swaps the whole collection, as an import does. Entries without an
// id, or repeating an id seen earlier in entries, receive a fresh one.
func (s *Store) Replace(ctx context.Context, entries []model.Entry) error {
	next := clone(entries)
	for i := range next {
		next[i].Normalize()
	}
	uniqueIDs(next)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, next)
}

// Reset empties the collection.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []model.Entry{})
}

// commit saves next and then publishes it. Callers hold mu.
func (s *Store) commit(ctx context.Context, next []model.Entry) error {
	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("saving entries: %w", err)
	}
	s.entries = next
	s.logger.DebugContext(ctx, "entries saved", "count", len(next))
	return nil
}

func (s *Store) index(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// uniqueIDs gives a new id to every entry whose id is empty or already used
// by an earlier entry. The first holder of an id keeps it.
func uniqueIDs(entries []model.Entry) {
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		if entries[i].ID == "" || seen[entries[i].ID] {
			entries[i].ID = model.NewID()
		}
		seen[entries[i].ID] = true
	}
}

func clone(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	return out
}
