package catalog

import (
	"sync/atomic"
)

// Store publishes the current catalog to concurrent readers and lets
// an admin reload swap it atomically. Readers that grabbed a snapshot
// keep it; a reload never mutates a catalog in place.
type Store struct {
	current atomic.Pointer[Catalog]
	load    func() (*Catalog, error)
}

// NewStore runs the loader once and fails if no catalog can be built.
func NewStore(load func() (*Catalog, error)) (*Store, error) {
	s := &Store{load: load}
	c, err := load()
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return s, nil
}

// Current returns the live catalog snapshot.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Reload re-runs the loader. On failure the previous catalog stays
// live, so a bad menu file cannot take the service down mid-flight.
func (s *Store) Reload() (*Catalog, error) {
	c, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return c, nil
}
