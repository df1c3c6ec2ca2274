// Package store holds the built products of a container: identity ->
// boxed value. Entries are written monotonically during construction and
// replaced at most once by the late-init pass, so a product's reference
// stays stable across repeated builds.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/wirebox/ident"
)

// ErrAlreadyStored is returned by Put when the identity already has a
// value. Construction never overwrites.
var ErrAlreadyStored = errors.New("store: product already stored")

// ErrNotStored is returned by Replace when the identity has no value yet.
var ErrNotStored = errors.New("store: product not stored")

// Store maps product identities to boxed values. Writes happen only from
// the single goroutine running a build; the mutex makes reads safe for
// callers fetching products while unrelated code is registering or
// building.
type Store struct {
	mu       sync.RWMutex
	products map[ident.ID]any
	order    []ident.ID
}

// New returns an empty store.
func New() *Store {
	return &Store{products: make(map[ident.ID]any)}
}

// Put stores the freshly constructed value for id. Overwriting is an
// error: a built product is built for good.
func (s *Store) Put(id ident.ID, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyStored, id)
	}
	s.products[id] = v
	s.order = append(s.order, id)
	return nil
}

// Replace swaps the stored value for id. Only the late-init pass calls
// this, exactly once per late-initialized product.
func (s *Store) Replace(id ident.ID, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotStored, id)
	}
	s.products[id] = v
	return nil
}

// Get returns the stored value for id.
func (s *Store) Get(id ident.ID) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.products[id]
	return v, ok
}

// Has reports whether id has been built.
func (s *Store) Has(id ident.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.products[id]
	return ok
}

// Len returns the number of stored products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// IDs returns the stored identities in the order they were first built.
func (s *Store) IDs() []ident.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ident.ID, len(s.order))
	copy(out, s.order)
	return out
}
