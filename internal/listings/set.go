package listings

import (
	"errors"
	"fmt"

	"github.com/listings-labs/listings/internal/cache"
	"github.com/listings-labs/listings/internal/hierarchy"
)

// Set holds one registry per Kind, sharing a hierarchy and store.
type Set struct {
	Listed  *Registry
	Roots   *Registry
	Indexes *Registry
}

// NewSet wires the three registries. opts apply to each of them; the roots
// and indexes registries are linked to the listed-page registry.
func NewSet(h hierarchy.Hierarchy, store cache.Store, opts ...Option) *Set {
	listed := New(ListedPages, h, store, opts...)
	linked := append(append([]Option(nil), opts...), WithListedPages(listed))
	return &Set{
		Listed:  listed,
		Roots:   New(ListingsRoots, h, store, linked...),
		Indexes: New(ListingsIndexes, h, store, linked...),
	}
}

// Get returns the registry for kind.
func (s *Set) Get(kind Kind) (*Registry, error) {
	switch kind {
	case ListedPages:
		return s.Listed, nil
	case ListingsRoots:
		return s.Roots, nil
	case ListingsIndexes:
		return s.Indexes, nil
	default:
		return nil, fmt.Errorf("unknown registry kind %v", kind)
	}
}

// All returns the registries in wiring order.
func (s *Set) All() []*Registry {
	return []*Registry{s.Listed, s.Roots, s.Indexes}
}

// FlushAll flushes every registry, attempting all of them even when one fails.
func (s *Set) FlushAll() error {
	var errs []error
	for _, r := range s.All() {
		if err := r.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
