// Package orderedset provides an insertion-ordered collection of unique elements.
//
// Uniqueness is decided by a key-extraction function fixed when the set is
// created, not by identity or equality of the elements themselves. Process
// boxes are keyed by name, lines by their kind, endpoints and label.
//
// # Usage
//
//	boxes := orderedset.New(func(b *Box) string { return b.Name })
//	a := boxes.Get("A", func() *Box { return &Box{Name: "A"} })
//	again := boxes.Get("A", func() *Box { return &Box{Name: "A"} }) // same as a
//
// Sets are not safe for concurrent use.
package orderedset

import (
	"iter"
	"slices"
)

// Set is an ordered collection of elements that are unique under a key function.
// The zero value is not usable; create sets with [New].
type Set[T any, K comparable] struct {
	key   func(T) K
	items []T
	index map[K]int
}

// New creates a set keyed by key and adds items in order, skipping duplicates.
func New[T any, K comparable](key func(T) K, items ...T) *Set[T, K] {
	s := &Set[T, K]{key: key, index: make(map[K]int, len(items))}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Len returns the number of elements.
func (s *Set[T, K]) Len() int { return len(s.items) }

// At returns the element at position i in current order.
func (s *Set[T, K]) At(i int) T { return s.items[i] }

// Items returns a copy of the elements in order.
func (s *Set[T, K]) Items() []T { return slices.Clone(s.items) }

// All iterates over positions and elements in order.
func (s *Set[T, K]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, it := range s.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Key returns the key the set uses for v.
func (s *Set[T, K]) Key(v T) K { return s.key(v) }

// Lookup returns the element stored under k.
func (s *Set[T, K]) Lookup(k K) (T, bool) {
	if i, ok := s.index[k]; ok {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Contains reports whether an element with v's key is present.
func (s *Set[T, K]) Contains(v T) bool {
	_, ok := s.index[s.key(v)]
	return ok
}

// Get returns the element stored under k. If there is none, it calls
// makeFn, adds the result and returns it.
func (s *Set[T, K]) Get(k K, makeFn func() T) T {
	if v, ok := s.Lookup(k); ok {
		return v
	}
	return s.Add(makeFn())
}

// Add appends v unless an element with the same key exists, in which case
// the existing element is returned and the set is unchanged.
func (s *Set[T, K]) Add(v T) T {
	k := s.key(v)
	if i, ok := s.index[k]; ok {
		return s.items[i]
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
	return v
}

// Remove deletes the element with v's key and returns it.
func (s *Set[T, K]) Remove(v T) (T, bool) {
	k := s.key(v)
	i, ok := s.index[k]
	if !ok {
		var zero T
		return zero, false
	}
	removed := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, k)
	for j := i; j < len(s.items); j++ {
		s.index[s.key(s.items[j])] = j
	}
	return removed, true
}

// Without returns every element except the one with v's key, in order.
// The set itself is not modified.
func (s *Set[T, K]) Without(v T) []T {
	k := s.key(v)
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if s.key(it) != k {
			out = append(out, it)
		}
	}
	return out
}

// Before returns the elements strictly preceding v. It returns nil when v
// is not in the set.
func (s *Set[T, K]) Before(v T) []T {
	i, ok := s.index[s.key(v)]
	if !ok {
		return nil
	}
	return slices.Clone(s.items[:i])
}

// After returns the elements strictly following v. It returns nil when v
// is not in the set.
func (s *Set[T, K]) After(v T) []T {
	i, ok := s.index[s.key(v)]
	if !ok {
		return nil
	}
	return slices.Clone(s.items[i+1:])
}

// SortBy returns a new set with the same key function whose elements are
// stably ordered by cmp. The receiver keeps its order.
func (s *Set[T, K]) SortBy(cmp func(a, b T) int) *Set[T, K] {
	sorted := slices.Clone(s.items)
	slices.SortStableFunc(sorted, cmp)
	return New(s.key, sorted...)
}

// Union returns a new set holding the receiver's elements followed by the
// elements of other whose keys are not already present.
func (s *Set[T, K]) Union(other *Set[T, K]) *Set[T, K] {
	u := New(s.key, s.items...)
	if other != nil {
		for _, it := range other.items {
			u.Add(it)
		}
	}
	return u
}
