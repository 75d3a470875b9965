package gomap

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// SortedMap is a read-only mapping iterated in ascending key order.
type SortedMap[K cmp.Ordered, V any] struct {
	keys []K
	m    map[K]V
}

func NewSortedMap[K cmp.Ordered, V any](m map[K]V) *SortedMap[K, V] {
	return &SortedMap[K, V]{keys: slices.Sorted(maps.Keys(m)), m: m}
}

func (s *SortedMap[K, V]) Len() int { return len(s.keys) }

func (s *SortedMap[K, V]) Get(k K) (V, bool) {
	v, ok := s.m[k]
	return v, ok
}

// Keys returns the keys in ascending order. The slice must not be modified.
func (s *SortedMap[K, V]) Keys() []K { return s.keys }

func (s *SortedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range s.keys {
			if !yield(k, s.m[k]) {
				return
			}
		}
	}
}
