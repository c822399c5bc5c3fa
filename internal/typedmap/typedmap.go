package typedmap

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrDuplicateKey is matched by errors returned when a map is built with a repeated key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnresolvedKey is matched by errors returned when a lookup misses.
	ErrUnresolvedKey = errors.New("unresolved key")
)

// Pair is a single key/value entry used to build a Map.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// P is a shorthand constructor for Pair.
func P[K comparable, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

// DuplicateKeyError reports a key that appears more than once in the pairs given to New.
type DuplicateKeyError struct {
	Key    any
	First  int // position of the first occurrence
	Second int // position of the repeated occurrence
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %v at positions %d and %d", e.Key, e.First, e.Second)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// UnresolvedKeyError reports a lookup of a key that is not in the map.
type UnresolvedKeyError struct {
	Key   any
	Known []any
}

func (e *UnresolvedKeyError) Error() string {
	return fmt.Sprintf("unresolved key %v (known keys: %v)", e.Key, e.Known)
}

func (e *UnresolvedKeyError) Unwrap() error { return ErrUnresolvedKey }

// Map is an immutable associative container queried by exact key match.
// Iteration follows the order in which pairs were supplied.
type Map[K comparable, V any] struct {
	pairs []Pair[K, V]
	index map[K]int
}

// New builds a Map from the given pairs. Every key must be distinct.
func New[K comparable, V any](pairs ...Pair[K, V]) (*Map[K, V], error) {
	m := &Map[K, V]{
		pairs: make([]Pair[K, V], 0, len(pairs)),
		index: make(map[K]int, len(pairs)),
	}

	for i, p := range pairs {
		if first, ok := m.index[p.Key]; ok {
			return nil, &DuplicateKeyError{Key: p.Key, First: first, Second: i}
		}

		m.index[p.Key] = i
		m.pairs = append(m.pairs, p)
	}

	return m, nil
}

// MustNew is like New but panics on error. Intended for package-level tables.
func MustNew[K comparable, V any](pairs ...Pair[K, V]) *Map[K, V] {
	m, err := New(pairs...)
	if err != nil {
		panic(err)
	}

	return m
}

// With returns a new Map holding the receiver's pairs followed by extra.
// The receiver is left untouched.
func (m *Map[K, V]) With(extra ...Pair[K, V]) (*Map[K, V], error) {
	all := make([]Pair[K, V], 0, m.Len()+len(extra))
	all = append(all, m.Pairs()...)
	all = append(all, extra...)

	return New(all...)
}

// Lookup returns the value bound to key.
func (m *Map[K, V]) Lookup(key K) (V, error) {
	if m != nil {
		if i, ok := m.index[key]; ok {
			return m.pairs[i].Value, nil
		}
	}

	var zero V

	known := make([]any, 0, m.Len())
	for _, k := range m.Keys() {
		known = append(known, k)
	}

	return zero, &UnresolvedKeyError{Key: key, Known: known}
}

// Contains reports whether key is bound in the map.
func (m *Map[K, V]) Contains(key K) bool {
	if m == nil {
		return false
	}

	_, ok := m.index[key]

	return ok
}

// Len returns the number of pairs.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}

	return len(m.pairs)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}

	keys := make([]K, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}

	return keys
}

// Pairs returns a copy of the pairs in insertion order.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	if m == nil {
		return nil
	}

	return append([]Pair[K, V](nil), m.pairs...)
}

// All iterates over the pairs in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}

		for _, p := range m.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}
