// Package orderedmap provides a key-unique map whose iteration order is always
// the sorted order of its keys, independent of insertion order.
package orderedmap

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

// Map stores values in an unordered map and sorts keys at read time.
// The zero value is ready to use.
type Map[K cmp.Ordered, V any] struct {
	data map[K]V
}

// New returns an empty map.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{data: map[K]V{}}
}

// Insert adds k. It fails with a ValidationError, leaving the map unchanged,
// when k is already present.
func (m *Map[K, V]) Insert(k K, v V) error {
	if _, ok := m.data[k]; ok {
		return generrors.Validationf("", nil, "duplicate key %v", k)
	}
	m.Set(k, v)
	return nil
}

// Set adds or replaces k.
func (m *Map[K, V]) Set(k K, v V) {
	if m.data == nil {
		m.data = map[K]V{}
	}
	m.data[k] = v
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.data[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.data[k]
	return ok
}

// Delete removes k if present.
func (m *Map[K, V]) Delete(k K) {
	delete(m.data, k)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.data)
}

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.data))
}

// All iterates over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m.data[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := New[K, V]()
	if m != nil {
		maps.Copy(out.data, m.data)
	}
	return out
}

func (m *Map[K, V]) String() string {
	return fmt.Sprint(m.data)
}
