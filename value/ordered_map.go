package value

import "iter"

// OrderedMap maps string keys to dynamic values, preserving insertion order.
type OrderedMap struct {
	keys   []string
	values map[string]Dynamic
}

// NewOrderedMap creates an empty map with room for size entries.
func NewOrderedMap(size int) *OrderedMap {
	return &OrderedMap{keys: make([]string, 0, size), values: make(map[string]Dynamic, size)}
}

// Set stores v under key; an existing key keeps its position.
func (m *OrderedMap) Set(key string, v Dynamic) {
	if m.values == nil {
		m.values = map[string]Dynamic{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value under key.
func (m *OrderedMap) Get(key string) (Dynamic, bool) {
	if m == nil {
		return Null(), false
	}
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, reporting whether it was present.
func (m *OrderedMap) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, candidate := range m.keys {
		if candidate == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates entries in insertion order.
func (m *OrderedMap) All() iter.Seq2[string, Dynamic] {
	return func(yield func(string, Dynamic) bool) {
		if m == nil {
			return
		}
		for _, key := range m.keys {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// Equal reports equality of entries and their order.
func (m *OrderedMap) Equal(other *OrderedMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, key := range m.Keys() {
		if other.keys[i] != key {
			return false
		}
		if !m.values[key].Equal(other.values[key]) {
			return false
		}
	}
	return true
}
