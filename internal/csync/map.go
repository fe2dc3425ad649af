package csync

import (
	"sync"
)

// Map is a mutex-guarded generic map whose check-and-set and
// load-and-delete operations are atomic.
type Map[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex
}

// NewMap creates a new thread-safe map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// SetIfAbsent stores value only when key is not present.
// It reports whether the value was stored.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return false
	}
	m.data[key] = value
	return true
}

// Get retrieves a value by key, returns the value and whether it exists
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	return value, exists
}

// LoadAndDelete removes key and returns the value it held.
// Concurrent callers for the same key see ok == true at most once.
func (m *Map[K, V]) LoadAndDelete(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, exists := m.data[key]
	if exists {
		delete(m.data, key)
	}
	return value, exists
}

// Delete removes a key-value pair from the map
func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Len returns the number of key-value pairs in the map
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
