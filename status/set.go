package status

import (
	"sort"
	"sync"
)

// Set is a named collection of metrics of type T
// Registration takes the mutex; callers cache the returned pointer and update it lock-free
type Set[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newSet[T any]() *Set[T] {
	return &Set[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, registering it on first use
func (s *Set[T]) Get(key string) *T {
	s.mu.RLock()
	if ptr, ok := s.items[key]; ok {
		s.mu.RUnlock()
		return ptr
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if ptr, ok := s.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	s.items[key] = ptr
	return ptr
}

// Range visits every metric in key order
func (s *Set[T]) Range(fn func(key string, ptr *T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, s.items[k])
	}
}

// Len returns the number of registered metrics
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
