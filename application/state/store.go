// Package state provides an observable value container used by the client
// session to push catalog and feedback snapshots to subscribers.
package state

import "sync"

// Store holds a value and notifies subscribers whenever it is replaced.
// Values are treated as immutable: callers replace, never edit, them.
type Store[T any] struct {
	mu        sync.RWMutex
	value     T
	listeners map[int]func(T)
	nextID    int
}

// NewStore creates a store holding initial.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies every subscriber.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// Update replaces the value with fn applied to the current one. The read
// and the write happen under one lock so concurrent updates are not lost.
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(v)
	}
	return v
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the subscription.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// snapshotListeners must be called with mu held.
func (s *Store[T]) snapshotListeners() []func(T) {
	out := make([]func(T), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// Derive keeps out equal to compute(a.Get(), b.Get()), recomputing whenever
// either input changes. The returned function stops the derivation.
func Derive[A, B, T any](a *Store[A], b *Store[B], out *Store[T], compute func(A, B) T) (stop func()) {
	var mu sync.Mutex
	recompute := func() {
		mu.Lock()
		defer mu.Unlock()
		out.Set(compute(a.Get(), b.Get()))
	}

	stopA := a.Subscribe(func(A) { recompute() })
	stopB := b.Subscribe(func(B) { recompute() })
	return func() {
		stopA()
		stopB()
	}
}
