package arena

import (
	"sync"
	"unsafe"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// The padding computation and cursor advance in Allocate happen under one
// lock, so concurrent callers never receive overlapping regions.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified capacity.
// If capacity <= 0, DefaultCapacity is used.
func NewSafeArena(capacity int) *SafeArena {
	return &SafeArena{a: NewArena(capacity)}
}

// Allocate thread-safely reserves size aligned bytes.
func (s *SafeArena) Allocate(size int) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(size)
}

// AllocBytes thread-safely allocates n bytes and returns a slice pointing to them.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// Fits thread-safely reports whether a request of size bytes would succeed.
func (s *SafeArena) Fits(size int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Fits(size)
}

// Release thread-safely drops the buffer and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Released thread-safely reports whether Release has been called.
func (s *SafeArena) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Released()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
