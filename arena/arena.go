// Package arena implements a fixed-capacity bump allocator (memory arena).
// The whole buffer is reserved once up front; regions are carved out of it
// sequentially and are only given back when the arena is released.
package arena

import (
	"errors"
	"unsafe"
)

// DefaultCapacity is the capacity used when NewArena is given a
// non-positive size (10 MiB).
const DefaultCapacity = 10 << 20

// MaxAlign is the largest alignment required by any Go scalar type on
// the target platform. Every region handed out starts on a multiple of it.
const MaxAlign = max(
	unsafe.Alignof(uint64(0)),
	unsafe.Alignof(float64(0)),
	unsafe.Alignof(complex128(0)),
	unsafe.Alignof(uintptr(0)),
)

var (
	// ErrExhausted is returned when a request does not fit in the
	// remaining capacity. The cursor is left untouched.
	ErrExhausted = errors.New("arena: capacity exhausted")

	// ErrInvalidSize is returned for zero or negative allocation sizes.
	ErrInvalidSize = errors.New("arena: invalid allocation size")
)

// Allocator hands out aligned, non-overlapping regions.
type Allocator interface {
	Allocate(size int) (unsafe.Pointer, error)
}

// Arena is a single-buffer bump allocator. Not goroutine-safe.
// Use SafeArena for concurrent access.
type Arena struct {
	buf    []byte
	offset uintptr // bytes committed, including alignment padding

	allocs   int
	failures int
}

// NewArena creates an Arena backed by a single buffer of capacity bytes.
// If capacity <= 0, DefaultCapacity is used.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{buf: make([]byte, capacity)}
}

// Allocate reserves size bytes aligned to MaxAlign and returns a pointer to
// the start of the region. The region's contents are whatever the buffer
// held (zero for a region that was never handed out before).
func (a *Arena) Allocate(size int) (unsafe.Pointer, error) {
	a.panicIfReleased()
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	off, ok := a.fit(uintptr(size))
	if !ok {
		a.failures++
		return nil, ErrExhausted
	}
	a.offset = off + uintptr(size)
	a.allocs++
	return unsafe.Pointer(&a.buf[off]), nil
}

// AllocBytes returns a []byte slice pointing into the arena's buffer.
// The caller must ensure the arena remains reachable while the returned slice is in use.
// Returns nil, nil if n <= 0.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	p, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(p), n), nil
}

// Fits reports whether a request of size bytes would currently succeed.
func (a *Arena) Fits(size int) bool {
	a.panicIfReleased()
	if size <= 0 {
		return false
	}
	_, ok := a.fit(uintptr(size))
	return ok
}

// Release drops the buffer and makes the arena unusable.
// Any subsequent allocation will panic.
func (a *Arena) Release() {
	a.buf = nil
	a.offset = 0
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.buf == nil
}

// fit returns the aligned buffer offset for a region of size bytes, and
// whether the region ends within capacity.
func (a *Arena) fit(size uintptr) (uintptr, bool) {
	off := a.offset + padding(a.base()+a.offset)
	if off > uintptr(len(a.buf)) || size > uintptr(len(a.buf))-off {
		return 0, false
	}
	return off, true
}

// base returns the absolute address of the buffer start.
func (a *Arena) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.buf == nil {
		panic("arena: use after Release()")
	}
}

// padding returns the bytes needed to round addr up to MaxAlign.
func padding(addr uintptr) uintptr {
	return alignUp(addr) - addr
}

// alignUp rounds off up to MaxAlign.
func alignUp(off uintptr) uintptr {
	const mask = MaxAlign - 1
	return (off + mask) &^ mask
}
