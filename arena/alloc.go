package arena

import "unsafe"

// New returns a pointer to a zeroed T stored inside the arena.
// T must not contain Go pointers: the garbage collector does not scan
// arena memory. The returned pointer is valid as long as the arena hasn't
// been released.
func New[T any](a Allocator) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T), nil
	}
	p, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	// Zero the memory
	clear(unsafe.Slice((*byte)(p), size))
	return (*T)(p), nil
}

// SizeOf returns the number of bytes New[T] reserves, excluding alignment
// padding.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
