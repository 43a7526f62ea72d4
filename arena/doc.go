// Package arena implements a fixed-capacity bump allocator (memory arena).
//
// # Overview
//
// An arena reserves one buffer when it is created and hands out portions
// of it on demand by advancing a cursor. Nothing is ever given back
// individually; the whole buffer goes away in one step with Release.
// The capacity never grows, so the arena doubles as a hard memory budget:
// once it is full every further request fails with ErrExhausted.
//
// # Basic Usage
//
//	a := arena.NewArena(0) // DefaultCapacity (10 MiB)
//	defer a.Release()
//
//	// Allocate raw bytes
//	buf, err := a.AllocBytes(1024)
//
//	// Place a typed value (zeroed)
//	p, err := arena.New[MyStruct](a)
//	if errors.Is(err, arena.ErrExhausted) {
//		// out of room; nothing was reserved
//	}
//
// # Alignment
//
// Every region starts on a multiple of MaxAlign, the largest alignment
// of any Go scalar type, so any pointer-free value can be placed there.
// The padding is computed against the absolute address, not the offset.
//
// # Thread Safety
//
// Arena is not thread-safe. SafeArena wraps it with a mutex:
//
//	s := arena.NewSafeArena(1 << 20)
//	p, err := arena.New[int64](s)
//
// # Important Notes
//
//   - Allocated memory is only valid while the arena exists
//   - Values containing Go pointers must not be placed in an arena
//   - A failed request never advances the cursor
//   - Allocating after Release panics
//
// # Metrics
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Allocations: %d (failed %d)\n", m.Allocations, m.Failures)
package arena
