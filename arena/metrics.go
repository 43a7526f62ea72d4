package arena

// SizeInUse returns the number of bytes committed in the arena.
// This includes internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	return int(a.offset)
}

// Capacity returns the fixed size of the arena's buffer in bytes.
// A released arena has zero capacity.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Remaining returns the bytes not yet committed. A request may still fail
// with less than this amount free once alignment padding is added.
func (a *Arena) Remaining() int {
	return a.Capacity() - a.SizeInUse()
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Remaining:   a.Remaining(),
		Allocations: a.allocs,
		Failures:    a.failures,
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes committed, padding included
	Capacity    int     // Total capacity in bytes
	Remaining   int     // Bytes not yet committed
	Allocations int     // Successful allocations
	Failures    int     // Requests rejected with ErrExhausted
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
