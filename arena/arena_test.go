package arena

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected int
	}{
		{"default capacity", 0, DefaultCapacity},
		{"negative capacity", -1, DefaultCapacity},
		{"custom capacity", 8192, 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(tt.capacity)
			if a.Capacity() != tt.expected {
				t.Errorf("NewArena(%d) capacity = %d, want %d", tt.capacity, a.Capacity(), tt.expected)
			}
			if a.offset != 0 {
				t.Errorf("NewArena(%d) offset = %d, want 0", tt.capacity, a.offset)
			}
		})
	}
}

func TestArenaAllocBytes(t *testing.T) {
	a := NewArena(1024)

	// Test normal allocation
	b1, err := a.AllocBytes(100)
	if err != nil {
		t.Fatalf("AllocBytes(100) error = %v", err)
	}
	if len(b1) != 100 {
		t.Errorf("AllocBytes(100) length = %d, want 100", len(b1))
	}

	// Test zero allocation
	b2, err := a.AllocBytes(0)
	if b2 != nil || err != nil {
		t.Errorf("AllocBytes(0) = %v, %v, want nil, nil", b2, err)
	}

	// Test negative allocation
	b3, err := a.AllocBytes(-1)
	if b3 != nil || err != nil {
		t.Errorf("AllocBytes(-1) = %v, %v, want nil, nil", b3, err)
	}

	// Test allocation larger than the whole arena
	b4, err := a.AllocBytes(2000)
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("AllocBytes(2000) error = %v, want ErrExhausted", err)
	}
	if b4 != nil {
		t.Errorf("AllocBytes(2000) = %d bytes, want nil", len(b4))
	}
}

func TestArenaAllocateInvalidSize(t *testing.T) {
	a := NewArena(64)
	for _, size := range []int{0, -1, -1 << 20} {
		if _, err := a.Allocate(size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Allocate(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after invalid requests = %d, want 0", a.SizeInUse())
	}
}

func TestArenaExhaustedLeavesCursor(t *testing.T) {
	a := NewArena(64)
	if _, err := a.Allocate(40); err != nil {
		t.Fatalf("Allocate(40) error = %v", err)
	}
	before := a.SizeInUse()

	for _, size := range []int{32, 64, 1 << 30} {
		if _, err := a.Allocate(size); !errors.Is(err, ErrExhausted) {
			t.Errorf("Allocate(%d) error = %v, want ErrExhausted", size, err)
		}
		if a.SizeInUse() != before {
			t.Errorf("Allocate(%d) moved cursor from %d to %d", size, before, a.SizeInUse())
		}
	}

	// What is left is still usable.
	if _, err := a.Allocate(24); err != nil {
		t.Errorf("Allocate(24) after failures error = %v", err)
	}
	if a.SizeInUse() != 64 {
		t.Errorf("SizeInUse = %d, want 64", a.SizeInUse())
	}
}

func TestArenaRegionsDoNotOverlap(t *testing.T) {
	a := NewArena(4096)
	sizes := []int{1, 3, 8, 13, 24, 7, 64, 5, 2, 33}

	type region struct{ start, end uintptr }
	var regions []region
	for i := 0; ; i++ {
		size := sizes[i%len(sizes)]
		p, err := a.Allocate(size)
		if errors.Is(err, ErrExhausted) {
			break
		}
		if err != nil {
			t.Fatalf("Allocate(%d) error = %v", size, err)
		}
		start := uintptr(p)
		if start%MaxAlign != 0 {
			t.Errorf("region %d start %x not aligned to %d", i, start, MaxAlign)
		}
		if n := len(regions); n > 0 && start < regions[n-1].end {
			t.Errorf("region %d start %x before previous end %x", i, start, regions[n-1].end)
		}
		regions = append(regions, region{start, start + uintptr(size)})
	}
	if len(regions) == 0 {
		t.Fatal("no regions allocated")
	}
	if last := regions[len(regions)-1]; last.end > a.base()+uintptr(a.Capacity()) {
		t.Errorf("last region ends at %x, beyond buffer end %x", last.end, a.base()+uintptr(a.Capacity()))
	}
}

func TestArenaFits(t *testing.T) {
	a := NewArena(32)
	if !a.Fits(32) {
		t.Error("Fits(32) on empty arena = false")
	}
	if a.Fits(33) || a.Fits(0) {
		t.Error("Fits accepted an impossible size")
	}
	if _, err := a.Allocate(1); err != nil {
		t.Fatal(err)
	}
	// One byte used, the next region starts at MaxAlign.
	if a.Fits(32 - int(MaxAlign) + 1) {
		t.Error("Fits ignored alignment padding")
	}
	if !a.Fits(32 - int(MaxAlign)) {
		t.Error("Fits rejected the aligned remainder")
	}
}

func TestArenaRelease(t *testing.T) {
	a := NewArena(1024)
	if _, err := a.AllocBytes(100); err != nil {
		t.Fatal(err)
	}

	a.Release()

	if !a.Released() {
		t.Error("Expected Released() after Release()")
	}
	if a.Capacity() != 0 {
		t.Errorf("Capacity after Release() = %d, want 0", a.Capacity())
	}

	// Test panic on use after release
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on use after Release()")
		}
	}()
	a.AllocBytes(100)
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		input    uintptr
		expected uintptr
	}{
		{0, 0},
		{1, MaxAlign},
		{MaxAlign, MaxAlign},
		{MaxAlign + 1, MaxAlign * 2},
	}

	for _, tt := range tests {
		result := alignUp(tt.input)
		if result != tt.expected {
			t.Errorf("alignUp(%d) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func TestMaxAlign(t *testing.T) {
	if MaxAlign&(MaxAlign-1) != 0 {
		t.Fatalf("MaxAlign = %d, not a power of two", MaxAlign)
	}
	for name, align := range map[string]uintptr{
		"uint64":     unsafe.Alignof(uint64(0)),
		"float64":    unsafe.Alignof(float64(0)),
		"complex128": unsafe.Alignof(complex128(0)),
		"uintptr":    unsafe.Alignof(uintptr(0)),
		"int":        unsafe.Alignof(int(0)),
	} {
		if MaxAlign%align != 0 {
			t.Errorf("MaxAlign = %d does not satisfy %s alignment %d", MaxAlign, name, align)
		}
	}
}

func BenchmarkArenaAllocBytes(b *testing.B) {
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			a := NewArena(1024 * size)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := a.AllocBytes(size); err != nil {
					// Fixed capacity: start over with a fresh arena
					b.StopTimer()
					a = NewArena(1024 * size)
					b.StartTimer()
				}
			}
		})
	}
}

func BenchmarkArenaVsBuiltin(b *testing.B) {
	b.Run("arena", func(b *testing.B) {
		a := NewArena(1024 * 1024)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := a.AllocBytes(64); err != nil {
				b.StopTimer()
				a = NewArena(1024 * 1024)
				b.StartTimer()
			}
		}
	})

	b.Run("builtin", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = make([]byte, 64)
		}
	})
}
