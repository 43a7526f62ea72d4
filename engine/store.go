package engine

import (
	"fmt"

	"github.com/pavanmanishd/polygeo/shape"
)

// Handle refers to a constructed shape. A handle stays valid until the
// shape is destroyed; after that every lookup through it fails, even if
// its slot has been reused. The zero Handle is never valid.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.generation)
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

type slot struct {
	shape      shape.Shape // points into the arena; nil once retired
	generation uint32
	committed  bool
}

// store maps handles to shapes. Slots are reused, the arena storage
// behind a retired shape is not.
type store struct {
	slots []slot
	free  []uint32
	live  int
}

func newStore() *store {
	// slot 0 is reserved so that the zero Handle never resolves
	return &store{slots: make([]slot, 1)}
}

func (s *store) insert(sh shape.Shape) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{generation: 1})
	}
	s.slots[idx].shape = sh
	s.live++
	return Handle{index: idx, generation: s.slots[idx].generation}
}

func (s *store) get(h Handle) (shape.Shape, error) {
	if h.index == 0 || int(h.index) >= len(s.slots) {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	sl := &s.slots[h.index]
	if sl.generation != h.generation || sl.shape == nil {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	return sl.shape, nil
}

// commit marks h as entered into the history. A handle can be
// committed once in its lifetime.
func (s *store) commit(h Handle) error {
	if _, err := s.get(h); err != nil {
		return err
	}
	sl := &s.slots[h.index]
	if sl.committed {
		return fmt.Errorf("handle %v committed twice", h)
	}
	sl.committed = true
	return nil
}

// handles returns every live handle in slot order.
func (s *store) handles() []Handle {
	hs := make([]Handle, 0, s.live)
	for i, sl := range s.slots {
		if sl.shape != nil {
			hs = append(hs, Handle{index: uint32(i), generation: sl.generation})
		}
	}
	return hs
}

// retire invalidates h and returns the shape it referred to.
func (s *store) retire(h Handle) (shape.Shape, error) {
	sh, err := s.get(h)
	if err != nil {
		return nil, err
	}
	sl := &s.slots[h.index]
	sl.shape = nil
	sl.committed = false
	sl.generation++
	s.free = append(s.free, h.index)
	s.live--
	return sh, nil
}
