package allocator

import (
	"fmt"
)

// Handle is one live copy of a reference to a slot. Copies are made with
// Duplicate and must be disposed with Release, the slot is reclaimed when the
// last copy goes away.
//
// Copying the Handle struct itself does not count as a reference, always pass
// *Handle around.
type Handle struct {
	allocator *HandleAllocator
	index     int
	released  bool
}

func (h *Handle) Index() int {
	return h.index
}

func (h *Handle) Allocator() *HandleAllocator {
	return h.allocator
}

func (h *Handle) Released() bool {
	return h.released
}

// Duplicate returns a new copy referencing the same slot.
func (h *Handle) Duplicate() (*Handle, error) {
	if h.released {
		return nil, ErrReleased
	}
	if h.allocator.closed {
		return nil, ErrClosed
	}

	h.allocator.retain(h.index)
	return &Handle{allocator: h.allocator, index: h.index}, nil
}

// Release disposes this copy. Releasing the same copy twice does nothing.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true

	if h.allocator.closed {
		return
	}
	h.allocator.release(h.index)
}

// Rebind points h to the slot referenced by other. The new slot is acquired
// before the old one is released so rebinding to the same slot never frees it.
func (h *Handle) Rebind(other *Handle) error {
	if h.released || other.released {
		return ErrReleased
	}
	if h == other {
		return nil
	}
	if other.allocator.closed {
		return ErrClosed
	}

	other.allocator.retain(other.index)
	if !h.allocator.closed {
		h.allocator.release(h.index)
	}

	h.allocator = other.allocator
	h.index = other.index
	return nil
}

// Equal reports whether both handles reference the same slot of the same
// allocator. Handles of different allocators are never equal.
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.allocator == other.allocator && h.index == other.index
}

// Compare orders handles by slot index. There is no order between handles of
// different allocators, nor with a nil handle.
func (h *Handle) Compare(other *Handle) (int, error) {
	if h == nil || other == nil {
		return 0, ErrNilHandle
	}
	if h.allocator != other.allocator {
		return 0, ErrCrossAllocator
	}

	switch {
	case h.index < other.index:
		return -1, nil
	case h.index > other.index:
		return 1, nil
	}
	return 0, nil
}

// Less is Compare as a less function, it panics with the Compare error.
func Less(a, b *Handle) bool {
	c, err := a.Compare(b)
	if err != nil {
		panic(err)
	}
	return c < 0
}

func (h *Handle) String() string {
	return fmt.Sprintf("handle(%d)", h.index)
}
