package allocator

import (
	"errors"
	"math"
	"slices"

	"github.com/google/uuid"
)

// MaxSlots is the size of the index space, the slot table never grows past it.
const MaxSlots = math.MaxInt32

var (
	ErrExhausted      = errors.New("handle index space exhausted")
	ErrReleased       = errors.New("handle already released")
	ErrClosed         = errors.New("allocator closed")
	ErrCrossAllocator = errors.New("handles belong to different allocators")
	ErrNilHandle      = errors.New("nil handle")
)

// HandleAllocator hands out reference counted handles backed by a dense slot
// table. A slot goes back to the free list as soon as its last handle is
// released.
//
// Caller is responsible for locking.
type HandleAllocator struct {
	id          uuid.UUID
	refCounts   []int
	freeIndices []int // free-list (stack)
	maxSlots    int
	closed      bool
}

func New() *HandleAllocator {
	return &HandleAllocator{
		id:          uuid.New(),
		refCounts:   make([]int, 0),
		freeIndices: make([]int, 0),
		maxSlots:    MaxSlots,
	}
}

// Allocate returns a handle to a slot with ref count 1. The most recently
// freed slot is reused first, otherwise the table grows by one.
func (a *HandleAllocator) Allocate() (*Handle, error) {
	if a.closed {
		return nil, ErrClosed
	}

	var index int

	if n := len(a.freeIndices); n > 0 {
		// reuse slot
		index = a.freeIndices[n-1]
		a.freeIndices = a.freeIndices[:n-1]
	} else {
		if len(a.refCounts) >= a.maxSlots {
			return nil, ErrExhausted
		}
		// grow table
		index = len(a.refCounts)
		a.refCounts = append(a.refCounts, 0)
	}

	a.retain(index)
	return &Handle{allocator: a, index: index}, nil
}

func (a *HandleAllocator) retain(index int) {
	a.refCounts[index]++
}

func (a *HandleAllocator) release(index int) {
	a.refCounts[index]--
	if a.refCounts[index] == 0 {
		a.freeIndices = append(a.freeIndices, index)
	}
}

// ID identifies this allocator, handles of different allocators never compare
// equal.
func (a *HandleAllocator) ID() uuid.UUID {
	return a.id
}

// RefCounts returns a copy of the ref count table, indexed by slot.
func (a *HandleAllocator) RefCounts() []int {
	return slices.Clone(a.refCounts)
}

func (a *HandleAllocator) RefCount(index int) (int, bool) {
	if index < 0 || index >= len(a.refCounts) {
		return 0, false
	}
	return a.refCounts[index], true
}

// FreeIndices returns a copy of the free list in release order, the last
// element is the next index to be reused.
func (a *HandleAllocator) FreeIndices() []int {
	return slices.Clone(a.freeIndices)
}

// Len is the length of the slot table. It never decreases.
func (a *HandleAllocator) Len() int {
	return len(a.refCounts)
}

// Live is the number of slots with at least one handle.
func (a *HandleAllocator) Live() int {
	return len(a.refCounts) - len(a.freeIndices)
}

// Close stops the allocator. Handles that outlive it fail with ErrClosed and
// releasing them is a no-op. Tables are kept for inspection.
func (a *HandleAllocator) Close() error {
	a.closed = true
	return nil
}

func (a *HandleAllocator) Closed() bool {
	return a.closed
}
