package allocator

import (
	"github.com/google/btree"
)

// HandleMap is an ordered map keyed by handles of a single allocator. Keys are
// stored as duplicates, a slot used as key stays alive until it is deleted
// from the map.
type HandleMap[V any] struct {
	allocator *HandleAllocator
	tree      *btree.BTreeG[*mapEntry[V]]
}

type mapEntry[V any] struct {
	key   *Handle
	value V
}

func NewHandleMap[V any](a *HandleAllocator) *HandleMap[V] {
	return &HandleMap[V]{
		allocator: a,
		tree: btree.NewG(32, func(x, y *mapEntry[V]) bool {
			return x.key.index < y.key.index
		}),
	}
}

func (m *HandleMap[V]) Set(h *Handle, value V) error {
	if h.released {
		return ErrReleased
	}
	if h.allocator != m.allocator {
		return ErrCrossAllocator
	}

	if entry, found := m.tree.Get(&mapEntry[V]{key: h}); found {
		entry.value = value
		return nil
	}

	key, err := h.Duplicate()
	if err != nil {
		return err
	}

	m.tree.ReplaceOrInsert(&mapEntry[V]{key: key, value: value})
	return nil
}

// Get returns the value stored for h. Released handles find nothing.
func (m *HandleMap[V]) Get(h *Handle) (V, bool) {
	var zero V
	if h.released || h.allocator != m.allocator {
		return zero, false
	}

	entry, found := m.tree.Get(&mapEntry[V]{key: h})
	if !found {
		return zero, false
	}
	return entry.value, true
}

// Delete removes the key and releases the copy held by the map. h may already
// be released, the map's own copy keeps the slot alive until then.
func (m *HandleMap[V]) Delete(h *Handle) bool {
	if h.allocator != m.allocator {
		return false
	}

	entry, found := m.tree.Delete(&mapEntry[V]{key: h})
	if !found {
		return false
	}
	entry.key.Release()
	return true
}

func (m *HandleMap[V]) Len() int {
	return m.tree.Len()
}

// Ascend calls f in slot index order until it returns false.
func (m *HandleMap[V]) Ascend(f func(index int, value V) bool) {
	m.tree.Ascend(func(entry *mapEntry[V]) bool {
		return f(entry.key.index, entry.value)
	})
}

func (m *HandleMap[V]) Clear() {
	m.tree.Ascend(func(entry *mapEntry[V]) bool {
		entry.key.Release()
		return true
	})
	m.tree.Clear(false)
}
