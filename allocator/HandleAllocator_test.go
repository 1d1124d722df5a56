package allocator

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/fulldump/biff"
)

func mustAllocate(a *HandleAllocator) *Handle {
	h, err := a.Allocate()
	if err != nil {
		panic(err)
	}
	return h
}

func mustDuplicate(h *Handle) *Handle {
	d, err := h.Duplicate()
	if err != nil {
		panic(err)
	}
	return d
}

func TestHandleAllocator_DuplicateAndReclaim(t *testing.T) {
	a := New()

	h1 := mustAllocate(a)
	AssertEqual(h1.Index(), 0)
	AssertEqual(a.RefCounts(), []int{1})

	h1a := mustDuplicate(h1)
	AssertTrue(h1a.Equal(h1))
	AssertEqual(a.RefCounts()[h1.Index()], 2)

	h1a.Release()
	AssertEqual(a.RefCounts()[h1.Index()], 1)

	h1.Release()
	AssertEqual(a.RefCounts()[0], 0)
	AssertEqual(a.FreeIndices(), []int{0})

	h2 := mustAllocate(a)
	AssertEqual(h2.Index(), 0)
	AssertEqual(a.RefCounts(), []int{1})
	AssertEqual(a.FreeIndices(), []int{})
}

func TestHandleAllocator_ReleaseWithoutDuplicates(t *testing.T) {
	a := New()

	h1 := mustAllocate(a)
	h2 := mustAllocate(a)
	AssertFalse(h1.Equal(h2))

	h1.Release()
	h2.Release()

	AssertEqual(a.Len(), 2)
	AssertEqual(a.RefCounts(), []int{0, 0})
	AssertEqual(a.FreeIndices(), []int{0, 1})
	AssertEqual(a.Live(), 0)
}

func TestHandleAllocator_ReuseIsLIFO(t *testing.T) {
	a := New()

	{
		h1 := mustAllocate(a)
		h1a := mustDuplicate(h1)
		h2 := mustAllocate(a)

		// same release order as leaving nested scopes
		h1a.Release()
		h2.Release()
		h1.Release()
	}
	AssertEqual(a.FreeIndices(), []int{1, 0})

	h1 := mustAllocate(a)
	AssertEqual(h1.Index(), 0)
	h2 := mustAllocate(a)
	AssertEqual(h2.Index(), 1)

	AssertEqual(a.Len(), 2)
}

func TestHandleAllocator_RefCountMatchesLiveCopies(t *testing.T) {
	a := New()

	h := mustAllocate(a)
	copies := []*Handle{h}
	for i := 0; i < 9; i++ {
		copies = append(copies, mustDuplicate(copies[i]))
	}

	n, ok := a.RefCount(h.Index())
	AssertTrue(ok)
	AssertEqual(n, 10)

	for i, c := range copies[:9] {
		c.Release()
		n, _ := a.RefCount(h.Index())
		AssertEqual(n, 9-i)
	}
	AssertEqual(a.FreeIndices(), []int{})

	copies[9].Release()
	AssertEqual(a.FreeIndices(), []int{h.Index()})
}

func TestHandleAllocator_ReleaseTwiceIsSafe(t *testing.T) {
	a := New()

	h := mustAllocate(a)
	d := mustDuplicate(h)

	d.Release()
	d.Release()
	AssertEqual(a.RefCounts(), []int{1})
	AssertTrue(d.Released())
	AssertFalse(h.Released())

	h.Release()
	h.Release()
	AssertEqual(a.FreeIndices(), []int{0})

	// slot reused once only
	AssertEqual(mustAllocate(a).Index(), 0)
	AssertEqual(mustAllocate(a).Index(), 1)
}

func TestHandleAllocator_DuplicateReleased(t *testing.T) {
	a := New()

	h := mustAllocate(a)
	h.Release()

	d, err := h.Duplicate()
	AssertNil(d)
	AssertTrue(errors.Is(err, ErrReleased))
	AssertEqual(a.RefCounts(), []int{0})
}

func TestHandleAllocator_TableNeverShrinks(t *testing.T) {
	a := New()

	handles := []*Handle{}
	for i := 0; i < 50; i++ {
		handles = append(handles, mustAllocate(a))
	}
	AssertEqual(a.Len(), 50)

	for i := 0; i < 50; i += 2 {
		handles[i].Release()
	}
	AssertEqual(a.Len(), 50)
	AssertEqual(a.Live(), 25)

	for i := 0; i < 25; i++ {
		mustAllocate(a)
	}
	AssertEqual(a.Len(), 50)

	mustAllocate(a)
	AssertEqual(a.Len(), 51)
}

func TestHandleAllocator_RefCountsIsACopy(t *testing.T) {
	a := New()
	mustAllocate(a)

	view := a.RefCounts()
	view[0] = 42

	AssertEqual(a.RefCounts(), []int{1})
}

func TestHandleAllocator_RefCountOutOfRange(t *testing.T) {
	a := New()

	_, ok := a.RefCount(0)
	AssertFalse(ok)
	_, ok = a.RefCount(-1)
	AssertFalse(ok)
}

func TestHandleAllocator_Exhausted(t *testing.T) {
	a := New()
	a.maxSlots = 2

	h0 := mustAllocate(a)
	mustAllocate(a)

	h, err := a.Allocate()
	AssertNil(h)
	AssertTrue(errors.Is(err, ErrExhausted))
	AssertEqual(a.Len(), 2)

	// free slots are still usable
	h0.Release()
	h, err = a.Allocate()
	AssertNil(err)
	AssertEqual(h.Index(), 0)
}

func TestHandleAllocator_Closed(t *testing.T) {
	a := New()

	h := mustAllocate(a)
	d := mustDuplicate(h)

	AssertNil(a.Close())
	AssertTrue(a.Closed())

	_, err := a.Allocate()
	AssertTrue(errors.Is(err, ErrClosed))

	_, err = h.Duplicate()
	AssertTrue(errors.Is(err, ErrClosed))

	d.Release()
	h.Release()
	AssertEqual(a.RefCounts(), []int{2})
	AssertEqual(a.FreeIndices(), []int{})
}

func TestHandleAllocator_DistinctIDs(t *testing.T) {
	AssertNotEqual(New().ID(), New().ID())
}

func TestHandle_CrossAllocator(t *testing.T) {
	a := New()
	b := New()

	ha := mustAllocate(a)
	hb := mustAllocate(b)

	AssertEqual(ha.Index(), hb.Index())
	AssertFalse(ha.Equal(hb))

	_, err := ha.Compare(hb)
	AssertTrue(errors.Is(err, ErrCrossAllocator))

	var recovered interface{}
	func() {
		defer func() {
			recovered = recover()
		}()
		Less(ha, hb)
	}()
	AssertEqual(recovered, ErrCrossAllocator)
}

func TestHandle_Compare(t *testing.T) {
	a := New()

	h0 := mustAllocate(a)
	h1 := mustAllocate(a)

	c, err := h0.Compare(h1)
	AssertNil(err)
	AssertEqual(c, -1)

	c, _ = h1.Compare(h0)
	AssertEqual(c, 1)

	c, _ = h0.Compare(mustDuplicate(h0))
	AssertEqual(c, 0)

	AssertTrue(Less(h0, h1))
	AssertFalse(Less(h1, h0))
	AssertFalse(Less(h0, h0))
}

func TestHandle_EqualNil(t *testing.T) {
	var n *Handle
	h := mustAllocate(New())

	AssertTrue(n.Equal(nil))
	AssertFalse(h.Equal(nil))
}

func TestHandle_Rebind(t *testing.T) {
	a := New()

	h0 := mustAllocate(a)
	h1 := mustAllocate(a)
	r := mustDuplicate(h0)
	AssertEqual(a.RefCounts(), []int{2, 1})

	AssertNil(r.Rebind(h1))
	AssertTrue(r.Equal(h1))
	AssertEqual(a.RefCounts(), []int{1, 2})

	// rebinding to the slot it already holds keeps the count
	AssertNil(r.Rebind(h1))
	AssertEqual(a.RefCounts(), []int{1, 2})

	AssertNil(r.Rebind(r))
	AssertEqual(a.RefCounts(), []int{1, 2})

	// last reference of slot 0 moves away
	AssertNil(h0.Rebind(h1))
	AssertEqual(a.RefCounts(), []int{0, 3})
	AssertEqual(a.FreeIndices(), []int{0})
}

func TestHandle_RebindAcrossAllocators(t *testing.T) {
	a := New()
	b := New()

	ha := mustAllocate(a)
	hb := mustAllocate(b)

	AssertNil(ha.Rebind(hb))
	AssertTrue(ha.Allocator() == b)
	AssertEqual(a.RefCounts(), []int{0})
	AssertEqual(b.RefCounts(), []int{2})
}

func TestHandle_RebindReleased(t *testing.T) {
	a := New()

	h0 := mustAllocate(a)
	h1 := mustAllocate(a)
	h1.Release()

	AssertTrue(errors.Is(h0.Rebind(h1), ErrReleased))
	AssertTrue(errors.Is(h1.Rebind(h0), ErrReleased))
	AssertEqual(a.RefCounts(), []int{1, 0})
}

func TestHandle_String(t *testing.T) {
	a := New()
	mustAllocate(a)
	AssertEqual(mustAllocate(a).String(), "handle(1)")
}

// BenchmarkHandleAllocator_Mixed prefills the table and then runs a random
// mix of duplicate, release and allocate operations.
func BenchmarkHandleAllocator_Mixed(b *testing.B) {
	const (
		N            = 100_000
		duplicatePct = 40
		releasePct   = 40
	)

	a := New()
	handles := make([]*Handle, N)
	for i := range handles {
		handles[i] = mustAllocate(a)
	}

	r := rand.New(rand.NewSource(1))
	ops := make([]uint8, b.N)
	picks := make([]int, b.N)
	for i := 0; i < b.N; i++ {
		ops[i] = uint8(r.Intn(100))
		picks[i] = r.Intn(N)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		h := handles[picks[i]]

		switch {
		case ops[i] < duplicatePct:
			if d, err := h.Duplicate(); err == nil {
				h.Release()
				handles[picks[i]] = d
			}

		case ops[i] < duplicatePct+releasePct:
			h.Release()

		default:
			if h.Released() {
				handles[picks[i]], _ = a.Allocate()
			}
		}
	}
}

func TestHandle_CompareNil(t *testing.T) {
	var n *Handle
	h := mustAllocate(New())

	_, err := h.Compare(nil)
	AssertTrue(errors.Is(err, ErrNilHandle))

	_, err = n.Compare(h)
	AssertTrue(errors.Is(err, ErrNilHandle))

	var recovered interface{}
	func() {
		defer func() {
			recovered = recover()
		}()
		Less(h, nil)
	}()
	AssertEqual(recovered, ErrNilHandle)
}
