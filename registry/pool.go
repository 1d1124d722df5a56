package registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fulldump/handlealloc/allocator"
)

var ErrTicketNotFound = errors.New("ticket not found")

// Ticket identifies one handle copy held on behalf of a remote caller.
type Ticket string

// Pool is a named allocator guarded by a single lock. Every handle copy it
// hands out is kept under a ticket until it is released.
type Pool struct {
	Name string

	mutex     sync.Mutex
	allocator *allocator.HandleAllocator
	handles   map[Ticket]*allocator.Handle
}

type PoolStats struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Slots   int    `json:"slots"`
	Live    int    `json:"live"`
	Free    int    `json:"free"`
	Handles int    `json:"handles"`
}

type HandleInfo struct {
	Ticket   Ticket `json:"ticket"`
	Index    int    `json:"index"`
	RefCount int    `json:"ref_count"`
}

func NewPool(name string) *Pool {
	return &Pool{
		Name:      name,
		allocator: allocator.New(),
		handles:   map[Ticket]*allocator.Handle{},
	}
}

func (p *Pool) Allocate() (*HandleInfo, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	h, err := p.allocator.Allocate()
	if err != nil {
		return nil, err
	}

	return p.keep(h), nil
}

func (p *Pool) Duplicate(ticket Ticket) (*HandleInfo, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.allocator.Closed() {
		return nil, allocator.ErrClosed
	}

	h, exists := p.handles[ticket]
	if !exists {
		return nil, ErrTicketNotFound
	}

	d, err := h.Duplicate()
	if err != nil {
		return nil, err
	}

	return p.keep(d), nil
}

// Release disposes the copy behind ticket. The returned info carries the ref
// count left on the slot.
func (p *Pool) Release(ticket Ticket) (*HandleInfo, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.allocator.Closed() {
		return nil, allocator.ErrClosed
	}

	h, exists := p.handles[ticket]
	if !exists {
		return nil, ErrTicketNotFound
	}

	delete(p.handles, ticket)
	h.Release()

	refCount, _ := p.allocator.RefCount(h.Index())
	return &HandleInfo{
		Ticket:   ticket,
		Index:    h.Index(),
		RefCount: refCount,
	}, nil
}

func (p *Pool) keep(h *allocator.Handle) *HandleInfo {
	ticket := Ticket(uuid.NewString())
	p.handles[ticket] = h

	refCount, _ := p.allocator.RefCount(h.Index())
	return &HandleInfo{
		Ticket:   ticket,
		Index:    h.Index(),
		RefCount: refCount,
	}
}

func (p *Pool) RefCounts() []int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.allocator.RefCounts()
}

func (p *Pool) FreeIndices() []int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.allocator.FreeIndices()
}

// Snapshot returns the ref count table and the free list read under the same
// lock, so every free index has a zero count.
func (p *Pool) Snapshot() (refCounts, freeIndices []int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.allocator.RefCounts(), p.allocator.FreeIndices()
}

func (p *Pool) Stats() PoolStats {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return PoolStats{
		Name:    p.Name,
		ID:      p.allocator.ID().String(),
		Slots:   p.allocator.Len(),
		Live:    p.allocator.Live(),
		Free:    len(p.allocator.FreeIndices()),
		Handles: len(p.handles),
	}
}

// Close forgets every ticket and closes the allocator.
func (p *Pool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.handles = map[Ticket]*allocator.Handle{}
	return p.allocator.Close()
}
