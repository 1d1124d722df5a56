package registry

import (
	"sync"
	"testing"

	. "github.com/fulldump/biff"
)

func TestPool_Race(t *testing.T) {
	p := NewPool("race")

	workers := 16
	n := 500

	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				h, err := p.Allocate()
				if err != nil {
					t.Error(err)
					return
				}
				d, err := p.Duplicate(h.Ticket)
				if err != nil {
					t.Error(err)
					return
				}
				p.Release(h.Ticket)
				p.Release(d.Ticket)
			}
		}()
	}
	wg.Wait()

	stats := p.Stats()
	AssertEqual(stats.Live, 0)
	AssertEqual(stats.Handles, 0)
	AssertTrue(stats.Slots <= workers)
	for _, refCount := range p.RefCounts() {
		AssertEqual(refCount, 0)
	}
}

func TestPool_SnapshotRace(t *testing.T) {
	p := NewPool("race")

	stop := make(chan struct{})
	wg := &sync.WaitGroup{}
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				h, err := p.Allocate()
				if err != nil {
					t.Error(err)
					return
				}
				p.Release(h.Ticket)
			}
		}()
	}

	torn := 0
	for i := 0; i < 2000; i++ {
		refCounts, freeIndices := p.Snapshot()

		live := 0
		for _, refCount := range refCounts {
			if refCount > 0 {
				live++
			}
		}
		if live+len(freeIndices) != len(refCounts) {
			torn++
			continue
		}
		for _, index := range freeIndices {
			if refCounts[index] != 0 {
				torn++
				break
			}
		}
	}

	close(stop)
	wg.Wait()

	AssertEqual(torn, 0)
}
