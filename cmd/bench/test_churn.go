package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// TestChurn hammers one slot with duplicate/release pairs. At the end the
// root handle must be the only reference left.
func TestChurn(c Config) {

	pool := CreatePool(c.Base)
	url := c.Base + "/v1/pools/" + pool

	root := &handleInfo{}
	err := Post(url+":allocate", nil, root)
	if err != nil {
		fmt.Println("ERROR: allocate:", err.Error())
		os.Exit(3)
	}

	items := c.N

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for atomic.AddInt64(&items, -1) >= 0 {
			h := &handleInfo{}
			err := Post(url+":duplicate", JSON{"ticket": root.Ticket}, h)
			if err != nil {
				fmt.Println("ERROR: duplicate:", err.Error())
				os.Exit(3)
			}
			err = Post(url+":release", JSON{"ticket": h.Ticket}, nil)
			if err != nil {
				fmt.Println("ERROR: release:", err.Error())
				os.Exit(4)
			}
		}
	})

	Report("churn", c.N, time.Since(t0))

	counts := struct {
		RefCounts []int `json:"ref_counts"`
	}{}
	err = Post(url+":refCounts", nil, &counts)
	if err != nil {
		fmt.Println("ERROR: refCounts:", err.Error())
		os.Exit(5)
	}
	if len(counts.RefCounts) <= root.Index || counts.RefCounts[root.Index] != 1 {
		fmt.Println("ERROR: unexpected ref counts:", counts.RefCounts)
		os.Exit(6)
	}
}
