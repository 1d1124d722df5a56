package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// TestAllocate runs N allocate/release round trips. Released slots are
// recycled, so the table should end with about Workers slots.
func TestAllocate(c Config) {

	pool := CreatePool(c.Base)
	url := c.Base + "/v1/pools/" + pool

	items := c.N

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for atomic.AddInt64(&items, -1) >= 0 {
			h := &handleInfo{}
			err := Post(url+":allocate", nil, h)
			if err != nil {
				fmt.Println("ERROR: allocate:", err.Error())
				os.Exit(3)
			}
			err = Post(url+":release", JSON{"ticket": h.Ticket}, nil)
			if err != nil {
				fmt.Println("ERROR: release:", err.Error())
				os.Exit(4)
			}
		}
	})

	Report("allocate", c.N, time.Since(t0))

	stats := JSON{}
	if err := Get(url, &stats); err != nil {
		fmt.Println("ERROR: stats:", err.Error())
		os.Exit(5)
	}
	fmt.Println("slots:", stats["slots"], "live:", stats["live"])
}
