package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | ALLOCATE | CHURN"`
	Base    string `usage:"base URL, empty starts a local server"`
	N       int64  `usage:"number of operations"`
	Workers int    `usage:"number of workers"`
}

func main() {

	c := Config{
		Test:    "all",
		Base:    "",
		N:       100_000,
		Workers: 16,
	}
	goconfig.Read(&c)

	if c.Base == "" {
		start, stop := CreateServer(&c)
		defer stop()
		go start()
	}

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestAllocate(c)
		TestChurn(c)
	case "ALLOCATE":
		TestAllocate(c)
	case "CHURN":
		TestChurn(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

	fmt.Println("done")
}
