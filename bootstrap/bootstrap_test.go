package bootstrap

import (
	"testing"
	"time"

	"github.com/fulldump/biff"

	"github.com/fulldump/handlealloc/configuration"
)

func TestBootstrap(t *testing.T) {

	c := configuration.Default()
	c.HttpAddr = "127.0.0.1:0"
	c.EnableCompression = false

	start, stop, err := Bootstrap(c)
	biff.AssertNil(err)

	done := make(chan struct{})
	go func() {
		start()
		close(done)
	}()

	stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("start did not return after stop")
	}
}

func TestBootstrap_BadAddress(t *testing.T) {

	c := configuration.Default()
	c.HttpAddr = "invalid-address"

	_, _, err := Bootstrap(c)
	biff.AssertNotNil(err)
}
