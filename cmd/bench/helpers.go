package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/handlealloc/bootstrap"
	"github.com/fulldump/handlealloc/configuration"
)

type JSON = map[string]any

type handleInfo struct {
	Ticket   string `json:"ticket"`
	Index    int    `json:"index"`
	RefCount int    `json:"ref_count"`
}

var client = &http.Client{
	Transport: &http.Transport{
		MaxConnsPerHost:     1024,
		MaxIdleConnsPerHost: 1024,
		MaxIdleConns:        1024,
	},
}

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

// Post sends body as JSON and decodes the response into out when out is not nil.
func Post(url string, body any, out any) error {

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, b)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func Get(url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func CreatePool(base string) string {

	name := "pool-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	err := Post(base+"/v1/pools", JSON{"name": name}, nil)
	if err != nil {
		panic(err)
	}

	return name
}

func CreateServer(c *Config) (start, stop func()) {

	conf := configuration.Default()
	conf.HttpAddr = "127.0.0.1:18080"
	conf.EnableCompression = false
	c.Base = "http://" + conf.HttpAddr

	start, stop, err := bootstrap.Bootstrap(conf)
	if err != nil {
		panic(err)
	}

	return start, stop
}

func Report(name string, n int64, took time.Duration) {
	fmt.Println("test:", name)
	fmt.Println("sent:", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f ops/sec\n", float64(n)/took.Seconds())
}
