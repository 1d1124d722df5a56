package apipoolv1

import (
	"context"
	"net/http"

	json2 "github.com/go-json-experiment/json"
)

type refCountsResponse struct {
	RefCounts   []int `json:"ref_counts"`
	FreeIndices []int `json:"free_indices"`
}

func refCounts(ctx context.Context, w http.ResponseWriter) error {

	pool, err := lookupPool(ctx)
	if err != nil {
		return err
	}

	refCounts, freeIndices := pool.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	return json2.MarshalWrite(w, refCountsResponse{
		RefCounts:   refCounts,
		FreeIndices: freeIndices,
	})
}
