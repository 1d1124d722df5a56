package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/handlealloc/registry"
)

func allocate(ctx context.Context, w http.ResponseWriter) (*registry.HandleInfo, error) {

	pool, err := lookupPool(ctx)
	if err != nil {
		return nil, err
	}

	info, err := pool.Allocate()
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return info, nil
}
