package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/handlealloc/registry"
)

func duplicate(ctx context.Context, w http.ResponseWriter, input *ticketRequest) (*registry.HandleInfo, error) {

	pool, err := lookupPool(ctx)
	if err != nil {
		return nil, err
	}

	info, err := pool.Duplicate(input.Ticket)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return info, nil
}
