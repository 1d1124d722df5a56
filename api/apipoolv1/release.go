package apipoolv1

import (
	"context"

	"github.com/fulldump/handlealloc/registry"
)

func release(ctx context.Context, input *ticketRequest) (*registry.HandleInfo, error) {

	pool, err := lookupPool(ctx)
	if err != nil {
		return nil, err
	}

	return pool.Release(input.Ticket)
}
