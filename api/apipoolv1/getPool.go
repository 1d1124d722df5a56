package apipoolv1

import (
	"context"
)

func getPool(ctx context.Context) (*PoolResponse, error) {

	pool, err := lookupPool(ctx)
	if err != nil {
		return nil, err
	}

	return newPoolResponse(pool), nil
}
