package apipoolv1

import (
	"context"
)

func listPools(ctx context.Context) ([]*PoolResponse, error) {

	pools, err := GetServicer(ctx).ListPools()
	if err != nil {
		return nil, err
	}

	result := []*PoolResponse{}
	for _, pool := range pools {
		result = append(result, newPoolResponse(pool))
	}

	return result, nil
}
