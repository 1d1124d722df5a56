package apipoolv1

import (
	"context"
	"net/http"
)

type createPoolRequest struct {
	Name string `json:"name"`
}

func createPool(ctx context.Context, w http.ResponseWriter, input *createPoolRequest) (*PoolResponse, error) {

	s := GetServicer(ctx)

	pool, err := s.CreatePool(input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return newPoolResponse(pool), nil
}
