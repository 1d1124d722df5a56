package apipoolv1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/handlealloc/utils"
)

type findRequest struct {
	Filter map[string]interface{} `json:"filter"`
	Skip   int64                  `json:"skip"`
	Limit  int64                  `json:"limit"`
}

// find lists pools whose stats match a connor filter, eg:
//
//	{"filter": {"live": {"$gt": 0}}, "limit": 10}
func find(ctx context.Context, r *http.Request) ([]*PoolResponse, error) {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	params := &findRequest{}
	if len(requestBody) > 0 {
		err = json.Unmarshal(requestBody, params)
		if err != nil {
			return nil, err
		}
	}

	pools, err := GetServicer(ctx).ListPools()
	if err != nil {
		return nil, err
	}

	hasFilter := len(params.Filter) > 0

	result := []*PoolResponse{}
	skip := params.Skip
	limit := params.Limit // zero means no limit
	for _, pool := range pools {

		if params.Limit > 0 && limit == 0 {
			break
		}

		item := newPoolResponse(pool)

		if hasFilter {
			itemData := map[string]interface{}{}
			err := utils.Remarshal(item, &itemData)
			if err != nil {
				return nil, err
			}

			match, err := connor.Match(params.Filter, itemData)
			if err != nil {
				return nil, fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		result = append(result, item)
	}

	return result, nil
}
