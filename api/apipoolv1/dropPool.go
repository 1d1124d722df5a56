package apipoolv1

import (
	"context"

	"github.com/fulldump/box"
)

func dropPool(ctx context.Context) error {

	s := GetServicer(ctx)

	poolName := box.GetUrlParameter(ctx, "poolName")

	return s.DeletePool(poolName)
}
