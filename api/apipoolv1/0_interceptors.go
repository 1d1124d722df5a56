package apipoolv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/handlealloc/registry"
	"github.com/fulldump/handlealloc/service"
)

const ContextServicerKey = "3f1c2a4e-7b52-4d0e-9a61-5c8e0b6f2d17"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer) // TODO: can raise panic :D
}

func lookupPool(ctx context.Context) (*registry.Pool, error) {
	poolName := box.GetUrlParameter(ctx, "poolName")
	return GetServicer(ctx).GetPool(poolName)
}
