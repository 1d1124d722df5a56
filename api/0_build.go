package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/fulldump/handlealloc/api/apipoolv1"
	"github.com/fulldump/handlealloc/service"
)

// Build mounts the v1 API. Authentication is enabled only when apiKey is set.
func Build(s service.Servicer, version, apiKey, apiSecret string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)
	if apiKey != "" {
		v1.WithInterceptors(
			Authenticate(apiKey, apiSecret),
		)
	}

	apipoolv1.BuildV1Pool(v1).
		WithInterceptors(
			injectServicer(s),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}).WithName("release"))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "HandleAlloc"
	spec.Info.Description = "Reference counted handle pools over HTTP."
	b.Handle("GET", "/openapi.json", func(r *http.Request) any {

		spec.Servers = []boxopenapi.Server{
			{
				Url: "http://" + r.Host,
			},
		}

		return spec
	})

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apipoolv1.SetServicer(ctx, s))
		}
	}
}
