package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/handlealloc/allocator"
	"github.com/fulldump/handlealloc/registry"
	"github.com/fulldump/handlealloc/service"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

var ErrUnavailable = errors.New("temporary unavailable")

// InterceptorUnavailable rejects requests while the registry is not
// operating. It must run inside PrettyErrorInterceptor.
func InterceptorUnavailable(r *registry.Registry) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := r.GetStatus()
			if status == registry.StatusOpening {
				box.SetError(ctx, fmt.Errorf("%w: opening", ErrUnavailable))
				return
			}
			if status == registry.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: closing", ErrUnavailable))
				return
			}
			next(ctx)
		}
	}
}

type errorStatus struct {
	err         error
	status      int
	description string
}

var errorStatuses = []errorStatus{
	{ErrUnauthorized, http.StatusUnauthorized, "user is not authenticated"},
	{ErrUnavailable, http.StatusServiceUnavailable, "registry is not operating"},
	{service.ErrorPoolNotFound, http.StatusNotFound, "pool does not exist"},
	{registry.ErrTicketNotFound, http.StatusNotFound, "ticket does not exist or was already released"},
	{service.ErrorPoolAlreadyExists, http.StatusConflict, "pool name already in use"},
	{registry.ErrPoolNameEmpty, http.StatusBadRequest, "pool name is required"},
	{allocator.ErrExhausted, http.StatusInsufficientStorage, "no more handle indexes available"},
	{allocator.ErrClosed, http.StatusGone, "pool is closed"},
	{io.EOF, http.StatusBadRequest, "Empty body"},
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		for _, e := range errorStatuses {
			if errors.Is(err, e.err) {
				w.WriteHeader(e.status)
				PrettyError{Message: err.Error(), Description: e.description}.MarshalTo(w)
				return
			}
		}

		if err == box.ErrResourceNotFound {
			w.WriteHeader(http.StatusNotFound)
			PrettyError{
				Message:     err.Error(),
				Description: fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()),
			}.MarshalTo(w)
			return
		}

		if err == box.ErrMethodNotAllowed {
			w.WriteHeader(http.StatusMethodNotAllowed)
			PrettyError{
				Message:     err.Error(),
				Description: fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method),
			}.MarshalTo(w)
			return
		}

		if _, ok := err.(*json.SyntaxError); ok {
			w.WriteHeader(http.StatusBadRequest)
			PrettyError{Message: err.Error(), Description: "Malformed JSON"}.MarshalTo(w)
			return
		}

		w.WriteHeader(http.StatusInternalServerError)
		PrettyError{Message: err.Error(), Description: "Unexpected error"}.MarshalTo(w)
	}
}
