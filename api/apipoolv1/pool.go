package apipoolv1

import (
	"github.com/fulldump/handlealloc/registry"
)

type PoolResponse struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Slots   int    `json:"slots"`
	Live    int    `json:"live"`
	Free    int    `json:"free"`
	Handles int    `json:"handles"`
}

func newPoolResponse(p *registry.Pool) *PoolResponse {
	stats := p.Stats()
	return &PoolResponse{
		Name:    stats.Name,
		ID:      stats.ID,
		Slots:   stats.Slots,
		Live:    stats.Live,
		Free:    stats.Free,
		Handles: stats.Handles,
	}
}

type ticketRequest struct {
	Ticket registry.Ticket `json:"ticket"`
}
