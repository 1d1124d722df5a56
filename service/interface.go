package service

import (
	"github.com/fulldump/handlealloc/registry"
)

// Errors returned by any Servicer implementation.
var (
	ErrorPoolNotFound      = registry.ErrPoolNotFound
	ErrorPoolAlreadyExists = registry.ErrPoolAlreadyExists
)

type Servicer interface {
	CreatePool(name string) (*registry.Pool, error)
	GetPool(name string) (*registry.Pool, error)
	ListPools() ([]*registry.Pool, error)
	DeletePool(name string) error
}
