package service

import (
	"github.com/fulldump/handlealloc/registry"
)

type Service struct {
	registry *registry.Registry
}

func NewService(r *registry.Registry) *Service {
	return &Service{
		registry: r,
	}
}

func (s *Service) CreatePool(name string) (*registry.Pool, error) {
	return s.registry.CreatePool(name)
}

func (s *Service) GetPool(name string) (*registry.Pool, error) {
	return s.registry.GetPool(name)
}

func (s *Service) ListPools() ([]*registry.Pool, error) {
	return s.registry.ListPools(), nil
}

func (s *Service) DeletePool(name string) error {
	return s.registry.DropPool(name)
}
