package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrPoolNotFound      = errors.New("pool not found")
	ErrPoolAlreadyExists = errors.New("pool already exists")
	ErrPoolNameEmpty     = errors.New("pool name is empty")
)

// Registry keeps named pools in memory, nothing is persisted.
type Registry struct {
	mutex    sync.RWMutex
	status   string
	pools    map[string]*Pool
	exit     chan struct{}
	stopOnce sync.Once
}

func NewRegistry() *Registry {
	return &Registry{
		status: StatusOpening,
		pools:  map[string]*Pool{},
		exit:   make(chan struct{}),
	}
}

func (r *Registry) GetStatus() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.status
}

func (r *Registry) setStatus(status string) {
	r.mutex.Lock()
	r.status = status
	r.mutex.Unlock()
}

func (r *Registry) CreatePool(name string) (*Pool, error) {
	if name == "" {
		return nil, ErrPoolNameEmpty
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.pools[name]; exists {
		return nil, fmt.Errorf("pool '%s': %w", name, ErrPoolAlreadyExists)
	}

	p := NewPool(name)
	r.pools[name] = p

	Logger().Info("pool created",
		zap.String("pool", name),
		zap.String("allocator", p.allocator.ID().String()))

	return p, nil
}

func (r *Registry) GetPool(name string) (*Pool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, exists := r.pools[name]
	if !exists {
		return nil, ErrPoolNotFound
	}

	return p, nil
}

func (r *Registry) DropPool(name string) error {
	r.mutex.Lock()
	p, exists := r.pools[name]
	if exists {
		delete(r.pools, name)
	}
	r.mutex.Unlock()

	if !exists {
		return ErrPoolNotFound
	}

	Logger().Info("pool dropped", zap.String("pool", name))

	return p.Close()
}

// ListPools returns pools sorted by name.
func (r *Registry) ListPools() []*Pool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Pool, 0, len(r.pools))
	for _, p := range r.pools {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Load makes the registry operational. There is no state on disk to read.
func (r *Registry) Load() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.status != StatusOpening {
		return nil
	}
	r.status = StatusOperating
	Logger().Info("registry operating")

	return nil
}

// Start blocks until Stop is called.
func (r *Registry) Start() error {

	err := r.Load()
	if err != nil {
		return err
	}

	<-r.exit

	return nil
}

func (r *Registry) Stop() error {

	var lastErr error

	r.stopOnce.Do(func() {
		defer close(r.exit)

		r.setStatus(StatusClosing)

		for _, p := range r.ListPools() {
			Logger().Info("closing pool", zap.String("pool", p.Name))
			err := p.Close()
			if err != nil {
				Logger().Error("close pool", zap.String("pool", p.Name), zap.Error(err))
				lastErr = err
			}
		}
	})

	return lastErr
}
