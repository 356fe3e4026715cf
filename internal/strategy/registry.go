package strategy

import (
	"sync"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Registry holds the strategies taking part in a comparison, in registration order.
type Registry struct {
	strategies []Strategy
	keys       map[string]struct{}
	mu         sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: []Strategy{},
		keys:       make(map[string]struct{}),
		mu:         sync.RWMutex{},
	}
}

// Register adds a strategy. A strategy with the same Key is rejected.
func (r *Registry) Register(s Strategy) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "strategy cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key(s)
	if _, exists := r.keys[key]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "strategy %s already registered", key)
	}

	r.keys[key] = struct{}{}
	r.strategies = append(r.strategies, s)

	return nil
}

// Get returns the strategy registered under key.
func (r *Registry) Get(key string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.strategies {
		if Key(s) == key {
			return s, nil
		}
	}

	return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", key)
}

// List returns the registered strategies in registration order.
func (r *Registry) List() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Strategy, len(r.strategies))
	copy(out, r.strategies)

	return out
}

// Len returns the number of registered strategies.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.strategies)
}

// Remove drops the strategy registered under key.
func (r *Registry) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[key]; !exists {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", key)
	}

	delete(r.keys, key)

	for i, s := range r.strategies {
		if Key(s) == key {
			r.strategies = append(r.strategies[:i], r.strategies[i+1:]...)

			break
		}
	}

	return nil
}
