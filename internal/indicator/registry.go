package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Factory builds a moving average over the given window or span.
type Factory func(period int) MovingAverage

// IndicatorRegistry manages all available moving averages.
type IndicatorRegistry interface {
	RegisterIndicator(name types.IndicatorType, factory Factory) error
	// GetIndicator builds a fresh indicator, so callers never share state.
	// The period must be positive.
	GetIndicator(name types.IndicatorType, period int) (MovingAverage, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

// IndicatorRegistryV1 manages all available moving averages.
type IndicatorRegistryV1 struct {
	factories map[types.IndicatorType]Factory
	mu        sync.RWMutex
}

// NewIndicatorRegistry creates a new, empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		factories: make(map[types.IndicatorType]Factory),
		mu:        sync.RWMutex{},
	}
}

// NewDefaultIndicatorRegistry creates a registry holding SMA, WMA and EMA.
func NewDefaultIndicatorRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()
	_ = registry.RegisterIndicator(types.IndicatorTypeSMA, NewSMA)
	_ = registry.RegisterIndicator(types.IndicatorTypeWMA, NewWMA)
	_ = registry.RegisterIndicator(types.IndicatorTypeEMA, NewEMA)

	return registry
}

// RegisterIndicator adds an indicator factory to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(name types.IndicatorType, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", name)
	}

	r.factories[name] = factory

	return nil
}

// GetIndicator builds an indicator by name. Non-positive periods are rejected.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType, period int) (MovingAverage, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "GetIndicator: period must be a positive integer, got %d", period)
	}

	return factory(period), nil
}

// ListIndicators returns a list of all registered indicator names.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.factories, name)

	return nil
}
