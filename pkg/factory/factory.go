package factory

import (
	"fmt"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// Registry maps provider types to construction strategies. It is populated
// once by NewRegistry and never mutated afterwards, so concurrent lookups need
// no locking.
type Registry struct {
	factories map[types.ProviderType]types.ChatModelFactory
}

// NewRegistry registers every entry of the table. Keys must be enumerated
// provider types and factories must be non-nil.
func NewRegistry(entries map[types.ProviderType]types.ChatModelFactory) (*Registry, error) {
	factories := make(map[types.ProviderType]types.ChatModelFactory, len(entries))
	for providerType, factory := range entries {
		if !providerType.IsValid() {
			return nil, fmt.Errorf("cannot register factory: %w", &types.InvalidProviderNameError{Raw: string(providerType)})
		}
		if factory == nil {
			return nil, fmt.Errorf("cannot register nil factory for provider %s", providerType)
		}
		factories[providerType] = factory
	}
	return &Registry{factories: factories}, nil
}

// Lookup returns the strategy for providerType, or an *types.UnknownProviderError
// when none is registered.
func (r *Registry) Lookup(providerType types.ProviderType) (types.ChatModelFactory, error) {
	factory, exists := r.factories[providerType]
	if !exists {
		return nil, &types.UnknownProviderError{Provider: providerType}
	}
	return factory, nil
}

// CreateChatModel looks up the strategy and invokes it once with cfg.
// Strategy errors are returned unchanged.
func (r *Registry) CreateChatModel(providerType types.ProviderType, cfg types.ModelConfig) (types.ChatModel, error) {
	factory, err := r.Lookup(providerType)
	if err != nil {
		return nil, err
	}
	return factory.CreateChatModel(cfg)
}

// GetSupportedProviders returns the registered provider types in enumeration order.
func (r *Registry) GetSupportedProviders() []types.ProviderType {
	providerTypes := make([]types.ProviderType, 0, len(r.factories))
	for _, providerType := range types.AllProviderTypes() {
		if _, ok := r.factories[providerType]; ok {
			providerTypes = append(providerTypes, providerType)
		}
	}
	return providerTypes
}
