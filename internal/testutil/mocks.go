// Package testutil provides shared testing utilities and mocks
// for use across the chatmodel-kit test suite.
package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/common"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// MockChatModel is the handle returned by MockChatModelFactory.
type MockChatModel struct {
	common.BaseChatModel
}

// MockChatModelFactory is a types.ChatModelFactory with configurable
// behavior. It records every config it is invoked with.
type MockChatModelFactory struct {
	mu sync.RWMutex

	providerType types.ProviderType

	// Behavior control
	createError error

	// Call tracking
	configs []types.ModelConfig
}

// NewMockChatModelFactory creates a mock factory that builds handles for providerType.
func NewMockChatModelFactory(providerType types.ProviderType) *MockChatModelFactory {
	return &MockChatModelFactory{providerType: providerType}
}

// SetCreateError configures the factory to return err from CreateChatModel
func (m *MockChatModelFactory) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

// GetCreateCallCount returns the number of times CreateChatModel was called
func (m *MockChatModelFactory) GetCreateCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// LastConfig returns the config of the most recent call and false when
// the factory was never invoked.
func (m *MockChatModelFactory) LastConfig() (types.ModelConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.configs) == 0 {
		return types.ModelConfig{}, false
	}
	return m.configs[len(m.configs)-1], true
}

func (m *MockChatModelFactory) CreateChatModel(cfg types.ModelConfig) (types.ChatModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs = append(m.configs, cfg)
	if m.createError != nil {
		return nil, m.createError
	}
	return &MockChatModel{BaseChatModel: common.NewBaseChatModel(m.providerType, cfg)}, nil
}

// NewMockFactoryTable returns a mock factory for every supported provider,
// both as a registration table and keyed for assertions.
func NewMockFactoryTable() (map[types.ProviderType]types.ChatModelFactory, map[types.ProviderType]*MockChatModelFactory) {
	table := make(map[types.ProviderType]types.ChatModelFactory)
	mocks := make(map[types.ProviderType]*MockChatModelFactory)
	for _, p := range types.AllProviderTypes() {
		m := NewMockChatModelFactory(p)
		table[p] = m
		mocks[p] = m
	}
	return table, mocks
}

// RequireNoCalls fails the test if any mock other than except was invoked.
func RequireNoCalls(t *testing.T, mocks map[types.ProviderType]*MockChatModelFactory, except ...types.ProviderType) {
	t.Helper()
	skip := make(map[types.ProviderType]bool, len(except))
	for _, p := range except {
		skip[p] = true
	}
	for p, m := range mocks {
		if skip[p] {
			continue
		}
		require.Zero(t, m.GetCreateCallCount(), "unexpected call to %s strategy", p)
	}
}
