// Package common provides shared plumbing for the per-provider construction
// strategies: the handle base embedded by every chat model, fixed credentials,
// HTTP client construction and client-side rate limiting.
package common

import (
	"github.com/google/uuid"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// BaseChatModel carries the identity shared by every chat model handle.
// Provider handles embed it to satisfy types.ChatModel.
type BaseChatModel struct {
	id           string
	providerType types.ProviderType
	config       types.ModelConfig
}

// NewBaseChatModel stamps a new handle identity for the given provider and config.
func NewBaseChatModel(providerType types.ProviderType, cfg types.ModelConfig) BaseChatModel {
	return BaseChatModel{
		id:           uuid.NewString(),
		providerType: providerType,
		config:       cfg,
	}
}

func (m BaseChatModel) ID() string               { return m.id }
func (m BaseChatModel) Type() types.ProviderType { return m.providerType }
func (m BaseChatModel) Config() types.ModelConfig {
	return m.config
}
