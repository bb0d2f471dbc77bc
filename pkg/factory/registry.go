package factory

import (
	"fmt"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/anthropic"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/gemini"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/openai"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// DefaultFactories returns the table of built-in strategies, one entry per
// provider type.
func DefaultFactories(creds Credentials) map[types.ProviderType]types.ChatModelFactory {
	return map[types.ProviderType]types.ChatModelFactory{
		types.ProviderTypeOllama:    openai.NewOllamaFactory(creds[types.ProviderTypeOllama]),
		types.ProviderTypeLMStudio:  openai.NewLMStudioFactory(creds[types.ProviderTypeLMStudio]),
		types.ProviderTypeGPT4All:   openai.NewGPT4AllFactory(creds[types.ProviderTypeGPT4All]),
		types.ProviderTypeOpenAI:    openai.NewFactory(creds[types.ProviderTypeOpenAI]),
		types.ProviderTypeMistral:   openai.NewMistralFactory(creds[types.ProviderTypeMistral]),
		types.ProviderTypeAnthropic: anthropic.NewFactory(creds[types.ProviderTypeAnthropic]),
		types.ProviderTypeGroq:      openai.NewGroqFactory(creds[types.ProviderTypeGroq]),
		types.ProviderTypeGemini:    gemini.NewFactory(creds[types.ProviderTypeGemini]),
	}
}

// NewDefaultRegistry builds and validates the registry of built-in strategies.
func NewDefaultRegistry(creds Credentials) (*Registry, error) {
	registry, err := NewRegistry(DefaultFactories(creds))
	if err != nil {
		return nil, err
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("default registry: %w", err)
	}
	return registry, nil
}
