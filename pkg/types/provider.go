package types

import (
	"errors"
	"strings"
)

// ProviderType identifies one supported backend language-model service.
// The set is closed: every value is declared below and nothing else parses.
type ProviderType string

const (
	ProviderTypeOllama    ProviderType = "Ollama"
	ProviderTypeLMStudio  ProviderType = "LMStudio"
	ProviderTypeGPT4All   ProviderType = "GPT4All"
	ProviderTypeOpenAI    ProviderType = "OpenAI"
	ProviderTypeMistral   ProviderType = "Mistral"
	ProviderTypeAnthropic ProviderType = "Anthropic"
	ProviderTypeGroq      ProviderType = "Groq"
	ProviderTypeGemini    ProviderType = "Gemini"
)

// allProviderTypes is the enumeration in declaration order.
var allProviderTypes = [...]ProviderType{
	ProviderTypeOllama,
	ProviderTypeLMStudio,
	ProviderTypeGPT4All,
	ProviderTypeOpenAI,
	ProviderTypeMistral,
	ProviderTypeAnthropic,
	ProviderTypeGroq,
	ProviderTypeGemini,
}

// AllProviderTypes returns every supported provider in declaration order.
// The returned slice is a copy and may be modified by the caller.
func AllProviderTypes() []ProviderType {
	out := make([]ProviderType, len(allProviderTypes))
	copy(out, allProviderTypes[:])
	return out
}

// ParseProviderType converts a persisted provider name into a ProviderType.
// Matching is exact and case-sensitive; any other input yields an
// *InvalidProviderNameError.
func ParseProviderType(raw string) (ProviderType, error) {
	for _, p := range allProviderTypes {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", &InvalidProviderNameError{Raw: raw}
}

// IsValid reports whether p is a member of the enumeration.
func (p ProviderType) IsValid() bool {
	_, err := ParseProviderType(string(p))
	return err == nil
}

func (p ProviderType) String() string {
	return string(p)
}

// ProviderTypeNames returns the enumeration joined for help and error text.
func ProviderTypeNames() string {
	names := make([]string, len(allProviderTypes))
	for i, p := range allProviderTypes {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// ChatModel is the ready-to-use client handle produced by a ChatModelFactory.
// The resolver treats it as inert output; ownership passes to the caller.
type ChatModel interface {
	// ID uniquely identifies this handle, for log correlation.
	ID() string
	Type() ProviderType
	// Config returns the configuration the handle was built from.
	Config() ModelConfig
}

// ChatModelFactory is the per-provider construction strategy that turns a
// ModelConfig into a ChatModel. Implementations are stateless or hold only
// provider-specific fixed parameters such as a base URL or credentials.
type ChatModelFactory interface {
	CreateChatModel(cfg ModelConfig) (ChatModel, error)
}

// ChatModelFactoryFunc adapts an ordinary function to ChatModelFactory.
type ChatModelFactoryFunc func(cfg ModelConfig) (ChatModel, error)

// CreateChatModel calls f(cfg).
func (f ChatModelFactoryFunc) CreateChatModel(cfg ModelConfig) (ChatModel, error) {
	if f == nil {
		return nil, errors.New("nil chat model factory func")
	}
	return f(cfg)
}
