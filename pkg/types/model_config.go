package types

import "time"

// DefaultMaxOutputTokens is used when the persisted max output tokens is the
// unset sentinel (0).
const DefaultMaxOutputTokens = 2500

// ModelConfig is the resolved, request-specific configuration passed to a
// construction strategy. It is assembled fresh for every request.
type ModelConfig struct {
	ModelName   string  `json:"model_name" yaml:"modelName"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxRetries  int     `json:"max_retries" yaml:"maxRetries"`
	TopP        float64 `json:"top_p" yaml:"topP"`
	// Timeout is in seconds and is only forwarded to the client.
	Timeout   int `json:"timeout" yaml:"timeout"`
	MaxTokens int `json:"max_tokens" yaml:"maxTokens"`
}

// RequestTimeout returns Timeout as a duration. Zero means no timeout.
func (c ModelConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}
	return time.Duration(c.Timeout) * time.Second
}

// RequestContext is the read-only view of one user interaction.
type RequestContext struct {
	ModelName string
	// Provider is an explicit override. The zero value means none was given.
	Provider ProviderType
}

// HasOverride reports whether the request names a provider explicitly.
func (r RequestContext) HasOverride() bool {
	return r.Provider != ""
}
