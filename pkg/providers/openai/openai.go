// Package openai provides the construction strategies backed by the OpenAI SDK:
// OpenAI itself and the backends that speak the OpenAI-compatible API (Ollama,
// LMStudio, GPT4All, Mistral and Groq).
package openai

import (
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/common"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// Default base URLs for the OpenAI-compatible backends.
const (
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultOllamaBaseURL   = "http://localhost:11434/v1"
	DefaultLMStudioBaseURL = "http://localhost:1234/v1"
	DefaultGPT4AllBaseURL  = "http://localhost:4891/v1"
	DefaultMistralBaseURL  = "https://api.mistral.ai/v1"
	DefaultGroqBaseURL     = "https://api.groq.com/openai/v1"
)

// DefaultGroqRateLimit matches Groq's free tier request budget.
var DefaultGroqRateLimit = common.RateLimit{RequestsPerMinute: 30}

// ChatModel is a client handle for an OpenAI or OpenAI-compatible backend.
type ChatModel struct {
	common.BaseChatModel
	client  openai.Client
	baseURL string
	limiter *rate.Limiter
}

// Client returns the underlying SDK client.
func (m *ChatModel) Client() *openai.Client {
	return &m.client
}

// BaseURL returns the endpoint the client talks to.
func (m *ChatModel) BaseURL() string {
	return m.baseURL
}

// Limiter returns the client-side rate limiter, or nil when the backend has none.
// Handles from the same Factory share one limiter.
func (m *ChatModel) Limiter() *rate.Limiter {
	return m.limiter
}

// Factory builds ChatModel handles for one provider. It is immutable and safe
// for concurrent use.
type Factory struct {
	providerType types.ProviderType
	creds        common.Credentials
	baseURL      string
	rateLimit    common.RateLimit
	limiter      *rate.Limiter
}

// Option configures a Factory.
type Option func(*Factory)

// WithRateLimit enables a client-side rate limiter on every handle.
func WithRateLimit(limit common.RateLimit) Option {
	return func(f *Factory) {
		f.rateLimit = limit
	}
}

// NewFactory creates the OpenAI strategy.
func NewFactory(creds common.Credentials, opts ...Option) *Factory {
	return NewCompatibleFactory(types.ProviderTypeOpenAI, DefaultBaseURL, creds, opts...)
}

// NewCompatibleFactory creates a strategy for a backend exposing the
// OpenAI-compatible API at defaultBaseURL. creds.BaseURL overrides the default.
func NewCompatibleFactory(providerType types.ProviderType, defaultBaseURL string, creds common.Credentials, opts ...Option) *Factory {
	f := &Factory{
		providerType: providerType,
		creds:        creds,
		baseURL:      creds.ResolveBaseURL(defaultBaseURL),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.limiter = f.rateLimit.NewLimiter()
	return f
}

// Type returns the provider this factory builds handles for.
func (f *Factory) Type() types.ProviderType {
	return f.providerType
}

// CreateChatModel builds an SDK client configured from cfg. No request is sent.
func (f *Factory) CreateChatModel(cfg types.ModelConfig) (types.ChatModel, error) {
	reqOpts := []option.RequestOption{
		option.WithBaseURL(f.baseURL),
		// Always set, so a stray OPENAI_API_KEY is never sent to another backend.
		option.WithAPIKey(f.creds.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(timeout))
	}
	if httpClient := common.NewHTTPClient(f.creds); httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(httpClient))
	}
	if f.limiter != nil {
		reqOpts = append(reqOpts, option.WithMiddleware(rateLimitMiddleware(f.limiter)))
	}

	return &ChatModel{
		BaseChatModel: common.NewBaseChatModel(f.providerType, cfg),
		client:        openai.NewClient(reqOpts...),
		baseURL:       f.baseURL,
		limiter:       f.limiter,
	}, nil
}

// rateLimitMiddleware blocks each SDK request until limiter grants a token
// or the request context ends.
func rateLimitMiddleware(limiter *rate.Limiter) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		return next(req)
	}
}

// NewOllamaFactory creates the Ollama strategy.
func NewOllamaFactory(creds common.Credentials) *Factory {
	return NewCompatibleFactory(types.ProviderTypeOllama, DefaultOllamaBaseURL, creds)
}

// NewLMStudioFactory creates the LMStudio strategy.
func NewLMStudioFactory(creds common.Credentials) *Factory {
	return NewCompatibleFactory(types.ProviderTypeLMStudio, DefaultLMStudioBaseURL, creds)
}

// NewGPT4AllFactory creates the GPT4All strategy.
func NewGPT4AllFactory(creds common.Credentials) *Factory {
	return NewCompatibleFactory(types.ProviderTypeGPT4All, DefaultGPT4AllBaseURL, creds)
}

// NewMistralFactory creates the Mistral strategy.
func NewMistralFactory(creds common.Credentials) *Factory {
	return NewCompatibleFactory(types.ProviderTypeMistral, DefaultMistralBaseURL, creds)
}

// NewGroqFactory creates the Groq strategy with its client-side rate limit.
func NewGroqFactory(creds common.Credentials, opts ...Option) *Factory {
	opts = append([]Option{WithRateLimit(DefaultGroqRateLimit)}, opts...)
	return NewCompatibleFactory(types.ProviderTypeGroq, DefaultGroqBaseURL, creds, opts...)
}
