package resolver

import (
	"log/slog"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/metrics"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// StrategyLookup finds the construction strategy for a provider.
// *factory.Registry implements it.
type StrategyLookup interface {
	Lookup(providerType types.ProviderType) (types.ChatModelFactory, error)
}

// Resolver turns a RequestContext into a ready chat model. It holds no mutable
// state and is safe for concurrent use as long as its collaborators are.
type Resolver struct {
	registry        StrategyLookup
	settings        types.SettingsSource
	defaultProvider types.ProviderType
	logger          *slog.Logger
	metrics         *metrics.Collector
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefaultProvider sets the provider used when the settings hold no
// persisted default.
func WithDefaultProvider(p types.ProviderType) Option {
	return func(r *Resolver) {
		r.defaultProvider = p
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records resolutions and builds on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Resolver) {
		r.metrics = c
	}
}

// New creates a Resolver reading settings from settings and strategies from registry.
func New(registry StrategyLookup, settings types.SettingsSource, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		settings: settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ResolveProvider returns override when set. Otherwise it parses the persisted
// default from settings, falling back to the resolver's default provider when
// nothing is persisted. Names outside the enumeration fail with
// *types.InvalidProviderNameError.
func (r *Resolver) ResolveProvider(override types.ProviderType, settings types.SettingsSnapshot) (types.ProviderType, error) {
	if override != "" {
		return types.ParseProviderType(string(override))
	}
	raw := settings.DefaultProvider
	if raw == "" {
		raw = string(r.defaultProvider)
	}
	return types.ParseProviderType(raw)
}

// BuildConfig merges settings and the request into a ModelConfig. Temperature,
// max retries, top-p and timeout are copied verbatim; a max output tokens of 0
// becomes types.DefaultMaxOutputTokens.
func BuildConfig(req types.RequestContext, settings types.SettingsSnapshot) types.ModelConfig {
	maxTokens := settings.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = types.DefaultMaxOutputTokens
	}
	return types.ModelConfig{
		ModelName:   req.ModelName,
		Temperature: settings.Temperature,
		MaxRetries:  settings.MaxRetries,
		TopP:        settings.TopP,
		Timeout:     settings.Timeout,
		MaxTokens:   maxTokens,
	}
}

// GetChatModel resolves the provider for req, builds its config from a fresh
// settings snapshot and invokes the provider's strategy exactly once. Errors
// from the strategy are returned unchanged.
func (r *Resolver) GetChatModel(req types.RequestContext) (types.ChatModel, error) {
	settings := r.settings.Snapshot()

	provider, err := r.ResolveProvider(req.Provider, settings)
	r.metrics.ObserveResolution(provider, err)
	if err != nil {
		r.logger.Warn("failed to resolve provider",
			"override", string(req.Provider),
			"persisted", settings.DefaultProvider,
			"error", err)
		return nil, err
	}

	factory, err := r.registry.Lookup(provider)
	if err != nil {
		r.metrics.ObserveBuild(provider, err)
		r.logger.Error("no chat model factory for resolved provider", "provider", string(provider), "error", err)
		return nil, err
	}

	cfg := BuildConfig(req, settings)
	model, err := factory.CreateChatModel(cfg)
	r.metrics.ObserveBuild(provider, err)
	if err != nil {
		r.logger.Warn("failed to create chat model",
			"provider", string(provider),
			"model", cfg.ModelName,
			"error", err)
		return nil, err
	}

	r.logger.Debug("chat model created",
		"provider", string(provider),
		"model", cfg.ModelName,
		"client_id", model.ID(),
		"max_tokens", cfg.MaxTokens,
		"override", req.HasOverride())
	return model, nil
}
