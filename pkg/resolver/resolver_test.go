package resolver

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/chatmodel-kit/internal/testutil"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/factory"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/metrics"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/settings"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// newRecordingRegistry registers a mock strategy for every provider
func newRecordingRegistry(t *testing.T) (*factory.Registry, map[types.ProviderType]*testutil.MockChatModelFactory) {
	t.Helper()
	table, mocks := testutil.NewMockFactoryTable()
	registry, err := factory.NewRegistry(table)
	require.NoError(t, err)
	require.NoError(t, registry.Validate())
	return registry, mocks
}

func openAISettings() types.SettingsSnapshot {
	return types.SettingsSnapshot{
		DefaultProvider: "OpenAI",
		Temperature:     0.7,
		MaxRetries:      3,
		TopP:            1.0,
		Timeout:         30,
		MaxOutputTokens: 0,
	}
}

func TestResolveProvider_OverrideWins(t *testing.T) {
	r := New(nil, nil)
	snapshots := []types.SettingsSnapshot{
		openAISettings(),
		{},
		{DefaultProvider: "BogusProvider"},
	}

	for _, p := range types.AllProviderTypes() {
		for _, snap := range snapshots {
			got, err := r.ResolveProvider(p, snap)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	}
}

func TestResolveProvider_PersistedDefault(t *testing.T) {
	r := New(nil, nil, WithDefaultProvider(types.ProviderTypeOllama))

	for _, p := range types.AllProviderTypes() {
		t.Run(string(p), func(t *testing.T) {
			got, err := r.ResolveProvider("", types.SettingsSnapshot{DefaultProvider: string(p)})
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestResolveProvider_InvalidPersistedName(t *testing.T) {
	r := New(nil, nil, WithDefaultProvider(types.ProviderTypeOpenAI))

	got, err := r.ResolveProvider("", types.SettingsSnapshot{DefaultProvider: "BogusProvider"})
	assert.Empty(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidProviderName))

	var invalid *types.InvalidProviderNameError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "BogusProvider", invalid.Raw)
}

func TestResolveProvider_InvalidOverride(t *testing.T) {
	r := New(nil, nil)

	_, err := r.ResolveProvider(types.ProviderType("openai"), openAISettings())
	assert.True(t, errors.Is(err, types.ErrInvalidProviderName))
}

func TestResolveProvider_CallerDefault(t *testing.T) {
	r := New(nil, nil, WithDefaultProvider(types.ProviderTypeAnthropic))

	got, err := r.ResolveProvider("", types.SettingsSnapshot{})
	require.NoError(t, err)
	assert.Equal(t, types.ProviderTypeAnthropic, got)
}

func TestResolveProvider_NothingConfigured(t *testing.T) {
	r := New(nil, nil)

	_, err := r.ResolveProvider("", types.SettingsSnapshot{})
	assert.True(t, errors.Is(err, types.ErrInvalidProviderName))
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name              string
		maxOutputTokens   int
		expectedMaxTokens int
	}{
		{"unset uses system default", 0, types.DefaultMaxOutputTokens},
		{"explicit value kept", 2048, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := openAISettings()
			snap.MaxOutputTokens = tt.maxOutputTokens

			cfg := BuildConfig(types.RequestContext{ModelName: "gpt-4"}, snap)

			assert.Equal(t, tt.expectedMaxTokens, cfg.MaxTokens)
			assert.NotZero(t, cfg.MaxTokens)
			assert.Equal(t, "gpt-4", cfg.ModelName)
			assert.Equal(t, 0.7, cfg.Temperature)
			assert.Equal(t, 3, cfg.MaxRetries)
			assert.Equal(t, 1.0, cfg.TopP)
			assert.Equal(t, 30, cfg.Timeout)
		})
	}
}

func TestGetChatModel_PersistedDefault(t *testing.T) {
	registry, recorders := newRecordingRegistry(t)
	r := New(registry, settings.NewStatic(openAISettings()))

	model, err := r.GetChatModel(types.RequestContext{ModelName: "gpt-4"})
	require.NoError(t, err)

	expected := types.ModelConfig{
		ModelName:   "gpt-4",
		Temperature: 0.7,
		MaxRetries:  3,
		TopP:        1.0,
		Timeout:     30,
		MaxTokens:   types.DefaultMaxOutputTokens,
	}
	openAI := recorders[types.ProviderTypeOpenAI]
	require.Equal(t, 1, openAI.GetCreateCallCount())
	last, _ := openAI.LastConfig()
	assert.Equal(t, expected, last)
	assert.Equal(t, types.ProviderTypeOpenAI, model.Type())
	assert.Equal(t, expected, model.Config())

	testutil.RequireNoCalls(t, recorders, types.ProviderTypeOpenAI)
}

func TestGetChatModel_OverrideRoutesElsewhere(t *testing.T) {
	registry, recorders := newRecordingRegistry(t)
	source := settings.NewStatic(openAISettings())
	r := New(registry, source)

	model, err := r.GetChatModel(types.RequestContext{ModelName: "gpt-4", Provider: types.ProviderTypeAnthropic})
	require.NoError(t, err)

	assert.Equal(t, types.ProviderTypeAnthropic, model.Type())
	assert.Equal(t, 1, recorders[types.ProviderTypeAnthropic].GetCreateCallCount())
	assert.Zero(t, recorders[types.ProviderTypeOpenAI].GetCreateCallCount())
	assert.Equal(t, "OpenAI", source.Snapshot().DefaultProvider, "persisted default must be untouched")
}

func TestGetChatModel_ReadsFreshSettings(t *testing.T) {
	registry, recorders := newRecordingRegistry(t)
	snap := openAISettings()
	var mu sync.Mutex
	source := types.SettingsSourceFunc(func() types.SettingsSnapshot {
		mu.Lock()
		defer mu.Unlock()
		return snap
	})
	r := New(registry, source)

	_, err := r.GetChatModel(types.RequestContext{ModelName: "m"})
	require.NoError(t, err)

	mu.Lock()
	snap.DefaultProvider = "Groq"
	snap.MaxOutputTokens = 4096
	mu.Unlock()

	_, err = r.GetChatModel(types.RequestContext{ModelName: "m"})
	require.NoError(t, err)

	assert.Equal(t, 1, recorders[types.ProviderTypeOpenAI].GetCreateCallCount())
	require.Equal(t, 1, recorders[types.ProviderTypeGroq].GetCreateCallCount())
	last, _ := recorders[types.ProviderTypeGroq].LastConfig()
	assert.Equal(t, 4096, last.MaxTokens)
}

func TestGetChatModel_InvalidPersistedName(t *testing.T) {
	registry, recorders := newRecordingRegistry(t)
	snap := openAISettings()
	snap.DefaultProvider = "BogusProvider"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	r := New(registry, settings.NewStatic(snap), WithLogger(logger))

	model, err := r.GetChatModel(types.RequestContext{ModelName: "gpt-4"})
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, types.ErrInvalidProviderName))
	assert.Contains(t, logs.String(), "failed to resolve provider")
	assert.Contains(t, logs.String(), "persisted=BogusProvider")

	testutil.RequireNoCalls(t, recorders)
}

func TestGetChatModel_UnknownProvider(t *testing.T) {
	registry, err := factory.NewRegistry(map[types.ProviderType]types.ChatModelFactory{
		types.ProviderTypeOpenAI: testutil.NewMockChatModelFactory(types.ProviderTypeOpenAI),
	})
	require.NoError(t, err)

	snap := openAISettings()
	snap.DefaultProvider = "Mistral"
	r := New(registry, settings.NewStatic(snap))

	model, err := r.GetChatModel(types.RequestContext{ModelName: "mistral-large"})
	assert.Nil(t, model)
	assert.True(t, errors.Is(err, types.ErrUnknownProvider))
}

func TestGetChatModel_StrategyErrorPassesThrough(t *testing.T) {
	buildErr := errors.New("sdk rejected config")
	failing := testutil.NewMockChatModelFactory(types.ProviderTypeOpenAI)
	failing.SetCreateError(buildErr)
	registry, err := factory.NewRegistry(map[types.ProviderType]types.ChatModelFactory{
		types.ProviderTypeOpenAI: failing,
	})
	require.NoError(t, err)

	r := New(registry, settings.NewStatic(openAISettings()))

	model, err := r.GetChatModel(types.RequestContext{ModelName: "gpt-4"})
	assert.Nil(t, model)
	assert.Same(t, buildErr, err)
}

func TestGetChatModel_Metrics(t *testing.T) {
	registry, _ := newRecordingRegistry(t)
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	r := New(registry, settings.NewStatic(openAISettings()), WithMetrics(collector))

	_, err = r.GetChatModel(types.RequestContext{ModelName: "gpt-4"})
	require.NoError(t, err)
	_, err = r.GetChatModel(types.RequestContext{ModelName: "claude", Provider: types.ProviderTypeAnthropic})
	require.NoError(t, err)
	_, err = r.GetChatModel(types.RequestContext{ModelName: "x", Provider: types.ProviderType("nope")})
	require.Error(t, err)

	count, err := promtest.GatherAndCount(reg, "chatmodel_client_builds_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = promtest.GatherAndCount(reg, "chatmodel_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGetChatModel_DefaultRegistry(t *testing.T) {
	registry, err := factory.NewDefaultRegistry(factory.Credentials{
		types.ProviderTypeOpenAI: {APIKey: "sk-test"},
	})
	require.NoError(t, err)

	r := New(registry, settings.NewStatic(openAISettings()))

	model, err := r.GetChatModel(types.RequestContext{ModelName: "gpt-4"})
	require.NoError(t, err)
	assert.Equal(t, types.ProviderTypeOpenAI, model.Type())
	assert.Equal(t, types.DefaultMaxOutputTokens, model.Config().MaxTokens)
	assert.NotEmpty(t, model.ID())
}

func TestGetChatModel_Concurrent(t *testing.T) {
	registry, recorders := newRecordingRegistry(t)
	r := New(registry, settings.NewStatic(openAISettings()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.GetChatModel(types.RequestContext{ModelName: "gpt-4"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, recorders[types.ProviderTypeOpenAI].GetCreateCallCount())
}
