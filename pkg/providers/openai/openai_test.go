package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/common"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

func testConfig() types.ModelConfig {
	return types.ModelConfig{
		ModelName:   "gpt-4",
		Temperature: 0.7,
		MaxRetries:  3,
		TopP:        1.0,
		Timeout:     30,
		MaxTokens:   types.DefaultMaxOutputTokens,
	}
}

func TestFactory_CreateChatModel(t *testing.T) {
	factory := NewFactory(common.Credentials{APIKey: "sk-test"})
	assert.Equal(t, types.ProviderTypeOpenAI, factory.Type())

	model, err := factory.CreateChatModel(testConfig())
	require.NoError(t, err)

	chatModel, ok := model.(*ChatModel)
	require.True(t, ok, "expected *ChatModel, got %T", model)
	assert.Equal(t, types.ProviderTypeOpenAI, chatModel.Type())
	assert.Equal(t, testConfig(), chatModel.Config())
	assert.Equal(t, DefaultBaseURL, chatModel.BaseURL())
	assert.NotNil(t, chatModel.Client())
	assert.NotEmpty(t, chatModel.ID())
	assert.Nil(t, chatModel.Limiter())
}

func TestCompatibleFactories(t *testing.T) {
	tests := []struct {
		name         string
		factory      *Factory
		providerType types.ProviderType
		baseURL      string
		limited      bool
	}{
		{"ollama", NewOllamaFactory(common.Credentials{}), types.ProviderTypeOllama, DefaultOllamaBaseURL, false},
		{"lmstudio", NewLMStudioFactory(common.Credentials{}), types.ProviderTypeLMStudio, DefaultLMStudioBaseURL, false},
		{"gpt4all", NewGPT4AllFactory(common.Credentials{}), types.ProviderTypeGPT4All, DefaultGPT4AllBaseURL, false},
		{"mistral", NewMistralFactory(common.Credentials{APIKey: "m-key"}), types.ProviderTypeMistral, DefaultMistralBaseURL, false},
		{"groq", NewGroqFactory(common.Credentials{APIKey: "gsk-key"}), types.ProviderTypeGroq, DefaultGroqBaseURL, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.factory.CreateChatModel(testConfig())
			require.NoError(t, err)

			chatModel := model.(*ChatModel)
			assert.Equal(t, tt.providerType, chatModel.Type())
			assert.Equal(t, tt.baseURL, chatModel.BaseURL())
			assert.Equal(t, tt.limited, chatModel.Limiter() != nil)
		})
	}
}

func TestCompatibleFactory_BaseURLOverride(t *testing.T) {
	factory := NewOllamaFactory(common.Credentials{BaseURL: "http://gpu-box:11434/v1/", BearerToken: "proxy"})

	model, err := factory.CreateChatModel(testConfig())
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:11434/v1", model.(*ChatModel).BaseURL())
}

func TestGroqFactory_RateLimitOverride(t *testing.T) {
	factory := NewGroqFactory(common.Credentials{APIKey: "gsk-key"}, WithRateLimit(common.RateLimit{}))

	model, err := factory.CreateChatModel(testConfig())
	require.NoError(t, err)
	assert.Nil(t, model.(*ChatModel).Limiter())
}

func TestFactory_HandlesShareRateLimit(t *testing.T) {
	factory := NewGroqFactory(common.Credentials{APIKey: "gsk-key"})

	handles := make([]*ChatModel, 5)
	for i := range handles {
		model, err := factory.CreateChatModel(testConfig())
		require.NoError(t, err)
		handles[i] = model.(*ChatModel)
	}

	assert.NotEqual(t, handles[0].ID(), handles[1].ID())
	for _, h := range handles[1:] {
		assert.Same(t, handles[0].Limiter(), h.Limiter())
	}

	allowed := 0
	for _, h := range handles {
		for i := 0; i < DefaultGroqRateLimit.RequestsPerMinute; i++ {
			if h.Limiter().Allow() {
				allowed++
			}
		}
	}
	assert.Equal(t, DefaultGroqRateLimit.RequestsPerMinute, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := common.RateLimit{RequestsPerMinute: 1, Burst: 1}.NewLimiter()
	middleware := rateLimitMiddleware(limiter)

	calls := 0
	next := func(*http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: http.StatusOK}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "http://groq.test/chat/completions", nil)
	resp, err := middleware(req, next)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = middleware(req.WithContext(ctx), next)
	assert.Error(t, err, "budget exhausted within the deadline")
	assert.Equal(t, 1, calls)
}

func TestGroqFactory_RequestsGoThroughLimiter(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	factory := NewGroqFactory(
		common.Credentials{APIKey: "gsk-key", BaseURL: server.URL},
		WithRateLimit(common.RateLimit{RequestsPerMinute: 1, Burst: 1}),
	)
	cfg := testConfig()
	cfg.MaxRetries = 0

	first, err := factory.CreateChatModel(cfg)
	require.NoError(t, err)
	second, err := factory.CreateChatModel(cfg)
	require.NoError(t, err)

	_, err = first.(*ChatModel).Client().Models.List(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = second.(*ChatModel).Client().Models.List(ctx)
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
