// Package gemini provides the Google Gemini construction strategy, backed by
// the Google GenAI SDK on the Gemini API backend.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/common"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// ChatModel is a Gemini client handle.
type ChatModel struct {
	common.BaseChatModel
	client *genai.Client
}

// Client returns the underlying SDK client.
func (m *ChatModel) Client() *genai.Client {
	return m.client
}

// Factory builds Gemini handles.
type Factory struct {
	creds common.Credentials
}

func NewFactory(creds common.Credentials) *Factory {
	return &Factory{creds: creds}
}

func (f *Factory) Type() types.ProviderType {
	return types.ProviderTypeGemini
}

// CreateChatModel builds an SDK client configured from cfg. The SDK rejects a
// missing API key at this point, so unlike the other strategies this one can fail.
// cfg.MaxRetries is not applied: the GenAI client has no retry setting.
func (f *Factory) CreateChatModel(cfg types.ModelConfig) (types.ChatModel, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     f.creds.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: common.NewHTTPClient(f.creds),
		HTTPOptions: genai.HTTPOptions{
			BaseURL: f.creds.BaseURL,
		},
	}
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		clientConfig.HTTPOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	return &ChatModel{
		BaseChatModel: common.NewBaseChatModel(types.ProviderTypeGemini, cfg),
		client:        client,
	}, nil
}
