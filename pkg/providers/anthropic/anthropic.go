// Package anthropic provides the Anthropic construction strategy, backed by the
// official Anthropic SDK.
package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/common"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

const DefaultBaseURL = "https://api.anthropic.com"

// ChatModel is an Anthropic client handle.
type ChatModel struct {
	common.BaseChatModel
	client  anthropic.Client
	baseURL string
}

// Client returns the underlying SDK client.
func (m *ChatModel) Client() *anthropic.Client {
	return &m.client
}

func (m *ChatModel) BaseURL() string {
	return m.baseURL
}

// Factory builds Anthropic handles.
type Factory struct {
	creds   common.Credentials
	baseURL string
}

func NewFactory(creds common.Credentials) *Factory {
	return &Factory{
		creds:   creds,
		baseURL: creds.ResolveBaseURL(DefaultBaseURL),
	}
}

func (f *Factory) Type() types.ProviderType {
	return types.ProviderTypeAnthropic
}

// CreateChatModel builds an SDK client configured from cfg. No request is sent.
func (f *Factory) CreateChatModel(cfg types.ModelConfig) (types.ChatModel, error) {
	opts := []option.RequestOption{
		option.WithBaseURL(f.baseURL),
		option.WithAPIKey(f.creds.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if timeout := cfg.RequestTimeout(); timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if httpClient := common.NewHTTPClient(f.creds); httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &ChatModel{
		BaseChatModel: common.NewBaseChatModel(types.ProviderTypeAnthropic, cfg),
		client:        anthropic.NewClient(opts...),
		baseURL:       f.baseURL,
	}, nil
}
