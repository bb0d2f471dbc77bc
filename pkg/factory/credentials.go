package factory

import (
	"os"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/providers/common"
	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

// Credentials holds the fixed parameters of each provider's strategy.
// Providers without an entry get zero credentials.
type Credentials map[types.ProviderType]common.Credentials

// knownProviderEnvs maps each provider to the environment variables its
// credentials are read from.
var knownProviderEnvs = []struct {
	providerType   types.ProviderType
	apiKeyEnv      string
	baseURLEnv     string
	bearerTokenEnv string
}{
	{types.ProviderTypeOllama, "", "OLLAMA_BASE_URL", "OLLAMA_BEARER_TOKEN"},
	{types.ProviderTypeLMStudio, "", "LMSTUDIO_BASE_URL", "LMSTUDIO_BEARER_TOKEN"},
	{types.ProviderTypeGPT4All, "", "GPT4ALL_BASE_URL", "GPT4ALL_BEARER_TOKEN"},
	{types.ProviderTypeOpenAI, "OPENAI_API_KEY", "OPENAI_BASE_URL", ""},
	{types.ProviderTypeMistral, "MISTRAL_API_KEY", "MISTRAL_BASE_URL", ""},
	{types.ProviderTypeAnthropic, "ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", ""},
	{types.ProviderTypeGroq, "GROQ_API_KEY", "GROQ_BASE_URL", ""},
	{types.ProviderTypeGemini, "GEMINI_API_KEY", "GEMINI_BASE_URL", ""},
}

// CredentialsFromEnv reads every provider's credentials from the environment.
func CredentialsFromEnv() Credentials {
	creds := make(Credentials, len(knownProviderEnvs))
	for _, kp := range knownProviderEnvs {
		creds[kp.providerType] = common.Credentials{
			APIKey:      getenv(kp.apiKeyEnv),
			BaseURL:     getenv(kp.baseURLEnv),
			BearerToken: getenv(kp.bearerTokenEnv),
		}
	}
	return creds
}

func getenv(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}
