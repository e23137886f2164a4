package factory

import (
	"fmt"

	"chat-memory-be/pkg/llm"
	"chat-memory-be/pkg/llm/echo"
	"chat-memory-be/pkg/llm/ollama"
	"chat-memory-be/pkg/llm/openai"
)

// NewLLMProvider resolves the configured backend once at startup. There is
// no request-time branching: the returned provider stays active for the
// process lifetime.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "echo", "":
		return echo.NewEchoProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
