package factory

import (
	"fmt"

	"github.com/redcow77/module-5-test/pkg/llm"
	"github.com/redcow77/module-5-test/pkg/llm/anthropic"
	"github.com/redcow77/module-5-test/pkg/llm/huggingface"
	"github.com/redcow77/module-5-test/pkg/llm/ollama"
)

// NewLLMProvider builds the configured provider wrapped in a circuit breaker.
// A provider that needs a key but has none degrades to llm.Unavailable so
// callers can keep working without AI.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "anthropic", "":
		if apiKey == "" {
			return llm.Unavailable{Reason: "ANTHROPIC_API_KEY is not configured"}, nil
		}
		return llm.NewBreakerProvider("anthropic", anthropic.NewAnthropicProvider(apiKey, modelName)), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return llm.NewBreakerProvider("ollama", ollama.NewOllamaProvider(baseURL, modelName)), nil
	case "huggingface":
		if apiKey == "" {
			return llm.Unavailable{Reason: "HUGGINGFACE_API_KEY is not configured"}, nil
		}
		return llm.NewBreakerProvider("huggingface", huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName)), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
