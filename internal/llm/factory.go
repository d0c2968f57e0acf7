package llm

import (
	"fmt"
)

const defaultOllamaHost = "http://localhost:11434"

// ProviderConfig is everything needed to build a Provider. The credential is
// passed in explicitly; providers never read the environment themselves.
type ProviderConfig struct {
	Type    string
	Model   string
	APIKey  string
	BaseURL string
}

// NewProvider creates a new LLM provider based on the given configuration.
// Supported provider types: "openai", "openrouter", "anthropic", "ollama".
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
		}
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		host := cfg.BaseURL
		if host == "" {
			host = defaultOllamaHost
		}
		return NewOllamaProvider(host, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Type)
	}
}
