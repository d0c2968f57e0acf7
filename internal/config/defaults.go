package config

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:     "gpt-3.5-turbo",
	ProviderOpenRouter: "openai/gpt-3.5-turbo",
	ProviderAnthropic:  "claude-haiku-4-5-20251001",
	ProviderOllama:     "llama3",
}

// DefaultPort matches the port the original Streamlit page listened on.
const DefaultPort = 8501

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Model:    defaultModels[ProviderOpenAI],
		UI: UIConfig{
			Title:       "🤖 My AI Assistant",
			Placeholder: "Ask me anything:",
			BusyText:    "Thinking...",
		},
		Server: ServerConfig{
			Port: DefaultPort,
		},
	}
}

// DefaultModel returns the default model for the given provider, falling
// back to the OpenAI default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}
