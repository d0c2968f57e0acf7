package config

// ProviderType identifies a completion service backend.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level assistant configuration, corresponding to .assistant.yml.
type Config struct {
	Provider  ProviderType `yaml:"provider" koanf:"provider"`
	Model     string       `yaml:"model" koanf:"model"`
	BaseURL   string       `yaml:"base_url,omitempty" koanf:"base_url"`
	MaxTokens int          `yaml:"max_tokens,omitempty" koanf:"max_tokens"`
	UI        UIConfig     `yaml:"ui" koanf:"ui"`
	Server    ServerConfig `yaml:"server" koanf:"server"`

	// APIKey is read once from the provider's environment variable at load
	// time and is never written back to disk.
	APIKey string `yaml:"-" koanf:"-"`
}

// UIConfig holds the page texts shown by every front-end.
type UIConfig struct {
	Title       string `yaml:"title" koanf:"title"`
	Placeholder string `yaml:"placeholder" koanf:"placeholder"`
	BusyText    string `yaml:"busy_text" koanf:"busy_text"`
}

// ServerConfig holds settings for the browser front-end.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
