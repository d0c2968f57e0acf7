package llm

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider for the OpenRouter API, which is
// OpenAI-compatible. An empty baseURL uses the public OpenRouter endpoint.
func NewOpenRouterProvider(apiKey, model, baseURL string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	p := NewOpenAIProvider(apiKey, model, baseURL)
	p.name = "openrouter"
	return p
}
