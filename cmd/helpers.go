package cmd

import (
	"fmt"

	"github.com/ziadkadry99/ask-assistant/internal/assistant"
	"github.com/ziadkadry99/ask-assistant/internal/config"
	"github.com/ziadkadry99/ask-assistant/internal/llm"
	"github.com/ziadkadry99/ask-assistant/internal/page"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `assistant init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createHandlerFromConfig builds the query handler for the configured provider.
func createHandlerFromConfig(cfg *config.Config) (*assistant.Handler, error) {
	provider, err := llm.NewProvider(llm.ProviderConfig{
		Type:    string(cfg.Provider),
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	return assistant.New(provider, assistant.Options{
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Verbose:   verbose,
	}), nil
}

// setupPage loads the config and returns the page every front-end draws.
func setupPage() (*config.Config, *page.Page, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	handler, err := createHandlerFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	p := page.New(handler, page.Texts{
		Title:       cfg.UI.Title,
		Placeholder: cfg.UI.Placeholder,
		BusyText:    cfg.UI.BusyText,
	})
	return cfg, p, nil
}
