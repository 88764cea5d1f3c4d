package factory

import (
	"fmt"

	"ml-discovery-be/pkg/llm"
	"ml-discovery-be/pkg/llm/cortex"
	"ml-discovery-be/pkg/llm/ollama"
)

type Config struct {
	Provider string
	Model    string

	// Ollama
	BaseURL string

	// Cortex
	AccountURL string
	Token      string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "cortex":
		if cfg.AccountURL == "" || cfg.Token == "" {
			return nil, fmt.Errorf("cortex provider requires account URL and token")
		}
		return cortex.NewCortexProvider(cfg.AccountURL, cfg.Token, cfg.Model), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
