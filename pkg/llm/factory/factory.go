package factory

import (
	"fmt"

	"compliance-review-be/pkg/llm"
	"compliance-review-be/pkg/llm/huggingface"
	"compliance-review-be/pkg/llm/ollama"
	"compliance-review-be/pkg/llm/placeholder"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func NewCompletionProvider(cfg Config) (llm.CompletionProvider, error) {
	switch cfg.Provider {
	case "", "placeholder":
		return placeholder.NewProvider(), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
