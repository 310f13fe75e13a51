package factory

import (
	"context"
	"fmt"

	"jarvina-be/internal/constant"
	"jarvina-be/pkg/llm"
	"jarvina-be/pkg/llm/gemini"
	"jarvina-be/pkg/llm/ollama"
	"jarvina-be/pkg/llm/openai"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

// NewLLMProvider builds the single backend chosen at startup. A missing key
// yields an error wrapping llm.ErrMissingCredential.
func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		p, err := gemini.NewGeminiProvider(ctx, cfg.APIKey, orDefault(cfg.Model, constant.GeminiDefaultModel))
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOllama:
		p, err := ollama.NewOllamaProvider(
			orDefault(cfg.BaseURL, constant.OllamaDefaultBaseURL),
			orDefault(cfg.Model, constant.OllamaDefaultModel),
		)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOpenAI:
		p, err := openai.NewOpenAIProvider(ctx,
			cfg.APIKey,
			orDefault(cfg.BaseURL, constant.OpenAIDefaultBaseURL),
			orDefault(cfg.Model, constant.OpenAIDefaultModel),
		)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
