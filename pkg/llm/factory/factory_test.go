package factory

import (
	"context"
	"testing"

	"jarvina-be/pkg/llm"
	"jarvina-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("gemini without key is a credential error", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{Provider: ProviderGemini})
		assert.ErrorIs(t, err, llm.ErrMissingCredential)
	})

	t.Run("default provider is gemini", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{})
		assert.ErrorIs(t, err, llm.ErrMissingCredential)
	})

	t.Run("openai without key is a credential error", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{Provider: ProviderOpenAI})
		assert.ErrorIs(t, err, llm.ErrMissingCredential)
	})

	t.Run("ollama needs no key and applies defaults", func(t *testing.T) {
		p, err := NewLLMProvider(ctx, Config{Provider: ProviderOllama})
		require.NoError(t, err)
		op, ok := p.(*ollama.OllamaProvider)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434", op.BaseURL)
		assert.Equal(t, "llama3.1:8b", op.ModelName)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewLLMProvider(ctx, Config{Provider: "mistral-local"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, llm.ErrMissingCredential)
	})
}
