package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jarvina-be/pkg/llm"

	"github.com/ollama/ollama/api"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	client    *api.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) (*OllamaProvider, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama base url %q: %w", baseURL, err)
	}

	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		client: api.NewClient(base, &http.Client{
			Timeout: 120 * time.Second,
		}),
	}, nil
}

func toOllamaMessages(history []llm.Message) []api.Message {
	messages := make([]api.Message, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == llm.RoleModel {
			role = llm.RoleAssistant
		}
		messages[i] = api.Message{Role: role, Content: msg.Content}
	}
	return messages
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	stream := false
	req := &api.ChatRequest{
		Model:    model,
		Messages: toOllamaMessages(history),
		Stream:   &stream,
		Options: map[string]any{
			"temperature": options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		req.Options["num_predict"] = options.MaxTokens
	}

	var content strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}

	return content.String(), nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return o.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
