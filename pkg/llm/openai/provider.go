package openai

import (
	"context"
	"fmt"

	"jarvina-be/pkg/llm"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// OpenAIProvider talks to any OpenAI-compatible endpoint, OpenRouter by
// default.
type OpenAIProvider struct {
	ModelName string
	chat      *einoopenai.ChatModel
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(ctx context.Context, apiKey, baseURL, modelName string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w (set OPENROUTER_API_KEY)", llm.ErrMissingCredential)
	}

	chat, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	return &OpenAIProvider{ModelName: modelName, chat: chat}, nil
}

func toSchemaMessages(history []llm.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, schema.SystemMessage(msg.Content))
		case llm.RoleModel, llm.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}
	return messages
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	callOpts := []model.Option{model.WithTemperature(float32(options.Temperature))}
	if options.MaxTokens > 0 {
		callOpts = append(callOpts, model.WithMaxTokens(options.MaxTokens))
	}
	if options.Model != "" {
		callOpts = append(callOpts, model.WithModel(options.Model))
	}

	out, err := p.chat.Generate(ctx, toSchemaMessages(history), callOpts...)
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	return out.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
