package dto

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant model system"`
	Content string `json:"content"`
}

type SendChatRequest struct {
	Prompt      string           `json:"prompt"`
	Messages    []ChatMessageDTO `json:"messages,omitempty" validate:"omitempty,dive"`
	Temperature *float64         `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens   *int             `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
}

type SendChatResponse struct {
	Response  string `json:"response"`
	Source    string `json:"source"` // "command" | "reply" | "model"
	RequestId string `json:"request_id"`
}
