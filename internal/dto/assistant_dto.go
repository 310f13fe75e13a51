package dto

import "time"

type HistoryEntryResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type NoteResponse struct {
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

type ListQuery struct {
	Limit int `query:"limit" validate:"omitempty,gt=0,lte=500"`
}

// UpdateInstructionsRequest replaces the stored instructions; an empty
// string clears them.
type UpdateInstructionsRequest struct {
	Instructions string `json:"instructions"`
}

type InstructionsResponse struct {
	Instructions string `json:"instructions"`
}

type ExportRequest struct {
	Text     string `json:"text" validate:"required"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=100"`
}

type HealthResponse struct {
	Status       string `json:"status"` // "ok" | "degraded"
	ModelReady   bool   `json:"model_ready"`
	Provider     string `json:"provider"`
	ReplyPhrases int    `json:"reply_phrases"`
	PersonaName  string `json:"persona_name,omitempty"`
}
