package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event defines the contract for all assistant events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeNoteSaved      = "NOTE_SAVED"
	TypeNotesCleared   = "NOTES_CLEARED"
	TypeHistoryCleared = "HISTORY_CLEARED"
	TypeReplySent      = "REPLY_SENT"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func newEvent(eventType, requestId string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["request_id"] = requestId
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func NewNoteSaved(requestId, content string) BaseEvent {
	return newEvent(TypeNoteSaved, requestId, map[string]interface{}{"note": content})
}

func NewNotesCleared(requestId string) BaseEvent {
	return newEvent(TypeNotesCleared, requestId, nil)
}

func NewHistoryCleared(requestId string) BaseEvent {
	return newEvent(TypeHistoryCleared, requestId, nil)
}

// NewReplySent records which path answered a chat request.
func NewReplySent(requestId, source string) BaseEvent {
	return newEvent(TypeReplySent, requestId, map[string]interface{}{"source": source})
}

// Marshal encodes any Event as a BaseEvent envelope.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}
