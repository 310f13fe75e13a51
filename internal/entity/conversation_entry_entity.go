package entity

import "time"

// ConversationEntry is one persisted line of the conversation log. Role is
// "user" or "assistant"; ids grow in write order.
type ConversationEntry struct {
	Id        uint
	Role      string
	Content   string
	CreatedAt time.Time
}
