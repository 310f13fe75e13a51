package model

import "time"

type ConversationEntry struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Role      string    `gorm:"type:varchar(20);not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ConversationEntry) TableName() string {
	return "conversation_entries"
}

// All lists every table owned by the service, in migration order.
func All() []interface{} {
	return []interface{}{
		&ConversationEntry{},
		&Note{},
	}
}
