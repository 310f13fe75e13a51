package entity

import "time"

// Note is created only by the save: command.
type Note struct {
	Id        uint
	Content   string
	CreatedAt time.Time
}
