package models

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TaskID    uint64    `gorm:"not null" json:"task_id"`
	AuthorID  *uint64   `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task   Task  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
}
