package models

import (
	"time"
)

// TaskAssignment links a task to an assigned contact.
type TaskAssignment struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	ContactID uint64    `gorm:"primarykey;index" json:"contact_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task    Task    `gorm:"foreignKey:TaskID" json:"-"`
	Contact Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}
