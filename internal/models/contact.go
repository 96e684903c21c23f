package models

import "time"

type Contact struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Firstname string    `gorm:"type:varchar(100);not null;index:idx_contacts_name,priority:1" json:"firstname"`
	Lastname  string    `gorm:"type:varchar(100);not null;default:'';index:idx_contacts_name,priority:2" json:"lastname"`
	Phone     string    `gorm:"type:varchar(50);not null;default:''" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
