package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// unusablePasswordPrefix marks a hash that can never match a password.
const unusablePasswordPrefix = "!"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Name         string    `gorm:"type:varchar(255);not null;default:''" json:"name"`
	FirstName    string    `gorm:"type:varchar(150);not null;default:''" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150);not null;default:''" json:"last_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	DateJoined   time.Time `gorm:"not null" json:"date_joined"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	AuthToken *AuthToken `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeSave fills the display name from first/last name when it is blank.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Name == "" && (u.FirstName != "" || u.LastName != "") {
		u.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return nil
}

// HasUsablePassword reports whether the stored hash can ever verify a password.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != "" && !strings.HasPrefix(u.PasswordHash, unusablePasswordPrefix)
}
