package models

import "time"

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User is a staff account.
type User struct {
	Base

	Name         string     `gorm:"size:255" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:150" json:"email"`
	Phone        string     `gorm:"size:50" json:"phone"`
	PasswordHash string     `gorm:"column:password_hash;size:255" json:"-"`
	Role         string     `gorm:"size:100;index" json:"role"`
	Status       string     `gorm:"size:32;default:active" json:"status"`
	LastActive   *time.Time `gorm:"column:last_active" json:"last_active,omitempty"`
}
