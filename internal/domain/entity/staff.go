package entity

import (
	"time"

	"gorm.io/gorm"
)

// StaffUser is a back-office account allowed to sign in
type StaffUser struct {
	ID           uint
	Email        string
	Name         string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}

// Session is acquired at login and cleared at logout
type Session struct {
	ID        string    `json:"id"`
	StaffID   uint      `json:"staffId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
