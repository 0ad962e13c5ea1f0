package model

import "time"

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RevokedToken records a logged-out token id until it would have expired anyway.
type RevokedToken struct {
	JTI       string    `gorm:"primarykey;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
