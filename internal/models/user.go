// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the devconnect application.
// Deletion is hard (no soft-delete column): the unique email must become
// available again once an account is removed.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
