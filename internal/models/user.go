// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account. Usernames are unique and never change.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:30" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `gorm:"type:text;not null;default:''" json:"bio"`
	Avatar    string    `gorm:"not null;default:''" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
