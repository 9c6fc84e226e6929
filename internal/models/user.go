// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an identity record. Email is the identity key and is stored
// case-sensitively; Password holds the bcrypt hash, never the plaintext.
// Users are insert-only: there is no update or delete path.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
