// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a post. PostID must reference a post that
// existed at insertion time; the service layer checks this before creating.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"not null" json:"body"`
	PostID    uint      `gorm:"not null" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
