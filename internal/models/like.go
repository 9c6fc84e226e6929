package models

import "time"

// Like represents a user's like on a post.
//
// There is deliberately no unique index on (UserID, PostID): the like count
// is a raw row count, so a user liking the same post twice counts twice.
// This matches the system's observed behavior and is preserved as-is.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
