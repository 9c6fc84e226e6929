package models

import "time"

// Sort policies accepted by the post listing endpoint. Any other value is
// rejected at the boundary before it reaches the repository.
const (
	SortNewest    = "new"
	SortOldest    = "old"
	SortMostLiked = "most_likes"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Body     string `gorm:"not null" json:"body"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	// LikesCount is not persisted; computed at query time from the
	// likes_count SELECT alias. Read-only so it never appears in INSERTs
	// and excluded from migration so no column is created.
	LikesCount int       `gorm:"->;-:migration" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostWithComments is the response shape for the single-post detail view.
type PostWithComments struct {
	Post     *Post      `json:"post"`
	Comments []*Comment `json:"comments"`
}
