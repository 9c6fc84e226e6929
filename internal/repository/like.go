package repository

import (
	"context"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, logger: observability.NewRepoLogger("likes")}
}

// Create inserts the like row. There is no per-(user, post) dedup: each
// insert adds one to the post's raw like count.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	defer observability.TrackQuery("create", "likes")()

	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, like.PostID)
	cache.InvalidatePostLists(ctx)
	return nil
}
