package repository

import (
	"context"
	"errors"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Exists(ctx context.Context, id uint) (bool, error)
	GetWithLikes(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, logger: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	cache.InvalidatePostLists(ctx)
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	defer observability.TrackQuery("exists", "posts")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		r.logger.LogError(ctx, err, "exists")
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// GetWithLikes fetches a single post through the same aggregate shape as
// List, filtered by id, so the derived like count is computed identically
// on both paths.
func (r *postRepository) GetWithLikes(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get_with_likes", "posts")()

	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.withLikeCounts(r.db.WithContext(ctx)).
			Where("posts.id = ?", id).
			First(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		r.logger.LogError(ctx, err, "get_with_likes")
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns posts with their like counts under the given sort policy.
// The join, grouping, counting, and ordering all happen in one query; the
// application never joins in memory.
func (r *postRepository) List(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostListKey(sort, limit, offset), &posts, cache.PostListTTL, func() error {
		base := r.withLikeCounts(r.db.WithContext(ctx))
		return r.applySort(base, sort).
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	if err != nil {
		r.logger.LogError(ctx, err, "list")
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// withLikeCounts outer-joins likes onto posts and counts matched rows per
// post. The outer join keeps zero-like posts in the result with count 0.
// The count is a raw row count: duplicate likes by one user count twice.
func (r *postRepository) withLikeCounts(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select("posts.*, COUNT(likes.id) AS likes_count").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id")
}

// applySort appends the ORDER BY clause for the requested sort policy.
// likes_count is a SELECT alias from withLikeCounts; referencing it in
// ORDER BY within the same query level is valid in PostgreSQL and SQLite.
// Post id is a monotonic proxy for creation order, and doubles as the
// deterministic tie-break for most_likes.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case models.SortOldest:
		return db.Order("posts.id ASC")
	case models.SortMostLiked:
		return db.Order("likes_count DESC, posts.id ASC")
	default: // SortNewest; unrecognized values are rejected at the boundary
		return db.Order("posts.id DESC")
	}
}
