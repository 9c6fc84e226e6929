package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// PostService implements the read-path aggregation plus the three write
// operations. Every write takes the already-authenticated user resolved
// by the boundary layer; the service never re-derives identity.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Body     string
	ImageURL string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

func (s *PostService) CreatePost(ctx context.Context, user *models.User, in CreatePostInput) (*models.Post, error) {
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	post := &models.Post{
		Body:     in.Body,
		ImageURL: in.ImageURL,
		UserID:   user.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment inserts a comment after checking the post exists. The
// check happens at insertion time; referential integrity afterwards is
// the store's concern.
func (s *PostService) CreateComment(ctx context.Context, user *models.User, postID uint, body string) (*models.Comment, error) {
	if body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{
		Body:   body,
		PostID: postID,
		UserID: user.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// LikePost inserts a like row after checking the post exists. Likes are
// not deduplicated per (user, post): the count is a raw row count.
func (s *PostService) LikePost(ctx context.Context, user *models.User, postID uint) (*models.Like, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	like := &models.Like{
		PostID: postID,
		UserID: user.ID,
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}

// ListPosts returns posts with like counts under the given sort policy.
func (s *PostService) ListPosts(ctx context.Context, sort string, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, sort, limit, offset)
}

// GetComments returns a post's comment thread in insertion order.
func (s *PostService) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.GetByPostID(ctx, postID)
}

// GetPostWithComments combines the single-post aggregate lookup with the
// comment thread. A missing post yields NotFound.
func (s *PostService) GetPostWithComments(ctx context.Context, postID uint) (*models.PostWithComments, error) {
	post, err := s.postRepo.GetWithLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &models.PostWithComments{Post: post, Comments: comments}, nil
}
