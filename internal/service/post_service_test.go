package service

import (
	"context"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &models.User{ID: 7, Email: "a@x.com"}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Success assigns the authenticated user as owner", func(t *testing.T) {
		var created *models.Post
		posts := noopPostRepo()
		posts.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 1
			created = p
			return nil
		}

		svc := NewPostService(posts, noopCommentRepo(), noopLikeRepo())
		post, err := svc.CreatePost(ctx, testUser, CreatePostInput{Body: "hello", ImageURL: "https://img.example/x.png"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.ID)
		assert.Equal(t, testUser.ID, created.UserID)
		assert.Equal(t, "https://img.example/x.png", created.ImageURL)
	})

	t.Run("Empty body is rejected", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopCommentRepo(), noopLikeRepo())
		_, err := svc.CreatePost(ctx, testUser, CreatePostInput{})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestPostService_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Post existence is checked before insert", func(t *testing.T) {
		posts := noopPostRepo()
		posts.existsFn = func(_ context.Context, id uint) (bool, error) { return id == 1, nil }

		var created *models.Comment
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 10
			created = c
			return nil
		}

		svc := NewPostService(posts, comments, noopLikeRepo())
		comment, err := svc.CreateComment(ctx, testUser, 1, "nice")
		require.NoError(t, err)
		assert.Equal(t, uint(10), comment.ID)
		assert.Equal(t, uint(1), created.PostID)
		assert.Equal(t, testUser.ID, created.UserID)
	})

	t.Run("Missing post yields NotFound and no insert", func(t *testing.T) {
		posts := noopPostRepo()
		posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }

		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, _ *models.Comment) error {
			t.Fatal("comment must not be inserted when the post is missing")
			return nil
		}

		svc := NewPostService(posts, comments, noopLikeRepo())
		_, err := svc.CreateComment(ctx, testUser, 99, "orphan")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Empty body is rejected", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopCommentRepo(), noopLikeRepo())
		_, err := svc.CreateComment(ctx, testUser, 1, "")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestPostService_LikePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var created *models.Like
		likes := noopLikeRepo()
		likes.createFn = func(_ context.Context, l *models.Like) error {
			l.ID = 5
			created = l
			return nil
		}

		svc := NewPostService(noopPostRepo(), noopCommentRepo(), likes)
		like, err := svc.LikePost(ctx, testUser, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(5), like.ID)
		assert.Equal(t, testUser.ID, created.UserID)
	})

	t.Run("Missing post yields NotFound", func(t *testing.T) {
		posts := noopPostRepo()
		posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }

		svc := NewPostService(posts, noopCommentRepo(), noopLikeRepo())
		_, err := svc.LikePost(ctx, testUser, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Repeat likes are not deduplicated", func(t *testing.T) {
		inserts := 0
		likes := noopLikeRepo()
		likes.createFn = func(_ context.Context, _ *models.Like) error {
			inserts++
			return nil
		}

		svc := NewPostService(noopPostRepo(), noopCommentRepo(), likes)
		_, err := svc.LikePost(ctx, testUser, 1)
		require.NoError(t, err)
		_, err = svc.LikePost(ctx, testUser, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, inserts)
	})
}

func TestPostService_ListPosts(t *testing.T) {
	ctx := context.Background()

	var gotSort string
	posts := noopPostRepo()
	posts.listFn = func(_ context.Context, sort string, limit, offset int) ([]*models.Post, error) {
		gotSort = sort
		return []*models.Post{{ID: 2, LikesCount: 1}, {ID: 1, LikesCount: 0}}, nil
	}

	svc := NewPostService(posts, noopCommentRepo(), noopLikeRepo())
	list, err := svc.ListPosts(ctx, models.SortMostLiked, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, models.SortMostLiked, gotSort)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].LikesCount)
}

func TestPostService_GetPostWithComments(t *testing.T) {
	ctx := context.Background()

	t.Run("Combines aggregate post and thread", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getWithLikesFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Body: "hello", LikesCount: 2}, nil
		}
		comments := noopCommentRepo()
		comments.getByPostIDFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
			return []*models.Comment{{ID: 1, PostID: postID, Body: "first"}}, nil
		}

		svc := NewPostService(posts, comments, noopLikeRepo())
		result, err := svc.GetPostWithComments(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), result.Post.ID)
		assert.Equal(t, 2, result.Post.LikesCount)
		require.Len(t, result.Comments, 1)
		assert.Equal(t, "first", result.Comments[0].Body)
	})

	t.Run("Missing post yields NotFound", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getWithLikesFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}

		svc := NewPostService(posts, noopCommentRepo(), noopLikeRepo())
		_, err := svc.GetPostWithComments(ctx, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
