package repository

import (
	"context"
	"regexp"
	"testing"

	"murmur/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Body: "first post", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		postID uint
		count  int64
		want   bool
	}{
		{name: "Existing post", postID: 1, count: 1, want: true},
		{name: "Missing post", postID: 42, count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE id = $1`)).
				WithArgs(tt.postID).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := repo.Exists(ctx, tt.postID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetWithLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Aggregate shape with like count", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "body", "user_id", "likes_count"}).
			AddRow(1, "hello", 10, 3)
		mock.ExpectQuery(`SELECT posts\.\*, COUNT\(likes\.id\) AS likes_count FROM "posts" LEFT JOIN likes ON likes\.post_id = posts\.id WHERE posts\.id = \$1 GROUP BY posts\.id`).
			WithArgs(1, 1).
			WillReturnRows(rows)

		post, err := repo.GetWithLikes(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.ID)
		assert.Equal(t, "hello", post.Body)
		assert.Equal(t, 3, post.LikesCount)
	})

	t.Run("Missing post maps to NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT posts\.\*, COUNT\(likes\.id\) AS likes_count FROM "posts" LEFT JOIN likes`).
			WithArgs(99, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id", "likes_count"}))

		_, err := repo.GetWithLikes(ctx, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_SortPolicies(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		sort      string
		wantOrder string
	}{
		{name: "Newest orders by id descending", sort: models.SortNewest, wantOrder: `ORDER BY posts\.id DESC`},
		{name: "Oldest orders by id ascending", sort: models.SortOldest, wantOrder: `ORDER BY posts\.id ASC`},
		{name: "Most liked orders by count with id tie-break", sort: models.SortMostLiked, wantOrder: `ORDER BY likes_count DESC, posts\.id ASC`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			rows := sqlmock.NewRows([]string{"id", "body", "user_id", "likes_count"}).
				AddRow(2, "second", 1, 1).
				AddRow(1, "first", 1, 0)
			mock.ExpectQuery(`SELECT posts\.\*, COUNT\(likes\.id\) AS likes_count FROM "posts" LEFT JOIN likes ON likes\.post_id = posts\.id GROUP BY posts\.id ` + tt.wantOrder).
				WillReturnRows(rows)

			posts, err := repo.List(ctx, tt.sort, 20, 0)
			require.NoError(t, err)
			require.Len(t, posts, 2)
			// zero-like posts still appear, with count 0
			assert.Equal(t, 1, posts[0].LikesCount)
			assert.Equal(t, 0, posts[1].LikesCount)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
