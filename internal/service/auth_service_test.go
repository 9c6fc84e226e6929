package service

import (
	"context"
	"testing"
	"time"

	"murmur/internal/auth"
	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(userRepo *userRepoStub) *AuthService {
	return NewAuthService(
		userRepo,
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewTokenIssuer("service-test-secret", 30*time.Minute),
	)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success stores a hash, never the plaintext", func(t *testing.T) {
		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 1
			created = u
			return nil
		}

		svc := newAuthService(repo)
		user, err := svc.Register(ctx, "a@x.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		require.NotNil(t, created)
		assert.NotEqual(t, "pw", created.Password)
		assert.NotEmpty(t, created.Password)
	})

	t.Run("Existing email yields Conflict", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, Email: "a@x.com"}, nil
		}

		svc := newAuthService(repo)
		_, err := svc.Register(ctx, "a@x.com", "pw")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("Store-level duplicate propagates as Conflict", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewConflictError("Email already registered")
		}

		svc := newAuthService(repo)
		_, err := svc.Register(ctx, "a@x.com", "pw")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("right-password")
	require.NoError(t, err)

	knownUser := &models.User{ID: 1, Email: "a@x.com", Password: hash}

	tests := []struct {
		name     string
		lookup   func(context.Context, string) (*models.User, error)
		password string
		wantOK   bool
	}{
		{
			name:     "Valid credentials",
			lookup:   func(_ context.Context, _ string) (*models.User, error) { return knownUser, nil },
			password: "right-password",
			wantOK:   true,
		},
		{
			name:     "Wrong password",
			lookup:   func(_ context.Context, _ string) (*models.User, error) { return knownUser, nil },
			password: "wrong-password",
		},
		{
			name:     "Unknown user",
			lookup:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
			password: "right-password",
		},
	}

	var failureMessages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopUserRepo()
			repo.getByEmailFn = tt.lookup

			svc := newAuthService(repo)
			token, user, err := svc.Login(ctx, "a@x.com", tt.password, now)
			if tt.wantOK {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, knownUser.Email, user.Email)
				return
			}

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			failureMessages = append(failureMessages, appErr.Message)
		})
	}

	// unknown user and wrong password must be indistinguishable
	require.Len(t, failureMessages, 2)
	assert.Equal(t, failureMessages[0], failureMessages[1])
}

func TestAuthService_UserFromToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "a@x.com" {
			return &models.User{ID: 1, Email: "a@x.com"}, nil
		}
		return nil, nil
	}
	svc := newAuthService(repo)

	issue := func(email string) string {
		token, err := svc.tokens.Issue(email, now)
		require.NoError(t, err)
		return token
	}

	t.Run("Valid token resolves the user", func(t *testing.T) {
		user, err := svc.UserFromToken(ctx, issue("a@x.com"), now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("Repeated resolution returns the same identity", func(t *testing.T) {
		token := issue("a@x.com")
		at := now.Add(time.Minute)
		first, err := svc.UserFromToken(ctx, token, at)
		require.NoError(t, err)
		second, err := svc.UserFromToken(ctx, token, at)
		require.NoError(t, err)
		assert.Equal(t, first.Email, second.Email)
	})

	t.Run("Expired token reports expiry distinctly", func(t *testing.T) {
		_, err := svc.UserFromToken(ctx, issue("a@x.com"), now.Add(31*time.Minute))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "TOKEN_EXPIRED", appErr.Code)
	})

	t.Run("Garbage token is unauthorized", func(t *testing.T) {
		_, err := svc.UserFromToken(ctx, "not-a-token", now)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("Well-signed token for unknown user reads as invalid, not expired", func(t *testing.T) {
		_, err := svc.UserFromToken(ctx, issue("ghost@x.com"), now.Add(time.Minute))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}
