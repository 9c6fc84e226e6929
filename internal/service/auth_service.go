// Package service contains the application's business logic between the
// HTTP handlers and the repositories.
package service

import (
	"context"
	"errors"
	"time"

	"murmur/internal/auth"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/repository"
)

// AuthService handles registration, login, and bearer-token resolution.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a user with a hashed password. A taken email yields
// Conflict, whether detected by the lookup or by the store's unique
// constraint during a concurrent registration.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Email: email, Password: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and mints a bearer token. An unknown email
// and a wrong password produce the identical error so callers cannot
// enumerate registered accounts.
func (s *AuthService) Login(ctx context.Context, email, password string, now time.Time) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.Password) {
		observability.LoginAttempts.WithLabelValues("failure").Inc()
		return "", nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.Email, now)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	return token, user, nil
}

// UserFromToken resolves a bearer token to its user. Expiry is the only
// condition surfaced distinctly; a valid signature over an identity with
// no matching user reads the same as a forged token.
func (s *AuthService) UserFromToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	email, err := s.tokens.Validate(token, now)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			observability.TokenValidations.WithLabelValues("expired").Inc()
			return nil, models.NewTokenExpiredError()
		}
		observability.TokenValidations.WithLabelValues("invalid").Inc()
		return nil, models.NewUnauthorizedError("Invalid token")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.TokenValidations.WithLabelValues("invalid").Inc()
		return nil, models.NewUnauthorizedError("Invalid token")
	}

	observability.TokenValidations.WithLabelValues("authenticated").Inc()
	return user, nil
}
