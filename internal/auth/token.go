package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel errors returned by Validate. An expired token is the only
// condition surfaced distinctly; every other failure is ErrInvalidToken so
// callers cannot tell a forged token from an unparsable one.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const (
	tokenIssuer = "murmur-api"
	// DefaultTokenTTL is the expiry window when none is configured.
	DefaultTokenTTL = 30 * time.Minute
)

// TokenIssuer mints and validates signed, expiring bearer tokens that
// embed a user's email as the identity claim. The signing secret is fixed
// for the life of the process; rotating it invalidates all outstanding
// tokens, which is acceptable since no session list exists to reconcile.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given HMAC secret and
// expiry window. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured expiry window.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token asserting the caller is authenticated as email until
// now plus the configured expiry window.
func (t *TokenIssuer) Issue(email string, now time.Time) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}

	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks tokenString against the signing secret at the given
// instant and returns the embedded email. Signature and parse failures
// return ErrInvalidToken; a well-signed token past its expiry returns
// ErrTokenExpired. The check is a pure single pass with no hidden state.
func (t *TokenIssuer) Validate(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		// jwt verifies the signature before the registered claims, so an
		// expired error can only surface once the signature checked out.
		// A tampered token therefore never reports as expired.
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
			return "", ErrInvalidToken
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
