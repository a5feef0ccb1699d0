// Package auth provides JWT issuance/validation and password hashing.
//
// Tokens are stateless HS256 JWTs: the subject claim carries the
// internal user ID, so no session storage is needed. Clients send the
// token back in the Authorization header as "Bearer <token>".
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "vibenotes"

// TokenService signs and verifies access tokens with an HMAC secret.
// The same secret must be used for both operations.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret should be at least
// 32 bytes of random data in production; anything under 16 is rejected.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims embeds the registered claim set; the user ID lives in "sub".
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs an access token for the given userID.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, s.ttl)
}

// GenerateWithDuration creates a token with a custom expiry. Used by
// tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the userID it
// encodes. The signature, expiry, issuer, and signing method are all
// checked; WithValidMethods closes off algorithm-confusion tricks.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
