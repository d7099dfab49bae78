package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "token"

	// DefaultTokenTTL is how long an issued session token stays valid.
	DefaultTokenTTL = 5 * time.Hour
)

var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Identity is the payload signed into a session token.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

type sessionClaims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with HS256.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewTokenService builds a TokenService. An empty secret falls back to a dev
// default outside production; production callers must configure JWT_SECRET.
func NewTokenService(secret string, env string) (*TokenService, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		if env == "production" {
			return nil, fmt.Errorf("JWT_SECRET required in production")
		}
		secret = "dev-secret"
	}
	return &TokenService{
		secret:   []byte(secret),
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
	}, nil
}

// TTL reports the validity window applied to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.tokenTTL
}

// Sign issues a session token for the given identity.
func (s *TokenService) Sign(identity Identity) (string, error) {
	if strings.TrimSpace(identity.Email) == "" {
		return "", errors.New("email is required")
	}

	now := s.now().UTC()
	claims := sessionClaims{
		Name:    identity.Name,
		Picture: identity.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token and returns the identity it carries.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		Email:   claims.Subject,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
