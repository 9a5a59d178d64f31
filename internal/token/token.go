// Package token issues and verifies signed, self-contained session tokens.
//
// Tokens are stateless: there is no server-side revocation list, so a
// compromised token remains valid until its natural expiry.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/milrecord/milrecord/internal/models"
)

// TTL is the lifetime of an issued token.
const TTL = 24 * time.Hour

var (
	// ErrInvalid indicates a malformed token or a bad signature.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired indicates a well-formed token past its expiry. Callers
	// reject it the same way as ErrInvalid; the distinction exists for logs.
	ErrExpired = errors.New("expired token")
)

// claims carries the authenticated identity inside the JWT payload.
type claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies HMAC-signed session tokens.
type Service struct {
	secret []byte
	now    func() time.Time
}

// New constructs a Service signing with the given secret.
func New(secret string) *Service {
	return &Service{secret: []byte(secret), now: time.Now}
}

// NewWithClock constructs a Service with an injected clock, used by tests
// to exercise expiry boundaries.
func NewWithClock(secret string, now func() time.Time) *Service {
	return &Service{secret: []byte(secret), now: now}
}

// Issue signs a token for the given identity, expiring TTL from now.
func (s *Service) Issue(id models.Identity) (string, error) {
	issued := s.now()
	c := claims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(TTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns the
// identity it encodes.
func (s *Service) Verify(tokenString string) (models.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrExpired
		}
		return models.Identity{}, ErrInvalid
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || !c.Role.Valid() || c.Username == "" {
		return models.Identity{}, ErrInvalid
	}

	return models.Identity{ID: id, Username: c.Username, Role: c.Role}, nil
}
