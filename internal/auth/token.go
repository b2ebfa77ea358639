package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// SessionTTL is the fixed validity window of an issued session token
const SessionTTL = 24 * time.Hour

// ErrInvalidToken covers malformed, expired and badly signed tokens alike
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload bound into a session token
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates session tokens
type TokenManager interface {
	Issue(userID int64, email string) (string, error)
	Validate(token string) (*Claims, error)
}

// JWTManager signs HS256 session tokens with a server-held key
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

// NewJWTManager creates a manager; the secret must already be validated by config
func NewJWTManager(secret string, log zerolog.Logger) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	return &JWTManager{
		secret: []byte(secret),
		ttl:    SessionTTL,
		now:    time.Now,
		log:    log.With().Str("component", "tokens").Logger(),
	}, nil
}

// WithClock overrides the time source, for tests
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// Issue signs a token binding userID and email, valid for SessionTTL
func (m *JWTManager) Issue(userID int64, email string) (string, error) {
	issuedAt := m.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token. Every failure collapses to ErrInvalidToken;
// the underlying reason is only logged.
func (m *JWTManager) Validate(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	parsed, err := parser.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		m.log.Debug().Err(err).Msg("Token rejected")
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		m.log.Debug().Msg("Token rejected: missing claims")
		return nil, ErrInvalidToken
	}
	return claims, nil
}
