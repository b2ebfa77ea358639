package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-that-is-long-enough-0001"

func newManager(t *testing.T, now func() time.Time) *auth.JWTManager {
	t.Helper()
	m, err := auth.NewJWTManager(testSecret, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	if now != nil {
		m.WithClock(now)
	}
	return m
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher failed: %v", err)
	}

	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("Hash must not return the plaintext")
	}

	ok, err := h.Verify("correct horse", hash)
	if err != nil || !ok {
		t.Errorf("Expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong horse", hash)
	if err != nil {
		t.Errorf("Mismatch should not be an error, got %v", err)
	}
	if ok {
		t.Error("Expected mismatch for wrong password")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h, _ := auth.NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("SOCIAL_LOGIN_USER_PASS")
	b, _ := h.Hash("SOCIAL_LOGIN_USER_PASS")
	if a == b {
		t.Error("Expected distinct salts for the same secret")
	}
	if ok, _ := h.Verify("SOCIAL_LOGIN_USER_PASS", a); !ok {
		t.Error("Sentinel hash must be a valid, verifiable hash")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h, _ := auth.NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Verify("anything", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("Expected error for malformed hash")
	}
	if ok {
		t.Error("Malformed hash must never verify")
	}
}

func TestBcryptHasher_Limits(t *testing.T) {
	if _, err := auth.NewBcryptHasher(bcrypt.MaxCost + 1); err == nil {
		t.Error("Expected error for out of range cost")
	}

	h, _ := auth.NewBcryptHasher(bcrypt.MinCost)
	if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, auth.ErrPasswordTooLong) {
		t.Errorf("Expected ErrPasswordTooLong, got %v", err)
	}
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := auth.NewBcryptHasher(5)
	if err != nil {
		t.Fatalf("NewBcryptHasher failed: %v", err)
	}
	if h.Cost() != 5 {
		t.Errorf("Expected cost 5, got %d", h.Cost())
	}

	hash, _ := h.Hash("pw")
	if got, err := bcrypt.Cost([]byte(hash)); err != nil || got != 5 {
		t.Errorf("Expected hash cost 5, got %d (%v)", got, err)
	}
}

func TestJWTManager_IssueAndValidate(t *testing.T) {
	m := newManager(t, nil)

	token, err := m.Issue(42, "jane@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "jane@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != auth.SessionTTL {
		t.Errorf("Expected validity window %v, got %v", auth.SessionTTL, window)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	issued := time.Now().Add(-25 * time.Hour)
	issuer := newManager(t, func() time.Time { return issued })

	token, err := issuer.Issue(1, "jane@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := newManager(t, nil).Validate(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManager_StillValidJustBeforeExpiry(t *testing.T) {
	issued := time.Now().Add(-23 * time.Hour)
	token, _ := newManager(t, func() time.Time { return issued }).Issue(1, "jane@example.com")

	if _, err := newManager(t, nil).Validate(token); err != nil {
		t.Errorf("Expected token inside the 24h window to validate, got %v", err)
	}
}

func TestJWTManager_WrongKey(t *testing.T) {
	other, _ := auth.NewJWTManager("a-completely-different-signing-key-0002", zerolog.Nop())
	token, _ := other.Issue(1, "jane@example.com")

	if _, err := newManager(t, nil).Validate(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestJWTManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := auth.Claims{
		UserID: 1,
		Email:  "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := newManager(t, nil).Validate(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestJWTManager_Malformed(t *testing.T) {
	m := newManager(t, nil)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Validate(token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	if _, err := auth.NewJWTManager("", zerolog.Nop()); err == nil {
		t.Error("Expected error for empty secret")
	}
}
