package auth

import (
	"testing"
	"time"

	"healthvault/config"
	domainerrors "healthvault/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Auth = &config.AuthConfig{AccessTokenTTLMinutes: 30}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.Issue("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestJWTService_AccessTokenTTL(t *testing.T) {
	svc := newTestJWTService(t)

	assert.Equal(t, 30*time.Minute, svc.AccessTokenTTL())
}

func TestJWTService_ValidateExpiredToken(t *testing.T) {
	expired := &jwtService{secret: "test-secret", ttl: -time.Minute}

	token, err := expired.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = expired.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_ValidateWrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	other := &jwtService{secret: "other-secret", ttl: time.Minute}

	token, err := other.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_ValidateMalformedToken(t *testing.T) {
	svc := newTestJWTService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(token)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	}
}

func TestJWTService_ValidateMissingSubject(t *testing.T) {
	svc := newTestJWTService(t)

	// A signed, unexpired token without a subject claim is still invalid.
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_ValidateMissingExpiry(t *testing.T) {
	svc := newTestJWTService(t)

	claims := jwt.RegisteredClaims{Subject: "alice@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}
