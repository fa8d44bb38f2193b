package ws

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func neverRevoked(string) bool { return false }

func TestSessionFromTokenValid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	token := signToken(t, "test_secret", jwt.MapClaims{
		"id":  float64(42),
		"jti": "session-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	userID, err := sessionFromToken(token, neverRevoked)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestSessionFromTokenRevoked(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	token := signToken(t, "test_secret", jwt.MapClaims{
		"id":  float64(42),
		"jti": "session-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	// A logged-out session is refused even though the signature is valid
	_, err := sessionFromToken(token, func(jti string) bool {
		return jti == "session-1"
	})
	assert.Error(t, err)
}

func TestSessionFromTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	token := signToken(t, "test_secret", jwt.MapClaims{
		"id":  float64(42),
		"jti": "session-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := sessionFromToken(token, neverRevoked)
	assert.Error(t, err)
}

func TestSessionFromTokenBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	token := signToken(t, "other_secret", jwt.MapClaims{
		"id":  float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := sessionFromToken(token, neverRevoked)
	assert.Error(t, err)

	_, err = sessionFromToken("not-a-token", neverRevoked)
	assert.Error(t, err)
}
