package security

import (
	"testing"
	"time"

	"gymwell/gym-app/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", 8*time.Hour)
	fixed := time.Now().Truncate(time.Second)
	m.now = func() time.Time { return fixed }

	token, expiresAt, err := m.Generate(&domain.Identity{ID: 42, Role: domain.RoleTrainer})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(8*time.Hour), expiresAt)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleTrainer, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixed.Add(8*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("s", 0)
	assert.Equal(t, 8*time.Hour, m.TTL())
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Generate(&domain.Identity{ID: 1, Role: domain.RoleStudent})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Generate(&domain.Identity{ID: 1, Role: domain.RoleStudent})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	claims := &Claims{
		UserID: 3,
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher()
	hash, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
