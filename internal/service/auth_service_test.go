package service

import (
	"context"
	"testing"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository/memory"
	"gymwell/gym-app/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *security.TokenManager) {
	t.Helper()
	hasher := security.NewPasswordHasher()
	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	identities := memory.NewIdentityRepo(domain.Identity{
		ID: 10, Username: "ana", PasswordHash: hash, Role: domain.RoleStudent,
	})
	tokens := security.NewTokenManager("test-secret", 0)
	return NewAuthService(identities, tokens, hasher), tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "ana", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(10), res.Identity.ID)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), res.ExpiresAt, time.Minute)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(10), claims.UserID)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "x")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Login(ctx, "ana", "")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Login(ctx, "ana", "wrong")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), "ana", "s3cret")
	require.NoError(t, err)

	caller, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{ID: 10, Role: domain.RoleStudent}, caller)

	_, err = svc.Authenticate("not-a-token")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	other := security.NewTokenManager("other-secret", time.Hour)
	forged, _, err := other.Generate(&domain.Identity{ID: 10, Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Authenticate(forged)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newAuthFixture(t)

	identity, err := svc.Me(context.Background(), domain.Caller{ID: 10, Role: domain.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "ana", identity.Username)

	_, err = svc.Me(context.Background(), domain.Caller{ID: 404, Role: domain.RoleStudent})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
