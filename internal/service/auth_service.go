package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"
	"gymwell/gym-app/internal/security"
)

var errInvalidCredentials = apperror.Unauthorized("invalid username or password")

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  *domain.Identity
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Authenticate decodes a session token into the calling principal.
	Authenticate(token string) (domain.Caller, error)
	Me(ctx context.Context, caller domain.Caller) (*domain.Identity, error)
}

// authService implements the AuthService interface.
type authService struct {
	identities repository.IdentityRepository
	tokens     *security.TokenManager
	hasher     *security.PasswordHasher
}

func NewAuthService(identities repository.IdentityRepository, tokens *security.TokenManager, hasher *security.PasswordHasher) AuthService {
	return &authService{
		identities: identities,
		tokens:     tokens,
		hasher:     hasher,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Validation("username and password are required")
	}

	identity, err := s.identities.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, storeError("get identity", err)
	}

	if err := s.hasher.Compare(identity.PasswordHash, password); err != nil {
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(identity)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Identity: identity}, nil
}

func (s *authService) Authenticate(token string) (domain.Caller, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return domain.Caller{}, apperror.New(apperror.ErrForbidden, "token has expired", err)
		}
		return domain.Caller{}, apperror.New(apperror.ErrForbidden, "invalid token", err)
	}
	return domain.Caller{ID: claims.UserID, Role: claims.Role}, nil
}

func (s *authService) Me(ctx context.Context, caller domain.Caller) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, storeError("get identity", err)
	}
	return identity, nil
}
