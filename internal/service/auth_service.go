package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// AuthService composes the credential store and the token manager into the
// login and refresh flows.
type AuthService struct {
	logins repository.LoginRepository
	tokens *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(logins repository.LoginRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{logins: logins, tokens: tokens}
}

// Login checks the credential against the logins table and issues a token
// for the username on a match. The primary check is the exact-match count
// query; when it misses, a bcrypt-hashed stored password is compared as
// well, so hashed and legacy rows both authenticate.
func (s *AuthService) Login(ctx context.Context, cred domain.Credential) (string, time.Time, error) {
	count, err := s.logins.CountCredentials(ctx, cred.Username, cred.Password)
	if err != nil {
		return "", time.Time{}, apperrors.NewStoreUnavailable(err)
	}
	if count == 0 {
		stored, err := s.logins.StoredPassword(ctx, cred.Username)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", time.Time{}, apperrors.NewInvalidCredentials()
			}
			return "", time.Time{}, apperrors.NewStoreUnavailable(err)
		}
		if !auth.CheckPassword(stored, cred.Password) {
			return "", time.Time{}, apperrors.NewInvalidCredentials()
		}
	}

	token, expiresAt, err := s.tokens.Issue(cred.Username)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// Refresh verifies the presented token and issues a fresh one for the same
// subject. Rejections carry the same 401 classification as verification.
func (s *AuthService) Refresh(tokenStr string) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.Refresh(tokenStr)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return "", time.Time{}, apperrors.NewUnauthorized("INVALID_OR_EXPIRED_TOKEN", "Token expired")
		}
		return "", time.Time{}, apperrors.NewUnauthorized("INVALID_OR_EXPIRED_TOKEN", "Invalid token")
	}
	return token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
