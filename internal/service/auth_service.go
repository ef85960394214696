package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"cash-register/internal/core/ports"
	"cash-register/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService for the single configured operator.
type AuthServiceImpl struct {
	username     string
	passwordHash string
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl. With an empty password hash
// every login is rejected.
func NewAuthService(
	username string,
	passwordHash string,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		username:     username,
		passwordHash: passwordHash,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		log:          log,
	}
}

// Login validates operator credentials and returns a JWT token.
func (s *AuthServiceImpl) Login(_ context.Context, username, password string) (string, time.Time, error) {
	if s.passwordHash == "" {
		s.log.Warn().Msg("operator login attempted but no password hash is configured")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, s.passwordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("operator", username).Msg("operator logged in")
	return token, expiry, nil
}
