// Package users implements account signup, authentication and profile
// operations.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/auth"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/user"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

// Service coordinates account operations over a UserStore.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New creates the users service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// Exists reports whether the username is taken.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, apperrors.Validation("username is required")
	}
	return s.store.UserExists(ctx, username)
}

// Register creates a new account. The password is hashed before it ever
// reaches the store; the store's transaction guarantees at most one of
// two concurrent signups with the same username succeeds.
func (s *Service) Register(ctx context.Context, username, password, countyState string) error {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(countyState) == "" {
		return apperrors.Validation("username, password and county_state are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.Internal("hash password", err)
	}

	err = s.store.CreateUser(ctx, user.Account{
		Username:     username,
		PasswordHash: hash,
		CountyState:  countyState,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return apperrors.Conflict("user already exists")
	}
	if err != nil {
		return err
	}

	s.log.WithField("username", username).Info("user registered")
	return nil
}

// Authenticate verifies credentials. A missing user or wrong password
// returns ok=false without an error; the returned account never carries
// the password hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (user.Account, bool, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return user.Account{}, false, apperrors.Validation("username and password are required")
	}

	acct, err := s.store.GetUser(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return user.Account{}, false, nil
	}
	if err != nil {
		return user.Account{}, false, err
	}

	if !auth.VerifyPassword(password, acct.PasswordHash) {
		return user.Account{}, false, nil
	}

	acct.PasswordHash = ""
	return acct, true, nil
}

// Get returns the account without its password hash, or a not-found
// error.
func (s *Service) Get(ctx context.Context, username string) (user.Account, error) {
	if strings.TrimSpace(username) == "" {
		return user.Account{}, apperrors.Validation("username is required")
	}
	acct, err := s.store.GetUser(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return user.Account{}, apperrors.NotFound("user %s not found", username)
	}
	if err != nil {
		return user.Account{}, err
	}
	acct.PasswordHash = ""
	return acct, nil
}

// UpdateCounty changes the account's home county.
func (s *Service) UpdateCounty(ctx context.Context, username, countyState string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(countyState) == "" {
		return apperrors.Validation("username and county_state are required")
	}
	err := s.store.UpdateUserCounty(ctx, username, countyState)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NotFound("user %s not found", username)
	}
	return err
}
