package accountservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/pkg/helper"
)

type AccountService struct {
	AccountRepo interfaces.AccountRepository
	Logger      interfaces.Logger
	// Cost is the bcrypt work factor.
	Cost int
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(repo interfaces.AccountRepository, logger interfaces.Logger) *AccountService {
	return &AccountService{
		AccountRepo: repo,
		Logger:      logger,
		Cost:        bcrypt.DefaultCost,
	}
}

// Register hashes the password and stores a new account. An existing
// username is left untouched and ErrDuplicateUsername is returned.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalidInput
	}
	if !models.ValidUsername(username) {
		return fmt.Errorf("%w: username longer than %d characters", ErrInvalidInput, models.MaxUsernameLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	userID, err := s.AccountRepo.AddUser(ctx, *models.NewUser(username, string(hashedPassword)))
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			s.Logger.Warn("Username already exists", "func", funcName, "user", username)
			return ErrDuplicateUsername
		}
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", username, "ID", userID)
	return nil
}

// Authenticate verifies a user's credentials. A wrong password for an
// existing user is always ErrInvalidCredentials, never ErrNotFound.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if strings.TrimSpace(username) == "" {
		return nil, ErrNotFound
	}

	user, err := s.AccountRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoDocuments) {
			s.Logger.Warn(ErrNotFound.Error(), "func", funcName, "user", username)
			return nil, ErrNotFound
		}
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.Logger.Warn(ErrInvalidCredentials.Error(), "func", funcName, "user", username)
		return nil, ErrInvalidCredentials
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	return &models.Identity{ID: user.ID, Username: user.Username}, nil
}
