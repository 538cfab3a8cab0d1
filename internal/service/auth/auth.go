package auth

import (
	"context"
	"errors"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

type userRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserAccessibilitySettings(ctx context.Context, id int64, settings models.AccessibilitySettings) (*models.User, error)
}

// AuthService validates credentials and owns the session lifecycle.
type AuthService struct {
	log      logger.Log
	sessions *SessionManager
	userRepo userRepo
}

func NewAuthService(l logger.Log, sessions *SessionManager, repo userRepo) *AuthService {
	return &AuthService{
		log:      l,
		sessions: sessions,
		userRepo: repo,
	}
}

func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// Register creates a user with default accessibility settings. Username and
// email collisions are checked case-insensitively before hashing.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Role == "" {
		input.Role = models.StudentRole
	}
	if !models.ValidRole(input.Role) {
		return nil, app_errors.ErrValidation
	}
	if len(input.Username) < 3 || len(input.Password) < 6 {
		return nil, app_errors.ErrValidation
	}

	if _, err := s.userRepo.UserByUsername(ctx, input.Username); err == nil {
		return nil, app_errors.ErrDuplicateUsername
	} else if !errors.Is(err, app_errors.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.UserByEmail(ctx, input.Email); err == nil {
		return nil, app_errors.ErrDuplicateEmail
	} else if !errors.Is(err, app_errors.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:              input.Username,
		Password:              hashed,
		Email:                 input.Email,
		FullName:              input.FullName,
		Role:                  input.Role,
		AccessibilitySettings: models.DefaultAccessibilitySettings(),
	}
	return s.userRepo.CreateUser(ctx, user)
}

// Login verifies the username/password pair. A missing user, a wrong
// password and a malformed stored hash all report the same
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, app_errors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !checkPasswordHash(password, user.Password) {
		return nil, app_errors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) User(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.UserByID(ctx, id)
}

// UpdateAccessibilitySettings applies a validated partial update on top of
// the user's stored settings.
func (s *AuthService) UpdateAccessibilitySettings(ctx context.Context, userID int64, patch models.AccessibilitySettingsPatch) (*models.User, error) {
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged, err := user.AccessibilitySettings.Merge(patch)
	if err != nil {
		return nil, err
	}
	return s.userRepo.UpdateUserAccessibilitySettings(ctx, userID, merged)
}
