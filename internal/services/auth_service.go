package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/loyaltypoints/backend/internal/auth"
	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method UpdatePassword replaces the stored password hash for a user.
	//
	// If user with such username does not exist, models.ErrUserNotFound will be returned.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// UserTokenRepository is the interface that wraps methods for refresh token data access
type UserTokenRepository interface {
	// Method Create inserts a new refresh token into the database.
	Create(ctx context.Context, userToken *models.UserToken) error
	// Method GetByToken retrieves a refresh token record by token string.
	//
	// If no such token exists, models.ErrTokenNotFound will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method UpdateToken replaces an old refresh token with a new one.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// Method DeleteByToken deletes a refresh token by token string.
	DeleteByToken(ctx context.Context, token string) error
}

// authService implements registration, login, token refresh and password reset
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *auth.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new user account with zero points and the user role
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return "", "", fmt.Errorf("username cannot be empty")
	}
	if req.Password == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return "", "", models.ErrUserExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		Points:       0,
		Role:         models.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", "", err
	}

	return s.generateAndSaveTokens(ctx, user.ID)
}

// Login authenticates a user
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return "", "", models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the user exists
		return "", "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", models.ErrInvalidCredentials
	}

	return s.generateAndSaveTokens(ctx, user.ID)
}

// Refresh exchanges a valid stored refresh token for a new token pair,
// rotating the stored token
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)

	if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
		// Drop the stored record if it exists, the token is useless now
		s.userTokenRepo.DeleteByToken(ctx, refreshToken)
		return "", "", fmt.Errorf("invalid or expired refresh token")
	}

	userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid or expired refresh token")
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(userToken.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, userToken.UserID); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// ResetPassword replaces a user's password. Outstanding access tokens remain
// valid until their embedded expiry; verification is stateless by design.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if req.NewPassword == "" {
		return fmt.Errorf("new password cannot be empty")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, username, string(passwordHash))
}

// generateAndSaveTokens generates an access/refresh pair and stores the
// refresh token
func (s *authService) generateAndSaveTokens(ctx context.Context, userID int) (string, string, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	userToken := &models.UserToken{
		UserID: userID,
		Token:  refreshToken,
	}
	if err := s.userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}
