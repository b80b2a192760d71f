package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/loyaltypoints/backend/internal/models"
	"github.com/loyaltypoints/backend/internal/storage"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps user operations needed by admins
type AdminUserRepository interface {
	// Method GetAll retrieves all users for the admin listing.
	GetAll(ctx context.Context) ([]models.UserListItem, error)
	// Method GrantPoints adjusts a user's balance by delta as one atomic unit.
	//
	// Returns models.ErrUserNotFound for an unknown user and
	// models.ErrNegativePoints when the grant would drive the balance
	// below zero; state is unchanged in both cases.
	GrantPoints(ctx context.Context, username string, delta int) error
}

// AdminRewardRepository is the interface that wraps catalog mutations
type AdminRewardRepository interface {
	// Method Create inserts a new reward.
	//
	// Returns models.ErrRewardExists if the name is already taken.
	Create(ctx context.Context, reward *models.Reward) error
	// Method SetQuantity overwrites a reward's stock with an absolute value.
	//
	// Returns models.ErrRewardNotFound for an unknown reward.
	SetQuantity(ctx context.Context, name string, quantity int) error
}

// adminService implements the admin operations: point grants, stock edits
// and catalog additions
type adminService struct {
	userRepo   AdminUserRepository
	rewardRepo AdminRewardRepository
	images     storage.Storage
	logger     *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo AdminUserRepository,
	rewardRepo AdminRewardRepository,
	images storage.Storage,
	logger *zap.Logger,
) *adminService {
	return &adminService{
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		images:     images,
		logger:     logger,
	}
}

// GrantPoints adds (or removes) points on a user's balance. The balance
// must not go negative; the repository refuses such grants atomically.
func (s *adminService) GrantPoints(ctx context.Context, username string, delta int) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if err := s.userRepo.GrantPoints(ctx, username, delta); err != nil {
		return err
	}

	s.logger.Info("points granted",
		zap.String("username", username),
		zap.Int("delta", delta),
	)

	return nil
}

// SetQuantity overwrites a reward's remaining stock
func (s *adminService) SetQuantity(ctx context.Context, name string, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("reward name cannot be empty")
	}
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}

	return s.rewardRepo.SetQuantity(ctx, name, quantity)
}

// AddReward creates a new catalog reward with an optional image. The image
// is stored under a generated name and referenced by URL path.
func (s *adminService) AddReward(ctx context.Context, name string, points, quantity int, image io.Reader, imageFilename string) (*models.Reward, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("reward name cannot be empty")
	}
	if points <= 0 {
		return nil, fmt.Errorf("points cost must be positive")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	var imageRef string
	if image != nil {
		if !storage.ValidExtension(imageFilename) {
			return nil, fmt.Errorf("unsupported image type: %q", filepath.Ext(imageFilename))
		}
		storedName := uuid.New().String() + strings.ToLower(filepath.Ext(imageFilename))
		if err := s.images.Save(storedName, image); err != nil {
			s.logger.Error("failed to store reward image", zap.Error(err), zap.String("reward", name))
			return nil, fmt.Errorf("failed to store reward image: %w", err)
		}
		imageRef = "/api/images/" + storedName
	}

	reward := &models.Reward{
		Name:     name,
		Points:   points,
		Quantity: quantity,
		Image:    imageRef,
	}

	if err := s.rewardRepo.Create(ctx, reward); err != nil {
		// Don't leave an orphaned image behind
		if imageRef != "" {
			if delErr := s.images.Delete(strings.TrimPrefix(imageRef, "/api/images/")); delErr != nil {
				s.logger.Warn("failed to remove orphaned image", zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.logger.Info("reward added",
		zap.String("name", name),
		zap.Int("points", points),
		zap.Int("quantity", quantity),
	)

	return reward, nil
}

// ListUsers returns all users with their balances and roles
func (s *adminService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	return s.userRepo.GetAll(ctx)
}
